package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio.site/internal/services"
	"portfolio.site/internal/views"
)

// PageHandler renders the public pages
type PageHandler struct {
	projectService *services.ProjectService
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.ProjectService) *PageHandler {
	return &PageHandler{projectService: ps}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, h.projectService.Document(), views.Home())
}

// Projects handles GET /projects
func (h *PageHandler) Projects(w http.ResponseWriter, r *http.Request) {
	doc := h.projectService.Document()
	renderPage(w, r, http.StatusOK, doc, views.Projects(doc.Projects))
}

// Project handles GET /project/{id}
func (h *PageHandler) Project(w http.ResponseWriter, r *http.Request) {
	doc := h.projectService.Document()
	project := doc.FindProject(chi.URLParam(r, "id"))
	if project == nil {
		renderPage(w, r, http.StatusNotFound, doc, views.NotFound())
		return
	}
	renderPage(w, r, http.StatusOK, doc, views.Project(*project))
}

// About handles GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, h.projectService.Document(), views.About())
}

// Contact handles GET /contact
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, h.projectService.Document(), views.Contact())
}

// Resume handles GET /resume
func (h *PageHandler) Resume(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, h.projectService.Document(), views.Resume())
}

// AdminLogin handles GET /admin
func (h *PageHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, h.projectService.Document(), views.AdminLogin())
}

// NotFound renders the 404 page for unknown routes
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusNotFound, h.projectService.Document(), views.NotFound())
}

// isNotFound reports whether err means a missing project
func isNotFound(err error) bool {
	return errors.Is(err, services.ErrProjectNotFound)
}
