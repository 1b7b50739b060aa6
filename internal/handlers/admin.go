package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"portfolio.site/internal/auth"
	"portfolio.site/internal/models"
	"portfolio.site/internal/services"
	"portfolio.site/internal/views"
)

// AdminHandler handles login and content editing
type AdminHandler struct {
	projectService *services.ProjectService
	sessions       *auth.Sessions
	verifier       auth.Verifier
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(ps *services.ProjectService, sessions *auth.Sessions, verifier auth.Verifier) *AdminHandler {
	return &AdminHandler{
		projectService: ps,
		sessions:       sessions,
		verifier:       verifier,
	}
}

// Login handles POST /api/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.sessions.Issue(w, r); err != nil {
		log.Printf("Error issuing session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles POST /api/logout. The presented token stops being accepted.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Dashboard handles GET /dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	content := h.projectService.Content()

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		log.Printf("Error encoding content: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, content.Document(), views.Dashboard(string(data)))
}

// GetContent handles GET /api/content. The stored document is returned as written.
func (h *AdminHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.projectService.Content())
}

// ReplaceContent handles POST /api/content
func (h *AdminHandler) ReplaceContent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := models.ParseContent(body)
	if err != nil {
		msg := "Invalid request body"
		if errors.Is(err, models.ErrNotObject) {
			msg = err.Error()
		}
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.projectService.ReplaceContent(content); err != nil {
		log.Printf("Error saving content: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddProject handles POST /api/project/add
func (h *AdminHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	var fields services.ProjectFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.AddProject(fields)
	if err != nil {
		log.Printf("Error adding project: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add project")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Project models.Project `json:"project"`
	}{Success: true, Project: project})
}
