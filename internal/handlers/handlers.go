package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"portfolio.site/internal/auth"
	"portfolio.site/internal/config"
	"portfolio.site/internal/middleware"
	"portfolio.site/internal/models"
	"portfolio.site/internal/services"
	"portfolio.site/internal/store"
	"portfolio.site/internal/views"
)

// Dependencies are the collaborators the router is built from
type Dependencies struct {
	Projects  *services.ProjectService
	Sessions  *auth.Sessions
	Verifier  auth.Verifier
	StaticDir string
	// CORSOrigins lists the origins allowed cross-origin access; empty disables CORS headers
	CORSOrigins []string
}

// SetupRoutes builds the dependencies described by cfg and returns the router
func SetupRoutes(cfg *config.Config) (http.Handler, error) {
	verifier, err := auth.LoadVerifier(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	sessions, err := auth.NewSessions(cfg.SecretKey, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	return NewRouter(Dependencies{
		Projects:    services.NewProjectService(store.NewFileStore(cfg.ContentPath)),
		Sessions:    sessions,
		Verifier:    verifier,
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	}), nil
}

// NewRouter configures all routes and returns the router
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	r.Use(middleware.LoadSession(deps.Sessions))

	// Initialize handlers
	pageHandler := NewPageHandler(deps.Projects)
	adminHandler := NewAdminHandler(deps.Projects, deps.Sessions, deps.Verifier)
	projectHandler := NewProjectHandler(deps.Projects)

	// Public pages
	r.Get("/", pageHandler.Home)
	r.Get("/projects", pageHandler.Projects)
	r.Get("/project/{id}", pageHandler.Project)
	r.Get("/about", pageHandler.About)
	r.Get("/contact", pageHandler.Contact)
	r.Get("/resume", pageHandler.Resume)
	r.Get("/admin", pageHandler.AdminLogin)

	// Admin pages
	r.With(middleware.RequireLogin).Get("/dashboard", adminHandler.Dashboard)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)
		r.Post("/logout", adminHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLoginAPI)
			r.Get("/content", adminHandler.GetContent)
			r.Post("/content", adminHandler.ReplaceContent)
			r.Post("/project/add", adminHandler.AddProject)
		})

		// Public project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static files
	if deps.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(deps.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static", fileServer))
	}

	r.NotFound(pageHandler.NotFound)

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// renderPage renders an HTML component with doc as the render-time content
func renderPage(w http.ResponseWriter, r *http.Request, status int, doc *models.Document, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(views.WithDocument(r.Context(), doc), w); err != nil {
		log.Printf("Error rendering %s: %v", r.URL.Path, err)
	}
}
