package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"portfolio.site/internal/auth"
	"portfolio.site/internal/config"
	"portfolio.site/internal/handlers"
	"portfolio.site/internal/models"
	"portfolio.site/internal/services"
	"portfolio.site/internal/store"
)

type site struct {
	router http.Handler
	store  *store.FileStore
}

func newSite(c *qt.C) *site {
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	c.Assert(err, qt.IsNil)

	s := store.NewFileStore(filepath.Join(c.TempDir(), "content.json"))
	return &site{
		router: handlers.NewRouter(handlers.Dependencies{
			Projects: services.NewProjectService(s),
			Sessions: sessions,
			Verifier: auth.StaticVerifier{Username: auth.DefaultUsername, Password: auth.DefaultPassword},
		}),
		store: s,
	}
}

func (s *site) save(c *qt.C, doc *models.Document) {
	content, err := models.NewContent(doc)
	c.Assert(err, qt.IsNil)
	c.Assert(s.store.Save(content), qt.IsNil)
}

func (s *site) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *site) login(c *qt.C) *http.Cookie {
	rec := s.do(http.MethodPost, "/api/login", `{"username":"admin","password":"password"}`)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	cookies := rec.Result().Cookies()
	c.Assert(cookies, qt.HasLen, 1)
	return cookies[0]
}

func TestPublicPages(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)

	for _, path := range []string{"/", "/projects", "/about", "/contact", "/resume", "/admin", "/project/p04"} {
		c.Run(path, func(c *qt.C) {
			rec := s.do(http.MethodGet, path, "")
			c.Assert(rec.Code, qt.Equals, http.StatusOK)
			c.Assert(rec.Header().Get("Content-Type"), qt.Equals, "text/html; charset=utf-8")
			c.Assert(rec.Body.String(), qt.Contains, models.DefaultDocument().Site.Brand)
		})
	}
}

func TestProjectPage_NotFoundUntilPresent(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)
	s.save(c, &models.Document{Projects: []models.Project{}})

	rec := s.do(http.MethodGet, "/project/p01", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)

	s.save(c, &models.Document{Projects: []models.Project{{
		ID:           "p01",
		Number:       "01",
		Title:        "Lighthouse",
		Category:     "Identity",
		Overview:     "Beacon brand.",
		Deliverables: []string{"Logo"},
	}}})

	rec = s.do(http.MethodGet, "/project/p01", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{"Lighthouse", "Identity", "Beacon brand.", "Logo", ">01<"} {
		c.Assert(body, qt.Contains, want)
	}

	rec = s.do(http.MethodGet, "/api/projects/p01", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var got models.Project
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &got), qt.IsNil)
	c.Assert(got.Title, qt.Equals, "Lighthouse")

	rec = s.do(http.MethodGet, "/api/projects/p02", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestUnknownRoute(t *testing.T) {
	c := qt.New(t)
	rec := newSite(c).do(http.MethodGet, "/nope", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestLogin(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"admin","password":"nope"}`},
		{"wrong username", `{"username":"root","password":"password"}`},
		{"empty", `{}`},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			rec := s.do(http.MethodPost, "/api/login", tt.body)
			c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
			c.Assert(rec.Body.String(), qt.JSONEquals, map[string]string{"error": "Invalid credentials"})
			c.Assert(rec.Result().Cookies(), qt.HasLen, 0)
		})
	}

	c.Run("malformed body", func(c *qt.C) {
		rec := s.do(http.MethodPost, "/api/login", `{`)
		c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	})

	c.Run("correct pair", func(c *qt.C) {
		rec := s.do(http.MethodPost, "/api/login", `{"username":"admin","password":"password"}`)
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		c.Assert(rec.Body.String(), qt.JSONEquals, map[string]bool{"success": true})
		c.Assert(rec.Result().Cookies(), qt.HasLen, 1)
	})
}

func TestProtectedRoutes_Anonymous(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)

	rec := s.do(http.MethodGet, "/dashboard", "")
	c.Assert(rec.Code, qt.Equals, http.StatusFound)
	c.Assert(rec.Header().Get("Location"), qt.Equals, "/admin")

	forged := &http.Cookie{Name: auth.CookieName, Value: "forged"}
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/content", ""},
		{http.MethodPost, "/api/content", `{"projects":[]}`},
		{http.MethodPost, "/api/project/add", `{"title":"x"}`},
	} {
		rec := s.do(tc.method, tc.path, tc.body, forged)
		c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized, qt.Commentf("%s %s", tc.method, tc.path))
		c.Assert(rec.Body.String(), qt.Not(qt.Contains), "projects")
	}

	_, err := os.Stat(s.store.Path())
	c.Assert(os.IsNotExist(err), qt.IsTrue, qt.Commentf("anonymous writes must not touch the store"))
}

func TestAdminFlow(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)
	cookie := s.login(c)

	rec := s.do(http.MethodGet, "/dashboard", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.Contains, `id="content-form"`)

	rec = s.do(http.MethodGet, "/api/content", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.JSONEquals, models.DefaultDocument())

	rec = s.do(http.MethodPost, "/api/project/add", `{"title":"Atlas","category":"Maps"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var added struct {
		Success bool           `json:"success"`
		Project models.Project `json:"project"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &added), qt.IsNil)
	c.Assert(added.Success, qt.IsTrue)
	c.Assert(added.Project.ID, qt.Equals, "p05")

	projects := s.store.Load().Document().Projects
	c.Assert(projects, qt.HasLen, 5)
	c.Assert(projects[0].Title, qt.Equals, "Atlas")

	rec = s.do(http.MethodPost, "/api/content", `{"site":{"brand":"Replaced"},"projects":[]}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.JSONEquals, map[string]bool{"success": true})
	c.Assert(s.store.Load().Document().Site.Brand, qt.Equals, "Replaced")
	c.Assert(s.store.Load().Document().Projects, qt.HasLen, 0)

	rec = s.do(http.MethodPost, "/api/content", `not json`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = s.do(http.MethodPost, "/api/content", `["not", "an", "object"]`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(rec.Body.String(), qt.JSONEquals, map[string]string{"error": "content must be a JSON object"})
	c.Assert(s.store.Load().Document().Site.Brand, qt.Equals, "Replaced")
}

func TestReplaceContent_ReadBackAsWritten(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)
	cookie := s.login(c)

	body := `{
		"site": {"brand": "Kiln", "badge_year": 2024, "theme": "dark"},
		"hero": {"first_name": "Ida", "last_name": "Berg", "subtitle": "Potter"},
		"social": {"email": "ida@example.com", "links": []},
		"projects": [
			{"id": "p01", "number": "01", "title": "Bowls", "tools": ["wheel", "kiln"], "year": 2021}
		],
		"analytics": {"id": "UA-1", "enabled": false}
	}`
	rec := s.do(http.MethodPost, "/api/content", body, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = s.do(http.MethodGet, "/api/content", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.JSONEquals, json.RawMessage(body))

	rec = s.do(http.MethodGet, "/", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.Contains, "2024")
	c.Assert(rec.Body.String(), qt.Contains, "Kiln")

	rec = s.do(http.MethodPost, "/api/project/add", `{"title":"Vases"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = s.do(http.MethodGet, "/api/content", "", cookie)
	var got map[string]any
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &got), qt.IsNil)
	c.Assert(got["analytics"], qt.DeepEquals, map[string]any{"id": "UA-1", "enabled": false})
	c.Assert(got["site"], qt.DeepEquals, map[string]any{"brand": "Kiln", "badge_year": float64(2024), "theme": "dark"})
	projects := got["projects"].([]any)
	c.Assert(projects, qt.HasLen, 2)
	c.Assert(projects[1], qt.DeepEquals, map[string]any{
		"id": "p01", "number": "01", "title": "Bowls", "tools": []any{"wheel", "kiln"}, "year": float64(2021),
	})
}

func TestAddProject_DamagedContentIsKept(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)
	cookie := s.login(c)

	damaged := []byte(`{"site": {"brand": "Half-edited",`)
	c.Assert(os.WriteFile(s.store.Path(), damaged, 0o644), qt.IsNil)

	rec := s.do(http.MethodPost, "/api/project/add", `{"title":"Atlas"}`, cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusInternalServerError)
	c.Assert(rec.Body.String(), qt.JSONEquals, map[string]string{"error": "Failed to add project"})

	data, err := os.ReadFile(s.store.Path())
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.DeepEquals, damaged)
}

func TestLogout(t *testing.T) {
	c := qt.New(t)
	s := newSite(c)
	cookie := s.login(c)

	rec := s.do(http.MethodPost, "/api/logout", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	cookies := rec.Result().Cookies()
	c.Assert(cookies, qt.HasLen, 1)
	c.Assert(cookies[0].MaxAge, qt.Equals, -1)

	rec = s.do(http.MethodGet, "/api/content", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)

	rec = s.do(http.MethodGet, "/dashboard", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusFound)
}

func TestHealth(t *testing.T) {
	c := qt.New(t)
	rec := newSite(c).do(http.MethodGet, "/api/health", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.JSONEquals, map[string]string{"status": "ok"})
}

func TestCORS(t *testing.T) {
	c := qt.New(t)

	newRouter := func(c *qt.C, origins []string) http.Handler {
		sessions, err := auth.NewSessions("test-secret", time.Hour)
		c.Assert(err, qt.IsNil)
		return handlers.NewRouter(handlers.Dependencies{
			Projects:    services.NewProjectService(store.NewFileStore(filepath.Join(c.TempDir(), "content.json"))),
			Sessions:    sessions,
			Verifier:    auth.StaticVerifier{Username: auth.DefaultUsername, Password: auth.DefaultPassword},
			CORSOrigins: origins,
		})
	}

	c.Run("preflight allowed", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodOptions, "/api/content", nil)
		req.Header.Set("Origin", "https://editor.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		newRouter(c, []string{"*"}).ServeHTTP(rec, req)

		c.Assert(rec.Header().Get("Access-Control-Allow-Origin"), qt.Equals, "*")
		c.Assert(rec.Header().Get("Access-Control-Allow-Methods"), qt.Equals, http.MethodPost)
	})

	c.Run("simple request", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Origin", "https://a.example")
		rec := httptest.NewRecorder()
		newRouter(c, []string{"https://a.example"}).ServeHTTP(rec, req)

		c.Assert(rec.Code, qt.Equals, http.StatusOK)
		c.Assert(rec.Header().Get("Access-Control-Allow-Origin"), qt.Equals, "https://a.example")
	})

	c.Run("other origin", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Origin", "https://b.example")
		rec := httptest.NewRecorder()
		newRouter(c, []string{"https://a.example"}).ServeHTTP(rec, req)

		c.Assert(rec.Header().Get("Access-Control-Allow-Origin"), qt.Equals, "")
	})

	c.Run("disabled", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Origin", "https://a.example")
		rec := httptest.NewRecorder()
		newRouter(c, nil).ServeHTTP(rec, req)

		c.Assert(rec.Header().Get("Access-Control-Allow-Origin"), qt.Equals, "")
	})
}

func TestSetupRoutes_FallbackSecretSignsSessions(t *testing.T) {
	c := qt.New(t)
	c.Unsetenv("SECRET_KEY")
	c.Unsetenv("CREDENTIALS_PATH")
	c.Setenv("CONTENT_PATH", filepath.Join(c.TempDir(), "content.json"))

	cfg, err := config.Load()
	c.Assert(err, qt.IsNil)
	router, err := handlers.SetupRoutes(cfg)
	c.Assert(err, qt.IsNil)
	s := &site{router: router, store: store.NewFileStore(cfg.ContentPath)}

	cookie := s.login(c)

	rec := s.do(http.MethodGet, "/api/content", "", cookie)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.JSONEquals, models.DefaultDocument())

	fallback, err := auth.NewSessions(config.FallbackSecretKey, time.Hour)
	c.Assert(err, qt.IsNil)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	_, ok := fallback.Read(req)
	c.Assert(ok, qt.IsTrue)
}

func TestSetupRoutes(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()

	c.Run("builds from config", func(c *qt.C) {
		router, err := handlers.SetupRoutes(&config.Config{
			ContentPath: filepath.Join(dir, "content.json"),
			SecretKey:   "k",
			SessionTTL:  time.Hour,
		})
		c.Assert(err, qt.IsNil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
	})

	c.Run("bad credentials path", func(c *qt.C) {
		_, err := handlers.SetupRoutes(&config.Config{
			SecretKey:       "k",
			CredentialsPath: filepath.Join(dir, "missing.yaml"),
		})
		c.Assert(err, qt.ErrorMatches, "failed to read credentials: .*")
	})

	c.Run("missing secret", func(c *qt.C) {
		_, err := handlers.SetupRoutes(&config.Config{})
		c.Assert(err, qt.ErrorMatches, "failed to initialize sessions: session secret is required")
	})
}
