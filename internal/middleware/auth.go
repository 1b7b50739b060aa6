package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"portfolio.site/internal/auth"
)

// LoginPath is where unauthenticated page requests are sent
const LoginPath = "/admin"

// SessionReader reads the session attached to a request
type SessionReader interface {
	Read(r *http.Request) (auth.Session, bool)
}

// LoadSession stores the request's session, or an anonymous one, in the request context
func LoadSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Read(r)
			if !ok {
				sess = auth.Session{}
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAuthenticated(r.Context()) {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLoginAPI rejects anonymous requests with 401
func RequireLoginAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAuthenticated(r.Context()) {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// respondError writes {"error": message} with status
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}
