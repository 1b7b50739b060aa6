package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie name
const CookieName = "portfolio_session"

// Session is the per-client authentication state
type Session struct {
	ID        string
	LoggedIn  bool
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	LoggedIn bool `json:"logged_in"`
}

// Sessions issues and reads signed session cookies.
// Token ids ended by Clear are remembered until their expiry.
type Sessions struct {
	key []byte
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewSessions creates a Sessions signing tokens with secret.
// A non-positive ttl defaults to 24 hours.
func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{
		key:     []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}, nil
}

// Issue signs an authenticated session and sets the cookie.
// The cookie has no Max-Age so it ends with the browser session.
func (s *Sessions) Issue(w http.ResponseWriter, r *http.Request) error {
	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		LoggedIn:  true,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		LoggedIn: true,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session carried by the request cookie.
// Missing, expired, tampered or revoked tokens report false.
func (s *Sessions) Read(r *http.Request) (Session, bool) {
	sess, ok := s.parse(r)
	if !ok || s.isRevoked(sess.ID) {
		return Session{}, false
	}
	return sess, true
}

func (s *Sessions) parse(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return Session{}, false
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !claims.LoggedIn {
		return Session{}, false
	}

	return Session{
		ID:        claims.ID,
		LoggedIn:  true,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}

// Clear revokes the request's token and expires the session cookie
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.parse(r); ok {
		s.revoke(sess)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessions) revoke(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[sess.ID] = sess.ExpiresAt
}

func (s *Sessions) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

type sessionKey struct{}

// WithSession returns a context carrying sess
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}

// IsAuthenticated reports whether ctx carries a logged-in session
func IsAuthenticated(ctx context.Context) bool {
	sess, ok := FromContext(ctx)
	return ok && sess.LoggedIn
}
