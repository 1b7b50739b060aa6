// Package auth verifies admin credentials and manages the signed session cookie.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Default admin credentials used when no credentials file is configured
const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
)

// Verifier checks a username/password pair
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier compares against a plaintext pair
type StaticVerifier struct {
	Username string
	Password string
}

// Verify reports whether the pair matches
func (v StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// BcryptVerifier compares against a bcrypt password hash
type BcryptVerifier struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Verify reports whether the pair matches
func (v BcryptVerifier) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) == nil
}

// LoadVerifier returns the verifier for a credentials file.
// An empty path selects the built-in admin/password pair.
func LoadVerifier(path string) (Verifier, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return StaticVerifier{Username: DefaultUsername, Password: DefaultPassword}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var v BcryptVerifier
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if v.Username == "" || v.PasswordHash == "" {
		return nil, errors.New("credentials file requires username and password_hash")
	}

	return v, nil
}

// HashCredentials renders a credentials file for username with a bcrypt hash of password
func HashCredentials(username, password string) ([]byte, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return yaml.Marshal(BcryptVerifier{Username: username, PasswordHash: string(hash)})
}
