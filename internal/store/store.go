// Package store persists the site content document as a single JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"portfolio.site/internal/models"
)

// ContentStore loads and saves the content document
type ContentStore interface {
	Load() models.Content
	Save(content models.Content) error
	Update(fn func(content models.Content) error) error
}

// FileStore keeps the content document in one JSON file on disk
type FileStore struct {
	path string
	mu   sync.Mutex // serializes Update and Save
}

// NewFileStore creates a FileStore backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the content file.
// A missing file yields the default content, which is not written back.
// An unreadable file or invalid JSON yields empty content; the error is only logged.
func (s *FileStore) Load() models.Content {
	content, err := s.read()
	if err != nil {
		log.Printf("Warning: %v", err)
		return models.Content{}
	}
	return content
}

// Save overwrites the content file
func (s *FileStore) Save(content models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(content)
}

// Update reads the content, applies fn and saves the result.
// Nothing is written when the file cannot be read or parsed, or when fn fails,
// so a damaged file is never replaced by a rebuilt one.
func (s *FileStore) Update(fn func(content models.Content) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(content); err != nil {
		return err
	}
	return s.write(content)
}

func (s *FileStore) read() (models.Content, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.DefaultContent(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	content, err := models.ParseContent(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return content, nil
}

// write replaces the file via a temp file in the same directory and a rename
func (s *FileStore) write(content models.Content) error {
	if content == nil {
		return errors.New("content document is nil")
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set content permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
