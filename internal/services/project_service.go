package services

import (
	"errors"
	"fmt"
	"log"

	"portfolio.site/internal/models"
	"portfolio.site/internal/store"
)

// ErrProjectNotFound is returned when no project has the requested id
var ErrProjectNotFound = errors.New("project not found")

// Defaults applied to fields missing from a new project
const (
	DefaultTitle    = "Untitled Project"
	DefaultCategory = "Uncategorized"
	DefaultColor    = "neutral"
)

// DefaultDeliverables is given to every new project
var DefaultDeliverables = []string{"Concept", "Final Design"}

// ProjectFields are the caller-supplied fields of a new project
type ProjectFields struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Overview string `json:"overview"`
	Image    string `json:"image"`
	Color    string `json:"color"`
}

// ProjectService handles content and project operations
type ProjectService struct {
	store store.ContentStore
}

// NewProjectService creates a new ProjectService
func NewProjectService(s store.ContentStore) *ProjectService {
	return &ProjectService{store: s}
}

// Content returns the stored content document as written
func (s *ProjectService) Content() models.Content {
	return s.store.Load()
}

// Document returns the typed view of the current content
func (s *ProjectService) Document() *models.Document {
	return s.store.Load().Document()
}

// GetAll returns all projects in stored order
func (s *ProjectService) GetAll() []models.Project {
	return s.Document().Projects
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	if p := s.Document().FindProject(id); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// ReplaceContent overwrites the whole content document
func (s *ProjectService) ReplaceContent(content models.Content) error {
	if err := s.store.Save(content); err != nil {
		return fmt.Errorf("failed to replace content: %w", err)
	}
	return nil
}

// AddProject inserts a new project at the front of the list.
// Its id and number come from the current project count plus one.
func (s *ProjectService) AddProject(fields ProjectFields) (models.Project, error) {
	var added models.Project
	err := s.store.Update(func(content models.Content) error {
		count, err := content.ProjectCount()
		if err != nil {
			return err
		}
		added = newProject(count+1, fields)
		if content.Document().FindProject(added.ID) != nil {
			log.Printf("Warning: new project id %s already exists", added.ID)
		}
		return content.PrependProject(added)
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to add project: %w", err)
	}
	return added, nil
}

func newProject(n int, fields ProjectFields) models.Project {
	return models.Project{
		ID:           models.ProjectID(n),
		Number:       models.ProjectNumber(n),
		Title:        withDefault(fields.Title, DefaultTitle),
		Category:     withDefault(fields.Category, DefaultCategory),
		Overview:     fields.Overview,
		Image:        fields.Image,
		Color:        withDefault(fields.Color, DefaultColor),
		Deliverables: append([]string(nil), DefaultDeliverables...),
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
