package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Content is the stored content document, kept key for key as written.
// Values are never re-encoded through the typed model, so unknown keys and
// hand-edited values survive a load/save cycle.
type Content map[string]json.RawMessage

// ErrNotObject is returned when content JSON is valid but not an object
var ErrNotObject = errors.New("content must be a JSON object")

// ParseContent parses a content document. Only invalid JSON or a non-object
// top level is rejected.
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}
		return nil, err
	}
	if c == nil {
		return nil, ErrNotObject
	}
	return c, nil
}

// NewContent converts a typed document into stored content
func NewContent(doc *Document) (Content, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return ParseContent(data)
}

// DefaultContent returns the built-in content used when no content file exists
func DefaultContent() Content {
	c, err := NewContent(DefaultDocument())
	if err != nil {
		panic("Failed to encode default content: " + err.Error())
	}
	return c
}

// Document decodes the typed view used for rendering.
// Fields of an unexpected shape are left empty rather than failing the whole view.
func (c Content) Document() *Document {
	var doc Document
	decodeFields(c, map[string]any{
		"site":     &doc.Site,
		"hero":     &doc.Hero,
		"social":   &doc.Social,
		"projects": &doc.Projects,
	})
	return &doc
}

// projects returns the raw project entries; a missing or null list is empty
func (c Content) projects() ([]json.RawMessage, error) {
	raw, ok := c["projects"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("projects is not a list: %w", err)
	}
	return items, nil
}

// ProjectCount returns the number of stored project entries
func (c Content) ProjectCount() (int, error) {
	items, err := c.projects()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// PrependProject inserts p before every stored project entry.
// Existing entries are kept byte for byte.
func (c Content) PrependProject(p Project) error {
	items, err := c.projects()
	if err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	list, err := json.Marshal(append([]json.RawMessage{data}, items...))
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	c["projects"] = list
	return nil
}

// Document is the typed view of the site content
type Document struct {
	Site     Site      `json:"site"`
	Hero     Hero      `json:"hero"`
	Social   Social    `json:"social"`
	Projects []Project `json:"projects"`
}

// Site holds branding shown in the header and footer
type Site struct {
	Brand     string `json:"brand"`
	BadgeYear string `json:"badge_year"`
}

// UnmarshalJSON decodes leniently
func (s *Site) UnmarshalJSON(data []byte) error {
	decodeObject(data, map[string]any{
		"brand":      &s.Brand,
		"badge_year": &s.BadgeYear,
	})
	return nil
}

// Hero holds the landing page headline
type Hero struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Subtitle  string `json:"subtitle"`
}

// UnmarshalJSON decodes leniently
func (h *Hero) UnmarshalJSON(data []byte) error {
	decodeObject(data, map[string]any{
		"first_name": &h.FirstName,
		"last_name":  &h.LastName,
		"subtitle":   &h.Subtitle,
	})
	return nil
}

// Social holds contact details and external profiles
type Social struct {
	Email string `json:"email"`
	Links []Link `json:"links"`
}

// UnmarshalJSON decodes leniently
func (s *Social) UnmarshalJSON(data []byte) error {
	decodeObject(data, map[string]any{
		"email": &s.Email,
		"links": &s.Links,
	})
	return nil
}

// Link is a labelled external profile URL
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// UnmarshalJSON decodes leniently
func (l *Link) UnmarshalJSON(data []byte) error {
	decodeObject(data, map[string]any{
		"label": &l.Label,
		"url":   &l.URL,
	})
	return nil
}

// FindProject returns the project with the given id, or nil
func (d *Document) FindProject(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// decodeObject fills targets from a JSON object; anything else leaves them untouched
func decodeObject(data []byte, targets map[string]any) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return
	}
	decodeFields(fields, targets)
}

// decodeFields decodes each present key into its target.
// String targets accept any scalar; mismatched values keep the zero value.
func decodeFields(fields map[string]json.RawMessage, targets map[string]any) {
	for key, target := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if s, ok := target.(*string); ok {
			*s = scalarText(raw)
			continue
		}
		_ = json.Unmarshal(raw, target)
	}
}

// scalarText renders a JSON scalar as display text; objects, arrays and null are empty
func scalarText(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64, bool:
		return string(bytes.TrimSpace(raw))
	default:
		return ""
	}
}
