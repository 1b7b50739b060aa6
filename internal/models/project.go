package models

import "fmt"

// Project represents a portfolio project
type Project struct {
	ID           string   `json:"id"`
	Number       string   `json:"number"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Overview     string   `json:"overview"`
	Image        string   `json:"image"`
	Color        string   `json:"color"`
	Deliverables []string `json:"deliverables,omitempty"`
}

// UnmarshalJSON decodes leniently
func (p *Project) UnmarshalJSON(data []byte) error {
	var deliverables []any
	decodeObject(data, map[string]any{
		"id":           &p.ID,
		"number":       &p.Number,
		"title":        &p.Title,
		"category":     &p.Category,
		"overview":     &p.Overview,
		"image":        &p.Image,
		"color":        &p.Color,
		"deliverables": &deliverables,
	})
	for _, d := range deliverables {
		switch v := d.(type) {
		case string:
			p.Deliverables = append(p.Deliverables, v)
		case float64, bool:
			p.Deliverables = append(p.Deliverables, fmt.Sprint(v))
		}
	}
	return nil
}

// ProjectID formats the id of the nth project ("p01", "p02", ...)
func ProjectID(n int) string {
	return fmt.Sprintf("p%02d", n)
}

// ProjectNumber formats the display number of the nth project
func ProjectNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}
