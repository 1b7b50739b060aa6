package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"portfolio.site/internal/models"
)

func TestDefaultDocument(t *testing.T) {
	c := qt.New(t)

	doc := models.DefaultDocument()
	c.Assert(doc.Projects, qt.HasLen, 4)

	ids := make([]string, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		ids = append(ids, p.ID)
		c.Assert(p.Number, qt.Equals, p.ID[1:])
	}
	c.Assert(ids, qt.DeepEquals, []string{"p04", "p03", "p02", "p01"})
}

func TestDefaultDocument_ReturnsFreshCopy(t *testing.T) {
	c := qt.New(t)

	a := models.DefaultDocument()
	a.Projects[0].Title = "changed"

	b := models.DefaultDocument()
	c.Assert(b.Projects[0].Title, qt.Equals, "JobID")
}

func TestDefaultContent_DecodesToDefaultDocument(t *testing.T) {
	c := qt.New(t)
	c.Assert(models.DefaultContent().Document(), qt.DeepEquals, models.DefaultDocument())
}

func TestProjectID(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		n          int
		wantID     string
		wantNumber string
	}{
		{1, "p01", "01"},
		{9, "p09", "09"},
		{12, "p12", "12"},
		{100, "p100", "100"},
	}
	for _, tt := range tests {
		c.Assert(models.ProjectID(tt.n), qt.Equals, tt.wantID)
		c.Assert(models.ProjectNumber(tt.n), qt.Equals, tt.wantNumber)
	}
}

func TestFindProject(t *testing.T) {
	c := qt.New(t)

	doc := models.DefaultDocument()

	c.Run("hit returns pointer into the slice", func(c *qt.C) {
		p := doc.FindProject("p02")
		c.Assert(p, qt.IsNotNil)
		c.Assert(p.Title, qt.Equals, "Fieldnotes")
	})

	c.Run("miss returns nil", func(c *qt.C) {
		c.Assert(doc.FindProject("p99"), qt.IsNil)
	})
}

func TestParseContent(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "object", body: `{"projects": []}`},
		{name: "empty object", body: `{}`},
		{name: "array", body: `[]`, wantErr: "content must be a JSON object"},
		{name: "null", body: `null`, wantErr: "content must be a JSON object"},
		{name: "string", body: `"hi"`, wantErr: "content must be a JSON object"},
		{name: "truncated", body: `{"projects": [`, wantErr: "unexpected end of JSON input"},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			content, err := models.ParseContent([]byte(tt.body))
			if tt.wantErr != "" {
				c.Assert(err, qt.ErrorMatches, tt.wantErr)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Assert(content, qt.IsNotNil)
		})
	}
}

func TestContent_KeepsUnknownKeysAndValues(t *testing.T) {
	c := qt.New(t)
	body := `{"site":{"brand":"B","badge_year":2024,"tagline":"t"},"about":{"bio":"x"},"projects":[{"id":"p01","tools":["go"],"deliverables":[]}]}`

	content, err := models.ParseContent([]byte(body))
	c.Assert(err, qt.IsNil)

	out, err := json.Marshal(content)
	c.Assert(err, qt.IsNil)
	c.Assert(string(out), qt.JSONEquals, map[string]any{
		"site":     map[string]any{"brand": "B", "badge_year": 2024, "tagline": "t"},
		"about":    map[string]any{"bio": "x"},
		"projects": []any{map[string]any{"id": "p01", "tools": []any{"go"}, "deliverables": []any{}}},
	})
}

func TestContent_DocumentIsLenient(t *testing.T) {
	c := qt.New(t)

	c.Run("scalar values of another type render as text", func(c *qt.C) {
		content, err := models.ParseContent([]byte(`{"site":{"brand":"B","badge_year":2024},"projects":[{"id":"p01","number":1,"deliverables":["a",2]}]}`))
		c.Assert(err, qt.IsNil)

		doc := content.Document()
		c.Assert(doc.Site, qt.DeepEquals, models.Site{Brand: "B", BadgeYear: "2024"})
		c.Assert(doc.Projects, qt.DeepEquals, []models.Project{{ID: "p01", Number: "1", Deliverables: []string{"a", "2"}}})
	})

	c.Run("mismatched shapes only blank their own field", func(c *qt.C) {
		content, err := models.ParseContent([]byte(`{"site":"oops","hero":{"first_name":{"x":1},"last_name":"L"},"social":{"links":"none"},"projects":[{"id":"p02"}]}`))
		c.Assert(err, qt.IsNil)

		doc := content.Document()
		c.Assert(doc.Site, qt.DeepEquals, models.Site{})
		c.Assert(doc.Hero, qt.DeepEquals, models.Hero{LastName: "L"})
		c.Assert(doc.Social.Links, qt.IsNil)
		c.Assert(doc.FindProject("p02"), qt.IsNotNil)
	})

	c.Run("projects of the wrong shape", func(c *qt.C) {
		content, err := models.ParseContent([]byte(`{"projects":{"p01":{}}}`))
		c.Assert(err, qt.IsNil)
		c.Assert(content.Document().Projects, qt.HasLen, 0)
	})
}

func TestContent_PrependProject(t *testing.T) {
	c := qt.New(t)

	c.Run("keeps existing entries untouched", func(c *qt.C) {
		content, err := models.ParseContent([]byte(`{"projects":[{"id":"p01","tools":["go"]}],"extra":true}`))
		c.Assert(err, qt.IsNil)

		n, err := content.ProjectCount()
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, 1)

		c.Assert(content.PrependProject(models.Project{ID: "p02", Number: "02"}), qt.IsNil)

		out, err := json.Marshal(content)
		c.Assert(err, qt.IsNil)
		c.Assert(string(out), qt.JSONEquals, map[string]any{
			"extra": true,
			"projects": []any{
				map[string]any{"id": "p02", "number": "02", "title": "", "category": "", "overview": "", "image": "", "color": ""},
				map[string]any{"id": "p01", "tools": []any{"go"}},
			},
		})
	})

	c.Run("missing list starts empty", func(c *qt.C) {
		content := models.Content{}
		n, err := content.ProjectCount()
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, 0)
		c.Assert(content.PrependProject(models.Project{ID: "p01"}), qt.IsNil)
		c.Assert(content.Document().Projects, qt.HasLen, 1)
	})

	c.Run("non-list projects are refused", func(c *qt.C) {
		content, err := models.ParseContent([]byte(`{"projects":"none"}`))
		c.Assert(err, qt.IsNil)

		_, err = content.ProjectCount()
		c.Assert(err, qt.ErrorMatches, "projects is not a list: .*")
		c.Assert(content.PrependProject(models.Project{}), qt.ErrorMatches, "projects is not a list: .*")
		c.Assert(string(content["projects"]), qt.Equals, `"none"`)
	})
}

func TestParseContent_NotObjectIsSentinel(t *testing.T) {
	c := qt.New(t)
	_, err := models.ParseContent([]byte(`[1]`))
	c.Assert(errors.Is(err, models.ErrNotObject), qt.IsTrue)
}
