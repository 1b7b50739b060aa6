package store_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"

	"portfolio.site/internal/models"
	"portfolio.site/internal/store"
)

func writeFile(c *qt.C, body string) string {
	path := filepath.Join(c.TempDir(), "content.json")
	c.Assert(os.WriteFile(path, []byte(body), 0644), qt.IsNil)
	return path
}

func encode(c *qt.C, content models.Content) string {
	data, err := json.Marshal(content)
	c.Assert(err, qt.IsNil)
	return string(data)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "content.json")

	content := store.NewFileStore(path).Load()
	c.Assert(content.Document(), qt.DeepEquals, models.DefaultDocument())
	c.Assert(content.Document().Projects, qt.HasLen, 4)

	_, err := os.Stat(path)
	c.Assert(os.IsNotExist(err), qt.IsTrue, qt.Commentf("default must not be persisted"))
}

func TestLoad_ExistingFile(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name string
		body string
		want any
	}{
		{
			name: "empty projects list is kept",
			body: `{"projects": []}`,
			want: map[string]any{"projects": []any{}},
		},
		{
			name: "invalid JSON yields empty content",
			body: `{"projects": [`,
			want: map[string]any{},
		},
		{
			name: "non-object yields empty content",
			body: `[1, 2]`,
			want: map[string]any{},
		},
		{
			name: "values of another type are kept as written",
			body: `{"site":{"brand":"B","badge_year":2024},"projects":[{"id":"p01"}]}`,
			want: map[string]any{
				"site":     map[string]any{"brand": "B", "badge_year": 2024},
				"projects": []any{map[string]any{"id": "p01"}},
			},
		},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			content := store.NewFileStore(writeFile(c, tt.body)).Load()
			c.Assert(encode(c, content), qt.JSONEquals, tt.want)
		})
	}
}

func TestLoad_NumericFieldsStillRender(t *testing.T) {
	c := qt.New(t)
	path := writeFile(c, `{"site":{"brand":"B","badge_year":2024},"projects":[{"id":"p01"}]}`)

	doc := store.NewFileStore(path).Load().Document()
	c.Assert(doc.Site.Brand, qt.Equals, "B")
	c.Assert(doc.Site.BadgeYear, qt.Equals, "2024")
	c.Assert(doc.Projects, qt.HasLen, 1)
}

func TestLoad_UnreadableFileYieldsEmptyContent(t *testing.T) {
	c := qt.New(t)
	// a directory at the content path cannot be read as a file
	path := c.TempDir()

	c.Assert(store.NewFileStore(path).Load(), qt.DeepEquals, models.Content{})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "nested", "content.json")
	s := store.NewFileStore(path)

	content, err := models.ParseContent([]byte(`{"site":{"brand":"B","extra":[1,2]},"about":"me","projects":[{"id":"p01","deliverables":[]}]}`))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Save(content), qt.IsNil)
	c.Assert(encode(c, s.Load()), qt.JSONEquals, map[string]any{
		"site":     map[string]any{"brand": "B", "extra": []any{1, 2}},
		"about":    "me",
		"projects": []any{map[string]any{"id": "p01", "deliverables": []any{}}},
	})

	entries, err := os.ReadDir(filepath.Dir(path))
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 1, qt.Commentf("temp files must not be left behind"))
}

func TestSave_Nil(t *testing.T) {
	c := qt.New(t)
	s := store.NewFileStore(filepath.Join(c.TempDir(), "content.json"))
	c.Assert(s.Save(nil), qt.ErrorMatches, "content document is nil")
}

func TestUpdate(t *testing.T) {
	c := qt.New(t)

	c.Run("applies and persists the change", func(c *qt.C) {
		s := store.NewFileStore(filepath.Join(c.TempDir(), "content.json"))

		err := s.Update(func(content models.Content) error {
			content["site"] = json.RawMessage(`{"brand":"Updated"}`)
			return nil
		})
		c.Assert(err, qt.IsNil)
		c.Assert(s.Load().Document().Site.Brand, qt.Equals, "Updated")
		c.Assert(s.Load().Document().Projects, qt.HasLen, 4)
	})

	c.Run("callback error skips the write", func(c *qt.C) {
		path := filepath.Join(c.TempDir(), "content.json")
		s := store.NewFileStore(path)
		boom := errors.New("boom")

		err := s.Update(func(content models.Content) error { return boom })
		c.Assert(errors.Is(err, boom), qt.IsTrue)

		_, statErr := os.Stat(path)
		c.Assert(os.IsNotExist(statErr), qt.IsTrue)
	})

	c.Run("damaged file is left alone", func(c *qt.C) {
		const damaged = `{"site":{"brand":"B"},"projects":[`
		path := writeFile(c, damaged)
		s := store.NewFileStore(path)
		called := false

		err := s.Update(func(content models.Content) error {
			called = true
			return nil
		})
		c.Assert(err, qt.ErrorMatches, "failed to parse .*")
		c.Assert(called, qt.IsFalse)

		data, readErr := os.ReadFile(path)
		c.Assert(readErr, qt.IsNil)
		c.Assert(string(data), qt.Equals, damaged)
	})

	c.Run("concurrent updates are not lost", func(c *qt.C) {
		s := store.NewFileStore(filepath.Join(c.TempDir(), "content.json"))
		c.Assert(s.Save(models.Content{}), qt.IsNil)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Update(func(content models.Content) error {
					return content.PrependProject(models.Project{})
				})
			}()
		}
		wg.Wait()

		n, err := s.Load().ProjectCount()
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, 10)
	})
}
