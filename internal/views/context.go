// Package views renders the site's HTML pages as templ components.
//
// The content document is read from the render context, so every page and the
// shared layout see the same snapshot without passing it through each call.
//
//go:generate templ generate
package views

import (
	"context"

	"portfolio.site/internal/models"
)

type documentKey struct{}

// WithDocument returns a context that makes doc available to every component
func WithDocument(ctx context.Context, doc *models.Document) context.Context {
	return context.WithValue(ctx, documentKey{}, doc)
}

// Document returns the content document in ctx, or an empty one
func Document(ctx context.Context) *models.Document {
	if doc, ok := ctx.Value(documentKey{}).(*models.Document); ok && doc != nil {
		return doc
	}
	return &models.Document{}
}

func pageTitle(title, brand string) string {
	if brand == "" {
		return title
	}
	return title + " | " + brand
}

func fullName(hero models.Hero) string {
	return hero.FirstName + " " + hero.LastName
}

var projectFormFields = []string{"title", "category", "image", "color"}
