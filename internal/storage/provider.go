// Package storage defines the content store abstraction and its backends.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

// Extension is the file extension recognised as a document.
const Extension = ".md"

// Provider is the interface for content backends.
type Provider interface {
	// List returns the slugs of every document in category, in no particular order.
	List(ctx context.Context, category models.Category) ([]string, error)
	// Read returns the raw bytes of one document. A missing document yields
	// an error wrapping apperr.ErrNotFound.
	Read(ctx context.Context, category models.Category, slug string) ([]byte, error)
}

// ValidateSlug rejects slugs that could address anything other than a single
// file inside a category directory.
func ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return fmt.Errorf("storage: empty slug: %w", apperr.ErrInvalidSlug)
	case strings.HasPrefix(slug, "."):
		return fmt.Errorf("storage: slug %q starts with a dot: %w", slug, apperr.ErrInvalidSlug)
	case strings.ContainsAny(slug, "/\\\x00"):
		return fmt.Errorf("storage: slug %q contains a separator: %w", slug, apperr.ErrInvalidSlug)
	case strings.Contains(slug, ".."):
		return fmt.Errorf("storage: slug %q contains a traversal sequence: %w", slug, apperr.ErrInvalidSlug)
	}
	return nil
}

// slugFromName strips the document extension, reporting false for names that
// are not documents.
func slugFromName(name string) (string, bool) {
	if !strings.HasSuffix(name, Extension) {
		return "", false
	}
	slug := strings.TrimSuffix(name, Extension)
	if slug == "" {
		return "", false
	}
	return slug, true
}
