package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

// Accessor is the content store as seen by pages: enumeration and fetch never
// fail loudly. Errors are logged here and collapse to an empty listing or
// apperr.ErrNotFound.
type Accessor struct {
	provider Provider
	logger   *slog.Logger
}

// NewAccessor wraps provider with soft-fail semantics.
func NewAccessor(provider Provider, logger *slog.Logger) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{provider: provider, logger: logger}
}

// ListDocuments returns the slugs in category, or an empty slice if the
// backend could not be enumerated.
func (a *Accessor) ListDocuments(ctx context.Context, category models.Category) []string {
	slugs, err := a.provider.List(ctx, category)
	if err != nil {
		a.logger.Error("list documents failed",
			slog.String("category", string(category)),
			slog.String("error", err.Error()))
		return []string{}
	}
	if slugs == nil {
		return []string{}
	}
	return slugs
}

// GetDocument fetches one document. Every failure is reported as
// apperr.ErrNotFound.
func (a *Accessor) GetDocument(ctx context.Context, category models.Category, slug string) (*models.Document, error) {
	data, err := a.provider.Read(ctx, category, slug)
	if err != nil {
		attrs := []any{
			slog.String("category", string(category)),
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		}
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidSlug) {
			a.logger.Debug("document not found", attrs...)
		} else {
			a.logger.Warn("read document failed", attrs...)
		}
		return nil, apperr.ErrNotFound
	}
	return &models.Document{
		Slug:     slug,
		Category: category,
		Content:  data,
	}, nil
}
