// Package noteservice composes the content store, listing assembler and
// renderer into the page models served over HTTP, the CLI and MCP.
package noteservice

import (
	"context"
	"fmt"
	"html/template"

	"github.com/AmmarNaser/ui-engineering-notes/internal/checksum"
	"github.com/AmmarNaser/ui-engineering-notes/internal/listing"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/parser"
	"github.com/AmmarNaser/ui-engineering-notes/internal/render"
	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
)

// ListingPage is the model of an index page.
type ListingPage struct {
	Category models.Category       `json:"category"`
	Entries  []models.ListingEntry `json:"entries"`
}

// DocumentPage is the model of a detail page.
type DocumentPage struct {
	Slug     string          `json:"slug"`
	Category models.Category `json:"category"`
	Title    string          `json:"title"`
	Date     string          `json:"date"`
	HTML     template.HTML   `json:"html"`
	Checksum string          `json:"checksum"`
	Raw      []byte          `json:"-"`
}

// ETag returns the entity tag of the underlying document.
func (p *DocumentPage) ETag() string {
	return checksum.Quote(p.Checksum)
}

// Service coordinates storage, listing and rendering.
type Service struct {
	store    *storage.Accessor
	listing  *listing.Assembler
	renderer *render.Renderer
}

// NewService creates a new note service.
func NewService(store *storage.Accessor, assembler *listing.Assembler, renderer *render.Renderer) *Service {
	return &Service{store: store, listing: assembler, renderer: renderer}
}

// Listing returns the ordered index of category. It never fails; an
// unreachable store yields an empty page.
func (s *Service) Listing(ctx context.Context, category models.Category) ListingPage {
	return ListingPage{
		Category: category,
		Entries:  s.listing.Build(ctx, category),
	}
}

// Raw returns the unrendered document, or apperr.ErrNotFound.
func (s *Service) Raw(ctx context.Context, category models.Category, slug string) (*models.Document, error) {
	return s.store.GetDocument(ctx, category, slug)
}

// Document reads and renders one document. A missing document returns
// apperr.ErrNotFound.
func (s *Service) Document(ctx context.Context, category models.Category, slug string) (*DocumentPage, error) {
	doc, err := s.store.GetDocument(ctx, category, slug)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.Render(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", category.Dir(), slug, err)
	}
	return &DocumentPage{
		Slug:     slug,
		Category: category,
		Title:    parser.ExtractTitle(string(doc.Content), category),
		Date:     parser.FormatSlug(slug),
		HTML:     html,
		Checksum: checksum.Sum(doc.Content),
		Raw:      doc.Content,
	}, nil
}

// HighlightCSS returns the stylesheet for rendered code blocks.
func (s *Service) HighlightCSS() (string, error) {
	return s.renderer.StyleCSS()
}
