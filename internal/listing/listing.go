// Package listing assembles the ordered index of a category.
package listing

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/parser"
	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
)

// DefaultConcurrency bounds the number of documents fetched at once.
const DefaultConcurrency = 8

// Assembler builds listings from the content store.
type Assembler struct {
	store       *storage.Accessor
	concurrency int
}

// New creates an Assembler. A non-positive concurrency uses DefaultConcurrency.
func New(store *storage.Accessor, concurrency int) *Assembler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Assembler{store: store, concurrency: concurrency}
}

// Build returns every document in category as a listing entry, newest slug
// first. Documents that cannot be read still appear, with the fallback title.
func (a *Assembler) Build(ctx context.Context, category models.Category) []models.ListingEntry {
	slugs := a.store.ListDocuments(ctx, category)
	entries := make([]models.ListingEntry, len(slugs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, slug := range slugs {
		g.Go(func() error {
			entries[i] = a.entry(gCtx, category, slug)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	Sort(entries)
	return entries
}

func (a *Assembler) entry(ctx context.Context, category models.Category, slug string) models.ListingEntry {
	title := parser.FallbackTitle(category)
	if doc, err := a.store.GetDocument(ctx, category, slug); err == nil {
		title = parser.ExtractTitle(string(doc.Content), category)
	}
	return models.ListingEntry{
		Slug:  slug,
		Title: title,
		Date:  parser.FormatSlug(slug),
	}
}

// Sort orders entries by slug, descending.
func Sort(entries []models.ListingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slug > entries[j].Slug
	})
}
