package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

// FS implements Provider backed by a local content directory laid out as
// {root}/logs/*.md and {root}/snippets/*.md.
type FS struct {
	root string // absolute path to the content directory
}

// NewFS creates a new FS provider rooted at the given directory.
// A missing root is tolerated so that listings degrade to empty; a root that
// exists but is not a directory is a configuration error.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// CategoryDir returns the absolute directory holding category's documents.
func (f *FS) CategoryDir(category models.Category) string {
	return filepath.Join(f.root, category.Dir())
}

// safePath resolves a relative path against the content root and rejects
// any result that escapes it.
func (f *FS) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes content root: %s", rel)
	}
	return abs, nil
}

// List reads the category directory and returns the slug of every .md file
// directly inside it. Subdirectories are not descended into.
func (f *FS) List(ctx context.Context, category models.Category) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.CategoryDir(category))
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", category.Dir(), err)
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slug, ok := slugFromName(e.Name()); ok {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

// Read returns the raw bytes of {category}/{slug}.md.
func (f *FS) Read(ctx context.Context, category models.Category, slug string) ([]byte, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := filepath.Join(category.Dir(), slug+Extension)
	abs, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", rel, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}
