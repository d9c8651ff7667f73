// Package testutil provides shared test helpers for building content trees.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ContentDir creates a temporary content root populated with files, keyed by
// path relative to the root (e.g. "logs/2024-03-05.md").
func ContentDir(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		WriteFile(t, root, rel, body)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// WriteFile writes body to root/rel, creating parent directories.
func WriteFile(t *testing.T, root, rel, body string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Accessor builds a soft-fail accessor over a temporary content tree.
func Accessor(t *testing.T, files map[string]string) *storage.Accessor {
	t.Helper()
	_, store := ContentDir(t, files)
	return storage.NewAccessor(store, Logger())
}
