// Package watch reports changes to documents on disk, for live reload in
// development.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
)

// Change kinds passed to a ChangeFunc.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// settle is how long a burst of events on one file is coalesced.
const settle = 100 * time.Millisecond

// ChangeFunc is called once per settled change to a document.
type ChangeFunc func(kind string, category models.Category, slug string)

type docKey struct {
	category models.Category
	slug     string
}

// Watch observes the category directories under root until ctx is cancelled.
// Category directories created after startup are picked up through the watch
// on root itself.
func Watch(ctx context.Context, root string, logger *slog.Logger, onChange ChangeFunc) error {
	root = filepath.Clean(root)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}
	for _, c := range models.Categories() {
		addCategoryDir(w, filepath.Join(root, c.Dir()), logger)
	}

	logger.Info("watcher: started", slog.String("root", root))

	pending := make(map[docKey]string)
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	schedule := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(settle)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(settle)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-flushCh:
			for key, kind := range pending {
				logger.Debug("watcher: change",
					slog.String("category", string(key.category)),
					slog.String("slug", key.slug),
					slog.String("op", kind))
				if onChange != nil {
					onChange(kind, key.category, key.slug)
				}
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 && filepath.Dir(ev.Name) == root {
				if c, ok := categoryForDir(filepath.Base(ev.Name)); ok {
					addCategoryDir(w, ev.Name, logger)
					logger.Debug("watcher: category dir created", slog.String("category", string(c)))
				}
				continue
			}

			key, ok := documentKey(root, ev.Name)
			if !ok {
				continue
			}
			kind := ""
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = KindCreated
			case ev.Op&fsnotify.Write != 0:
				kind = KindUpdated
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				kind = KindDeleted
			default:
				continue
			}
			pending[key] = merge(pending[key], kind)
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// merge folds a new event into the pending kind for the same document. A
// create followed by writes is still a create; anything followed by a
// delete is a delete; a delete followed by a create is an update.
func merge(prev, next string) string {
	switch {
	case prev == "":
		return next
	case next == KindDeleted:
		return KindDeleted
	case prev == KindDeleted:
		return KindUpdated
	case prev == KindCreated:
		return KindCreated
	}
	return next
}

func addCategoryDir(w *fsnotify.Watcher, dir string, logger *slog.Logger) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.Add(dir); err != nil {
		logger.Warn("watcher: add dir failed", slog.String("path", dir), slog.String("error", err.Error()))
	}
}

func categoryForDir(name string) (models.Category, bool) {
	for _, c := range models.Categories() {
		if c.Dir() == name {
			return c, true
		}
	}
	return "", false
}

// documentKey maps {root}/{dir}/{slug}.md to its category and slug.
func documentKey(root, abs string) (docKey, bool) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return docKey{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 || !strings.HasSuffix(parts[1], storage.Extension) {
		return docKey{}, false
	}
	c, ok := categoryForDir(parts[0])
	if !ok {
		return docKey{}, false
	}
	slug := strings.TrimSuffix(parts[1], storage.Extension)
	if storage.ValidateSlug(slug) != nil {
		return docKey{}, false
	}
	return docKey{category: c, slug: slug}, true
}
