package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/testutil"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind string, c models.Category, slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind+":"+string(c)+"/"+slug)
}

func (r *recorder) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatch(t *testing.T, root string) *recorder {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan struct{})
	go func() {
		_ = Watch(ctx, root, testutil.Logger(), rec.record)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Let the watcher register before the test touches files.
	time.Sleep(100 * time.Millisecond)
	return rec
}

func TestWatchReportsDocumentChanges(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "logs/2024-01-01.md", "### Old\n")
	rec := startWatch(t, root)

	testutil.WriteFile(t, root, "logs/2024-03-05.md", "### New\n")
	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return rec.has("created:log/2024-03-05")
	}, "expected created event")

	if err := os.Remove(filepath.Join(root, "logs", "2024-01-01.md")); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return rec.has("deleted:log/2024-01-01")
	}, "expected deleted event")
}

func TestWatchPicksUpNewCategoryDir(t *testing.T) {
	root := t.TempDir()
	rec := startWatch(t, root)

	if err := os.MkdirAll(filepath.Join(root, "snippets"), 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	testutil.WriteFile(t, root, "snippets/use-fetch.md", "### useFetch\n")

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return rec.has("created:snippet/use-fetch")
	}, "expected created event in new category dir")
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "logs/keep.md", "x")
	rec := startWatch(t, root)

	testutil.WriteFile(t, root, "logs/notes.txt", "x")
	testutil.WriteFile(t, root, "README.md", "x")
	time.Sleep(300 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 0 {
		t.Errorf("unexpected events: %v", rec.events)
	}
}

func TestMerge(t *testing.T) {
	cases := []struct{ prev, next, want string }{
		{"", KindUpdated, KindUpdated},
		{KindCreated, KindUpdated, KindCreated},
		{KindUpdated, KindDeleted, KindDeleted},
		{KindDeleted, KindCreated, KindUpdated},
		{KindUpdated, KindUpdated, KindUpdated},
	}
	for _, c := range cases {
		if got := merge(c.prev, c.next); got != c.want {
			t.Errorf("merge(%q, %q) = %q, want %q", c.prev, c.next, got, c.want)
		}
	}
}

func TestDocumentKey(t *testing.T) {
	root := "/content"
	cases := []struct {
		path string
		ok   bool
		want docKey
	}{
		{"/content/logs/2024-03-05.md", true, docKey{models.CategoryLog, "2024-03-05"}},
		{"/content/snippets/a.md", true, docKey{models.CategorySnippet, "a"}},
		{"/content/posts/a.md", false, docKey{}},
		{"/content/logs/deep/a.md", false, docKey{}},
		{"/content/logs/a.txt", false, docKey{}},
		{"/content/logs/.md", false, docKey{}},
	}
	for _, c := range cases {
		got, ok := documentKey(root, filepath.FromSlash(c.path))
		if ok != c.ok || got != c.want {
			t.Errorf("documentKey(%q) = %+v, %v", c.path, got, ok)
		}
	}
}
