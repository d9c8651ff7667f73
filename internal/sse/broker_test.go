package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDocumentEvent(t *testing.T) {
	b := NewBroker(time.Minute)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDocumentEvent("updated", models.CategoryLog, "2024-03-05")

	var msgs []string
	for len(msgs) < 2 {
		select {
		case msg := <-ch:
			msgs = append(msgs, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("timeout; got %v", msgs)
		}
	}
	if !strings.Contains(msgs[0], "event: document.updated") || !strings.Contains(msgs[0], `"path":"/logs/2024-03-05"`) {
		t.Errorf("document event = %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "event: listing.updated") || !strings.Contains(msgs[1], `"path":"/logs"`) {
		t.Errorf("listing event = %q", msgs[1])
	}
}

func TestListingThrottlePerCategory(t *testing.T) {
	b := NewBroker(time.Minute)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDocumentEvent("created", models.CategoryLog, "a")
	b.PublishDocumentEvent("updated", models.CategoryLog, "b")
	b.PublishDocumentEvent("deleted", models.CategorySnippet, "c")

	// Five messages are expected: three document events and one
	// listing.updated per category.
	counts := map[string]int{}
	deadline := time.After(time.Second)
	for received := 0; received < 5; received++ {
		select {
		case msg := <-ch:
			s := string(msg)
			switch {
			case strings.Contains(s, "event: listing.updated"):
				counts["listing"]++
			case strings.Contains(s, "event: document."):
				counts["document"]++
			}
		case <-deadline:
			t.Fatalf("timeout; counts = %v", counts)
		}
	}
	select {
	case msg := <-ch:
		t.Errorf("unexpected extra message %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
	if counts["document"] != 3 || counts["listing"] != 2 {
		t.Errorf("counts = %v, want 3 document and 2 listing", counts)
	}
}

// flushRecorder guards the body so the test can read it while the handler
// goroutine writes.
type flushRecorder struct {
	mu sync.Mutex
	*httptest.ResponseRecorder
}

func (f *flushRecorder) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ResponseRecorder.Write(p)
}

func (f *flushRecorder) body() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ResponseRecorder.Body.String()
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for b.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	b.Publish(Event{Type: EventDocumentUpdated, Data: DocumentData{Path: "/snippets/x", Slug: "x"}})

	deadline = time.Now().Add(time.Second)
	for !strings.Contains(w.body(), "event: document.updated") {
		if time.Now().After(deadline) {
			t.Fatalf("handler output missing event: %q", w.body())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	<-done

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	deadline = time.Now().Add(time.Second)
	for b.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not cleaned up after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Safe no-ops after close.
	b.Publish(Event{Type: EventDocumentUpdated})
	b.PublishDocumentEvent("updated", models.CategoryLog, "x")
	b.Close()
}
