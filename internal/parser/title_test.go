package parser

import (
	"strings"
	"testing"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "h3 heading",
			text: "### useFetch.js - Custom Hook",
			want: "useFetch.js - Custom Hook",
		},
		{
			name: "h3 strips code spans",
			text: "### `useFetch.js` - Custom Hook",
			want: "useFetch.js - Custom Hook",
		},
		{
			name: "h3 wins over earlier h1",
			text: "# Overview\n\n### Memoization\n",
			want: "Memoization",
		},
		{
			name: "reserved h2 labels are skipped",
			text: "## Concept\n\nSome text.\n\n## Debouncing Explained\n",
			want: "Debouncing Explained",
		},
		{
			name: "reserved label with colon and other case",
			text: "## when to use it:\n## Summary\n## Virtual Lists",
			want: "Virtual Lists",
		},
		{
			name: "h2 wins over h1",
			text: "# Notes\n## `useMemo` vs `useCallback`",
			want: "useMemo vs useCallback",
		},
		{
			name: "engineering note topic",
			text: "# Daily UI Engineering Note: CSS Container Queries\n\nBody.",
			want: "CSS Container Queries",
		},
		{
			name: "engineering note case-insensitive",
			text: "# frontend ENGINEERING NOTE:   Focus Traps  ",
			want: "Focus Traps",
		},
		{
			name: "plain h1",
			text: "# The `key` Prop",
			want: "The key Prop",
		},
		{
			name: "date heading is skipped",
			text: "# 2024-03-05\n\nHydration mismatches are subtle. More text.",
			want: "Hydration mismatches are subtle",
		},
		{
			name: "generated marker is skipped",
			text: "_Generated at 2024-03-05T10:00:00Z_\n\nReact batches state updates!",
			want: "React batches state updates",
		},
		{
			name: "comment and underscore lines are skipped",
			text: "// useDebounce.ts\n_draft_\n\nA debounced value hook? Yes.",
			want: "A debounced value hook",
		},
		{
			name: "frontmatter title wins",
			text: "---\ntitle: Layout Thrashing\n---\n### Something Else\n",
			want: "Layout Thrashing",
		},
		{
			name: "frontmatter without title falls through",
			text: "---\ntags: [css]\n---\n## Grid Areas\n",
			want: "Grid Areas",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractTitle(c.text, models.CategoryLog); got != c.want {
				t.Errorf("ExtractTitle = %q, want %q", got, c.want)
			}
		})
	}
}

func TestExtractTitle_LongSentenceTruncated(t *testing.T) {
	text := "This sentence keeps going well past the sixty character limit that titles have"
	got := ExtractTitle(text, models.CategorySnippet)
	want := text[:60] + "..."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTitle_TruncatesByRune(t *testing.T) {
	text := strings.Repeat("é", 70)
	got := ExtractTitle(text, models.CategorySnippet)
	if got != strings.Repeat("é", 60)+"..." {
		t.Errorf("got %q", got)
	}
}

func TestExtractTitle_Fallback(t *testing.T) {
	cases := []struct {
		text     string
		category models.Category
		want     string
	}{
		{"", models.CategoryLog, "Untitled Log"},
		{"\n\n   \n", models.CategorySnippet, "Untitled Snippet"},
		{"# 2024-03-05\n_generated_\n// nothing\n", models.CategoryLog, "Untitled Log"},
		{"...\n!?", models.CategorySnippet, "Untitled Snippet"},
	}
	for _, c := range cases {
		if got := ExtractTitle(c.text, c.category); got != c.want {
			t.Errorf("ExtractTitle(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestExtractTitle_Idempotent(t *testing.T) {
	text := "## Example\n### `useRef` Patterns\n"
	first := ExtractTitle(text, models.CategorySnippet)
	for i := 0; i < 3; i++ {
		if got := ExtractTitle(text, models.CategorySnippet); got != first {
			t.Fatalf("run %d = %q, want %q", i, got, first)
		}
	}
}

func TestTitleMatchersIndividually(t *testing.T) {
	byName := map[string]titleMatcher{}
	for _, m := range titleMatchers {
		byName[m.name] = m
	}
	cases := []struct {
		matcher string
		line    string
		want    string
		ok      bool
	}{
		{"h3", "### Title", "Title", true},
		{"h3", "#### Deeper", "", false},
		{"h3", "## Two", "", false},
		{"h2", "## Example:", "", false},
		{"h2", "## Examples", "Examples", true},
		{"h2", "### Three", "", false},
		{"h1", "# One", "One", true},
		{"h1", "## Two", "", false},
		{"sentence", "Hello world. Bye.", "Hello world", true},
		{"sentence", "_italic lead_", "", false},
		{"sentence", "", "", false},
	}
	for _, c := range cases {
		m, ok := byName[c.matcher]
		if !ok {
			t.Fatalf("no matcher %q", c.matcher)
		}
		got, matched := m.match(c.line)
		if matched != c.ok || got != c.want {
			t.Errorf("%s(%q) = (%q, %v), want (%q, %v)", c.matcher, c.line, got, matched, c.want, c.ok)
		}
	}
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body := SplitFrontmatter([]byte("---\ntitle: Hello\n---\n# Body\n"))
	if fm.Title != "Hello" {
		t.Errorf("title = %q", fm.Title)
	}
	if strings.Contains(string(body), "title:") || !strings.Contains(string(body), "# Body") {
		t.Errorf("body = %q", body)
	}

	fm, body = SplitFrontmatter([]byte("# No header\n"))
	if fm.Title != "" || strings.TrimSpace(string(body)) != "# No header" {
		t.Errorf("fm = %+v, body = %q", fm, body)
	}
}

func TestSplitFrontmatter_ThematicBreaksAreNotAHeader(t *testing.T) {
	doc := "---\n### Real Title\n---\nBody text here."
	fm, body := SplitFrontmatter([]byte(doc))
	if fm.Title != "" || string(body) != doc {
		t.Errorf("fm = %+v, body = %q", fm, body)
	}
	if got := ExtractTitle(doc, models.CategoryLog); got != "Real Title" {
		t.Errorf("ExtractTitle = %q, want %q", got, "Real Title")
	}
}
