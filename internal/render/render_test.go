package render

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := New("")
	out, err := r.Render([]byte("# Hello\n\nSome *emphasis* and `code`.\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	for _, want := range []string{`<h1 id="hello">Hello</h1>`, "<em>emphasis</em>", "<code>code</code>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	r := New("")
	out, err := r.Render([]byte("Before\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script") || strings.Contains(html, "javascript:") {
		t.Errorf("unsafe markup survived:\n%s", html)
	}
	if !strings.Contains(html, "Before") {
		t.Errorf("text lost:\n%s", html)
	}
}

func TestRenderHighlightsCode(t *testing.T) {
	r := New("monokai")
	if r.Style() != "monokai" {
		t.Errorf("style = %q", r.Style())
	}
	out, err := r.Render([]byte("```js\nconst a = 1;\n```\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `class="chroma"`) {
		t.Errorf("expected class-based highlighting:\n%s", html)
	}
	if !strings.Contains(html, "const") {
		t.Errorf("code text lost:\n%s", html)
	}
}

func TestRenderStripsFrontmatter(t *testing.T) {
	r := New("")
	out, err := r.Render([]byte("---\ntitle: Hidden\n---\nVisible body\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "title:") || !strings.Contains(string(out), "Visible body") {
		t.Errorf("output = %s", out)
	}
}

func TestRenderKeepsHeadingBetweenThematicBreaks(t *testing.T) {
	r := New("")
	out, err := r.Render([]byte("---\n### Real Title\n---\nBody text here."))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<hr", "Real Title</h3>", "Body text here."} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := New("")
	out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("expected table:\n%s", out)
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	if got := New("no-such-style").Style(); got != DefaultStyle {
		t.Errorf("style = %q, want %q", got, DefaultStyle)
	}
}

func TestStyleCSS(t *testing.T) {
	css, err := New("").StyleCSS()
	if err != nil {
		t.Fatalf("StyleCSS: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("css missing .chroma selector")
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal([]byte("---\ntitle: x\n---\n# Hooks\n\nRules of hooks.\n"), 60, "notty")
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(out, "Hooks") || !strings.Contains(out, "Rules of hooks") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "title:") {
		t.Errorf("frontmatter leaked: %q", out)
	}
}
