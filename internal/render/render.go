// Package render converts Markdown documents to HTML for pages and to ANSI
// text for the terminal.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	notesparser "github.com/AmmarNaser/ui-engineering-notes/internal/parser"
)

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "github-dark"

// Renderer turns Markdown into sanitised HTML. It holds no per-call state
// and is safe for concurrent use.
type Renderer struct {
	style  string
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer highlighting code with the named chroma style.
// Unknown or empty names fall back to DefaultStyle.
func New(style string) *Renderer {
	if style == "" || styles.Get(style) == styles.Fallback {
		style = DefaultStyle
	}
	return &Renderer{
		style:  style,
		engine: newEngine(style),
		policy: newPolicy(),
	}
}

func newEngine(style string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// newPolicy allows user-generated-content markup plus the attributes the
// highlighter and heading IDs rely on.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// Style returns the chroma style in use.
func (r *Renderer) Style() string {
	return r.style
}

// Render converts a Markdown document, minus any frontmatter, to HTML that
// is safe to embed for trusted content.
func (r *Renderer) Render(markdown []byte) (template.HTML, error) {
	_, body := notesparser.SplitFrontmatter(markdown)
	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("render: markdown convert: %w", err)
	}
	clean := r.policy.SanitizeBytes(buf.Bytes())
	return template.HTML(clean), nil //nolint:gosec // sanitised above
}

// StyleCSS returns the stylesheet for the highlighter's CSS classes.
func (r *Renderer) StyleCSS() (string, error) {
	var sb strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, styles.Get(r.style)); err != nil {
		return "", fmt.Errorf("render: write css: %w", err)
	}
	return sb.String(), nil
}
