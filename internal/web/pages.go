// Package web serves the HTML pages of the site.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// SiteInfo is the site-wide text shown in the layout.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
}

// DefaultSite matches the published site.
var DefaultSite = SiteInfo{
	Title:       "UI Engineering Notes",
	Description: "A living log of frontend and UI engineering concepts, patterns, and practical code snippets, generated and curated daily.",
	Author:      "Ammar",
}

// pageData is the root object every template receives.
type pageData struct {
	Site       SiteInfo
	Title      string
	Year       int
	LiveReload bool
	IsLog      bool
	Page       any
}

// templates holds one parsed set per page, each sharing the layout.
type templates map[string]*template.Template

var pageNames = []string{"home", "listing", "document", "notfound"}

func parseTemplates() (templates, error) {
	out := make(templates, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes a page into a buffer first so a template error never
// produces a half-written response.
func (t templates) render(w http.ResponseWriter, status int, name string, data pageData) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	tmpl, ok := t[name]
	if !ok {
		slog.Error("unknown template", slog.String("template", name))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
