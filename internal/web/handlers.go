package web

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/checksum"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
)

// Options configures the page router.
type Options struct {
	Site SiteInfo
	// Events, when non-nil, is mounted at GET /events and pages include the
	// live-reload script.
	Events http.Handler
}

// Handler holds page handlers.
type Handler struct {
	svc        *noteservice.Service
	tmpl       templates
	site       SiteInfo
	liveReload bool
}

// NewRouter creates a chi router serving every page, the stylesheets and,
// optionally, the live-reload event stream.
func NewRouter(svc *noteservice.Service, opts Options) (chi.Router, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.Site == (SiteInfo{}) {
		opts.Site = DefaultSite
	}
	h := &Handler{svc: svc, tmpl: tmpl, site: opts.Site, liveReload: opts.Events != nil}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.NotFound(h.notFound)

	r.Get("/", h.Home)
	r.Get("/static/highlight.css", h.HighlightCSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	for _, c := range models.Categories() {
		r.Get("/"+c.Dir(), h.Listing(c))
		r.Get("/"+c.Dir()+"/{slug}", h.Document(c))
	}

	if opts.Events != nil {
		r.Get("/events", opts.Events.ServeHTTP)
	}
	return r, nil
}

func (h *Handler) data(title string, page any) pageData {
	return pageData{
		Site:       h.site,
		Title:      title,
		LiveReload: h.liveReload,
		Page:       page,
	}
}

// Home handles GET /.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	h.tmpl.render(w, http.StatusOK, "home", h.data("", nil))
}

// Listing handles GET /logs and GET /snippets.
func (h *Handler) Listing(category models.Category) http.HandlerFunc {
	title := category.Label() + "s"
	return func(w http.ResponseWriter, r *http.Request) {
		page := h.svc.Listing(r.Context(), category)
		h.tmpl.render(w, http.StatusOK, "listing", h.data(title, page))
	}
}

// Document handles GET /logs/{slug} and GET /snippets/{slug}.
func (h *Handler) Document(category models.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		page, err := h.svc.Document(r.Context(), category, slug)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				slog.Error("document page failed",
					slog.String("category", string(category)),
					slog.String("slug", slug),
					slog.String("error", err.Error()))
			}
			h.documentNotFound(w, category)
			return
		}

		etag := page.ETag()
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if checksum.Matches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		title := page.Title
		data := h.data(title, page)
		data.IsLog = category == models.CategoryLog
		h.tmpl.render(w, http.StatusOK, "document", data)
	}
}

// HighlightCSS serves the code highlighting stylesheet.
func (h *Handler) HighlightCSS(w http.ResponseWriter, _ *http.Request) {
	css, err := h.svc.HighlightCSS()
	if err != nil {
		slog.Error("highlight css failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(css))
}

func (h *Handler) documentNotFound(w http.ResponseWriter, category models.Category) {
	h.tmpl.render(w, http.StatusNotFound, "notfound", h.data(category.Label()+" not found", nil))
}

func (h *Handler) notFound(w http.ResponseWriter, _ *http.Request) {
	h.tmpl.render(w, http.StatusNotFound, "notfound", h.data("Page not found", nil))
}
