package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/checksum"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// category resolves the {category} URL parameter, writing a 404 when it
// names neither logs nor snippets.
func category(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	c, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrUnknownCategory.Error()))
		return "", false
	}
	return c, true
}

// Categories handles GET /api.
//
//	@Summary		List content categories
//	@Tags			content
//	@Produce		json
//	@Router			/ [get]
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	cats := models.Categories()
	out := make([]map[string]string, len(cats))
	for i, c := range cats {
		out[i] = map[string]string{
			"category": string(c),
			"href":     "/api/" + c.Dir(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// Listing handles GET /api/{category}.
//
//	@Summary		List documents in a category, newest first
//	@Tags			content
//	@Produce		json
//	@Param			category	path		string	true	"logs or snippets"
//	@Success		200			{object}	ListingResponse
//	@Failure		404			{object}	errResponse
//	@Router			/{category} [get]
func (h *Handler) Listing(w http.ResponseWriter, r *http.Request) {
	c, ok := category(w, r)
	if !ok {
		return
	}
	page := h.svc.Listing(r.Context(), c)
	writeJSON(w, http.StatusOK, ListingResponse{
		Category: page.Category,
		Entries:  page.Entries,
		Total:    len(page.Entries),
	})
}

// Document handles GET /api/{category}/{slug}.
//
//	@Summary		Get one rendered document
//	@Tags			content
//	@Produce		json
//	@Param			category	path		string	true	"logs or snippets"
//	@Param			slug		path		string	true	"Document slug"
//	@Success		200			{object}	DocumentResponse
//	@Failure		404			{object}	errResponse
//	@Router			/{category}/{slug} [get]
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	c, ok := category(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")
	page, err := h.svc.Document(r.Context(), c, slug)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.Error("get document failed",
				slog.String("category", string(c)),
				slog.String("slug", slug),
				slog.String("error", err.Error()))
		}
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrNotFound.Error()))
		return
	}

	etag := page.ETag()
	w.Header().Set("ETag", etag)
	if checksum.Matches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
