package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
)

// NewRouter creates a chi router with all API routes, meant to be mounted
// under /api.
func NewRouter(svc *noteservice.Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	})

	r.Get("/", h.Categories)
	r.Get("/{category}", h.Listing)
	r.Get("/{category}/{slug}", h.Document)

	return r
}
