package inquiry

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the back-office inquiry router. The public create route
// mounts on the aircraft router separately.
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Patch("/{id}/handled", h.MarkHandled)

	return r
}
