package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the photo router, mounted under /aircraft/{id}/photos.
// Reads are public; mutations require the admin middleware.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.Upload)
		r.Patch("/reorder", h.Reorder)
		r.Patch("/{photoID}", h.UpdateDetails)
		r.Patch("/{photoID}/primary", h.SetPrimary)
		r.Delete("/{photoID}", h.Delete)
	})

	return r
}
