package aircraft

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the aircraft router. The photo sub-router mounts under
// /{id}/photos.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, photoRoutes chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Mount("/{id}/photos", photoRoutes)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/all", h.AdminList)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
