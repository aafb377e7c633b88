package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the blog router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/all", h.AdminList)
		r.Post("/", h.Create)
		r.Patch("/{slug}", h.Update)
		r.Delete("/{slug}", h.Delete)
	})

	r.Get("/{slug}", h.GetBySlug)

	return r
}
