package assist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the assist router, back-office only
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/listing-copy", h.ListingCopy)
	r.Post("/blog-draft", h.BlogDraft)

	return r
}
