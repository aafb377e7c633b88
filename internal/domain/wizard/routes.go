package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the wizard router. Every route requires the admin middleware;
// sessions are back-office only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/{sessionID}", h.Get)
	r.Patch("/{sessionID}/fields", h.PatchFields)
	r.Post("/{sessionID}/next", h.Next)
	r.Post("/{sessionID}/prev", h.Prev)
	r.Post("/{sessionID}/candidates", h.AddCandidates)
	r.Patch("/{sessionID}/candidates/move", h.MoveCandidate)
	r.Delete("/{sessionID}/candidates/{index}", h.RemoveCandidate)
	r.Post("/{sessionID}/submit", h.Submit)

	return r
}
