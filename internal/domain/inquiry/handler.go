package inquiry

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// Handler handles inquiry HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates inquiry handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /aircraft/{id}/inquiries (public)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	aircraftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	i, err := h.service.Create(r.Context(), aircraftID, req)
	if err != nil {
		if IsNotFound(err) {
			response.NotFound(w, "Aircraft not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, i)
}

// List handles GET /inquiries with an optional unhandled=true filter
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	unhandledOnly := r.URL.Query().Get("unhandled") == "true"

	inquiries, err := h.service.List(r.Context(), unhandledOnly)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, inquiries)
}

// MarkHandled handles PATCH /inquiries/{id}/handled
func (h *Handler) MarkHandled(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid inquiry ID")
		return
	}

	i, err := h.service.MarkHandled(r.Context(), id)
	if err != nil {
		if IsNotFound(err) {
			response.NotFound(w, "Inquiry not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, i)
}
