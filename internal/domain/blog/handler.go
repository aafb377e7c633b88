package blog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// Handler handles blog HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates blog handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /blog (published only)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context(), true)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, posts)
}

// GetBySlug handles GET /blog/{slug}
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, p)
}

// AdminList handles GET /blog/all, drafts included
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context(), false)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, posts)
}

// Create handles POST /blog
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, "Slug already in use")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, p)
}

// Update handles PATCH /blog/{slug}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Update(r.Context(), slug, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrSlugTaken):
			response.Conflict(w, "Slug already in use")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, p)
}

// Delete handles DELETE /blog/{slug}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
