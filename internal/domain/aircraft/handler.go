package aircraft

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/domain/photo"
	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// Handler handles aircraft HTTP requests
type Handler struct {
	service Service
	photos  *photo.Manager
}

// NewHandler creates aircraft handler
func NewHandler(service Service, photos *photo.Manager) *Handler {
	return &Handler{service: service, photos: photos}
}

// DetailResponse is a listing plus its photo collection
type DetailResponse struct {
	*Aircraft
	Photos []*photo.PhotoResponse `json:"photos"`
}

// CreateResponse is the created listing plus per-file photo outcomes
type CreateResponse struct {
	*Aircraft
	Photos *photo.BatchResponse `json:"photos,omitempty"`
}

// List handles GET /aircraft. Public: only active listings are visible.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromQuery(r)
	filter.Status = StatusActive
	h.list(w, r, filter)
}

// AdminList handles GET /aircraft/all with an optional status filter
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromQuery(r)
	filter.Status = r.URL.Query().Get("status")
	h.list(w, r, filter)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter Filter) {
	items, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	pages := (total + limit - 1) / limit
	page := filter.Offset/limit + 1
	response.WithMeta(w, items, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: filter.Offset+limit < total,
		HasPrev: filter.Offset > 0,
	})
}

// Get handles GET /aircraft/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAircraftNotFound) {
			response.NotFound(w, "Aircraft not found")
			return
		}
		response.InternalError(w)
		return
	}

	photos, err := h.photos.ListByAircraft(r.Context(), a.ID)
	if err != nil {
		response.InternalError(w)
		return
	}
	items := make([]*photo.PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = photo.PhotoResponseFromEntity(p, h.photos, r.Host)
	}

	response.OK(w, &DetailResponse{Aircraft: a, Photos: items})
}

// Create handles POST /aircraft. Accepts either a pure JSON body, or a
// multipart payload with a "listing" JSON part plus "photos" file parts, in
// which case the photos attach in the same call with per-file outcomes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		h.createMultipart(w, r)
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

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrRegistrationTaken) {
			response.Conflict(w, "Registration already listed")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, &CreateResponse{Aircraft: a})
}

func (h *Handler) createMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart payload")
		return
	}

	raw := r.FormValue("listing")
	if raw == "" {
		response.BadRequest(w, "Missing \"listing\" part")
		return
	}
	var req CreateRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		response.BadRequest(w, "Invalid \"listing\" JSON")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var files []photo.CandidateFile
	if len(r.MultipartForm.File["photos"]) > 0 {
		var err error
		files, err = photo.ReadCandidates(r)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	a, result, err := h.service.CreateWithPhotos(r.Context(), req, files)
	if err != nil {
		if errors.Is(err, ErrRegistrationTaken) {
			response.Conflict(w, "Registration already listed")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, &CreateResponse{
		Aircraft: a,
		Photos:   photo.BatchResponseFromResult(result, h.photos, r.Host),
	})
}

// Update handles PATCH /aircraft/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAircraftNotFound):
			response.NotFound(w, "Aircraft not found")
		case errors.Is(err, ErrRegistrationTaken):
			response.Conflict(w, "Registration already listed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, a)
}

// Delete handles DELETE /aircraft/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrAircraftNotFound) {
			response.NotFound(w, "Aircraft not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
