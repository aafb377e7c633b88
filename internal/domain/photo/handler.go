package photo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/storage"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger file
// parts spill to disk
const maxUploadMemory = 32 << 20

// Handler handles photo HTTP requests
type Handler struct {
	manager *Manager
}

// NewHandler creates photo handler
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Upload handles POST /aircraft/{id}/photos. Accepts a multipart payload with
// one or more file parts under "photos" plus positional "alt_text"/"caption"
// values, and always answers with a per-file outcome summary.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	aircraftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart payload")
		return
	}

	files, err := ReadCandidates(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.manager.UploadBatch(r.Context(), aircraftID, files)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, BatchResponseFromResult(result, h.manager, r.Host))
}

// ReadCandidates extracts candidate files from a parsed multipart request.
// Positional alt_text/caption values line up with the file parts.
func ReadCandidates(r *http.Request) ([]CandidateFile, error) {
	if r.MultipartForm == nil {
		return nil, errors.New("missing multipart form")
	}

	parts := r.MultipartForm.File["photos"]
	if len(parts) == 0 {
		return nil, errors.New("no files under field \"photos\"")
	}

	altTexts := r.MultipartForm.Value["alt_text"]
	captions := r.MultipartForm.Value["caption"]

	files := make([]CandidateFile, 0, len(parts))
	for i, part := range parts {
		f, err := part.Open()
		if err != nil {
			return nil, errors.New("failed to read file part")
		}
		// One extra byte so the size check can see an oversized file
		data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
		f.Close()
		if err != nil {
			return nil, errors.New("failed to read file part")
		}

		c := CandidateFile{Data: data, OriginalName: part.Filename}
		if i < len(altTexts) {
			c.AltText = altTexts[i]
		}
		if i < len(captions) {
			c.Caption = captions[i]
		}
		files = append(files, c)
	}
	return files, nil
}

// List handles GET /aircraft/{id}/photos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	aircraftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	photos, err := h.manager.ListByAircraft(r.Context(), aircraftID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = PhotoResponseFromEntity(p, h.manager, r.Host)
	}

	response.OK(w, items)
}

// Reorder handles PATCH /aircraft/{id}/photos/reorder. All-or-nothing: a set
// mismatch rejects the whole request and nothing moves.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	aircraftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid aircraft ID")
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.manager.Reorder(r.Context(), aircraftID, req.PhotoIDs); err != nil {
		if errors.Is(err, ErrInvalidSet) {
			response.Conflict(w, "Photo set does not match the listing's current photos")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// Delete handles DELETE /aircraft/{id}/photos/{photoID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.manager.Remove(r.Context(), photoID); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// SetPrimary handles PATCH /aircraft/{id}/photos/{photoID}/primary
func (h *Handler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	p, err := h.manager.SetPrimary(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, PhotoResponseFromEntity(p, h.manager, r.Host))
}

// UpdateDetails handles PATCH /aircraft/{id}/photos/{photoID}
func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	var req UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.manager.UpdateDetails(r.Context(), photoID, req.AltText, req.Caption)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, PhotoResponseFromEntity(p, h.manager, r.Host))
}
