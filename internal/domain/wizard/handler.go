package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/domain/photo"
	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// SubmitResult is what a submission produced: the created listing and the
// per-file outcome of attaching the queued photos
type SubmitResult struct {
	ListingID uuid.UUID
	Status    string
	Photos    *photo.BatchResult
}

// SubmitFunc creates the listing row from the draft and attaches the queued
// candidate files. Only a failed listing-row create returns an error; photo
// failures are reported inside the result.
type SubmitFunc func(ctx context.Context, draft Draft, publishNow bool, files []photo.CandidateFile) (*SubmitResult, error)

// Handler handles wizard HTTP requests
type Handler struct {
	store   *Store
	submit  SubmitFunc
	manager *photo.Manager
}

// NewHandler creates wizard handler
func NewHandler(store *Store, submit SubmitFunc, manager *photo.Manager) *Handler {
	return &Handler{store: store, submit: submit, manager: manager}
}

// Create handles POST /wizard
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	response.Created(w, SessionResponseFrom(s))
}

// Get handles GET /wizard/{sessionID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	response.OK(w, SessionResponseFrom(s))
}

// PatchFields handles PATCH /wizard/{sessionID}/fields. Merge semantics: only
// the supplied fields change.
func (h *Handler) PatchFields(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var patch DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&patch); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s.ApplyPatch(patch)
	response.OK(w, SessionResponseFrom(s))
}

// Next handles POST /wizard/{sessionID}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Next(); err != nil {
		response.Conflict(w, "Already at the last step")
		return
	}
	response.OK(w, SessionResponseFrom(s))
}

// Prev handles POST /wizard/{sessionID}/prev
func (h *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Prev(); err != nil {
		response.Conflict(w, "Already at the first step")
		return
	}
	response.OK(w, SessionResponseFrom(s))
}

// AddCandidates handles POST /wizard/{sessionID}/candidates. Accepts the same
// multipart shape as the photo upload endpoint; files are queued, not
// uploaded.
func (h *Handler) AddCandidates(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart payload")
		return
	}
	files, err := photo.ReadCandidates(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	s.AddCandidates(files)
	response.OK(w, SessionResponseFrom(s))
}

// RemoveCandidate handles DELETE /wizard/{sessionID}/candidates/{index}
func (h *Handler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Invalid candidate index")
		return
	}

	if err := s.RemoveCandidate(index); err != nil {
		response.BadRequest(w, "Candidate index out of range")
		return
	}
	response.OK(w, SessionResponseFrom(s))
}

// MoveCandidate handles PATCH /wizard/{sessionID}/candidates/move
func (h *Handler) MoveCandidate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req MoveCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := s.MoveCandidate(req.From, req.To); err != nil {
		response.BadRequest(w, "Candidate index out of range")
		return
	}
	response.OK(w, SessionResponseFrom(s))
}

// Submit handles POST /wizard/{sessionID}/submit. The listing row create is
// the only hard failure; photo outcomes ride along per file. The session is
// discarded on success.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	_, draft, candidates := s.Snapshot()

	result, err := h.submit(r.Context(), draft, req.PublishNow, candidates)
	if err != nil {
		response.InternalError(w)
		return
	}

	h.store.Delete(s.ID())

	resp := &SubmitResponse{ListingID: result.ListingID, Status: result.Status}
	if result.Photos != nil {
		resp.Photos = photo.BatchResponseFromResult(result.Photos, h.manager, r.Host)
	}
	response.Created(w, resp)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return nil, false
	}
	s, err := h.store.Get(id)
	if err != nil {
		response.NotFound(w, "Session not found")
		return nil, false
	}
	return s, true
}
