package assist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylist/skylist-api/internal/pkg/ai"
	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// Handler exposes the copy-generation backend to the back office
type Handler struct {
	client *ai.Client
}

// NewHandler creates assist handler
func NewHandler(client *ai.Client) *Handler {
	return &Handler{client: client}
}

// ListingCopyRequest for POST /assist/listing-copy
type ListingCopyRequest struct {
	Make            string `json:"make" validate:"required"`
	Model           string `json:"model" validate:"required"`
	Year            int    `json:"year" validate:"required,min=1903,max=2100"`
	Category        string `json:"category" validate:"required,aircraft_category"`
	TotalTimeHours  int    `json:"total_time_hours" validate:"min=0"`
	EngineTimeHours int    `json:"engine_time_hours" validate:"min=0"`
	LocationCity    string `json:"location_city"`
	LocationCountry string `json:"location_country"`
}

// BlogDraftRequest for POST /assist/blog-draft
type BlogDraftRequest struct {
	Topic string `json:"topic" validate:"required,max=300"`
}

// TextResponse carries generated copy
type TextResponse struct {
	Text string `json:"text"`
}

// ListingCopy handles POST /assist/listing-copy
func (h *Handler) ListingCopy(w http.ResponseWriter, r *http.Request) {
	var req ListingCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	text, err := h.client.GenerateListingCopy(r.Context(), ai.ListingFacts{
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Category:      req.Category,
		TotalTime:     req.TotalTimeHours,
		EngineTime:    req.EngineTimeHours,
		LocationCity:  req.LocationCity,
		LocationCntry: req.LocationCountry,
	})
	if err != nil {
		h.generationError(w, err)
		return
	}

	response.OK(w, &TextResponse{Text: text})
}

// BlogDraft handles POST /assist/blog-draft
func (h *Handler) BlogDraft(w http.ResponseWriter, r *http.Request) {
	var req BlogDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	text, err := h.client.GenerateBlogDraft(r.Context(), req.Topic)
	if err != nil {
		h.generationError(w, err)
		return
	}

	response.OK(w, &TextResponse{Text: text})
}

func (h *Handler) generationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ai.ErrNotConfigured) {
		response.Error(w, http.StatusServiceUnavailable, "NOT_CONFIGURED", "Copy generation is not configured")
		return
	}
	response.Error(w, http.StatusBadGateway, "GENERATION_FAILED", "Copy generation failed")
}
