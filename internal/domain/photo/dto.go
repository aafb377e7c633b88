package photo

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/pkg/storage"
)

// ReorderRequest for PATCH /aircraft/{id}/photos/reorder. The ids must be the
// complete current photo set of the aircraft in the desired order.
type ReorderRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" validate:"required,min=1"`
}

// UpdateDetailsRequest for PATCH /aircraft/{id}/photos/{photoID}
type UpdateDetailsRequest struct {
	AltText string `json:"alt_text" validate:"max=500"`
	Caption string `json:"caption" validate:"max=2000"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	AircraftID   uuid.UUID `json:"aircraft_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	AltText      string    `json:"alt_text"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    string    `json:"created_at"`
}

// FailureResponse reports one file of a batch that was not attached
type FailureResponse struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchResponse is the per-file outcome summary of a batch upload
type BatchResponse struct {
	Created []*PhotoResponse  `json:"created"`
	Failed  []FailureResponse `json:"failed"`
}

// PhotoResponseFromEntity converts entity to response DTO. URLs get the
// loopback fixup so local-emulator paths resolve for the requesting client.
func PhotoResponseFromEntity(p *Photo, m *Manager, requestHost string) *PhotoResponse {
	return &PhotoResponse{
		ID:           p.ID,
		AircraftID:   p.AircraftID,
		URL:          storage.RewriteLoopbackHost(m.PublicURL(p), requestHost),
		ThumbnailURL: storage.RewriteLoopbackHost(m.ThumbnailURL(p), requestHost),
		OriginalName: p.OriginalName,
		MimeType:     p.MimeType,
		SizeBytes:    p.SizeBytes,
		AltText:      p.AltText,
		Caption:      p.Caption,
		DisplayOrder: p.DisplayOrder,
		IsPrimary:    p.IsPrimary,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

// BatchResponseFromResult converts a batch result to its response DTO
func BatchResponseFromResult(res *BatchResult, m *Manager, requestHost string) *BatchResponse {
	out := &BatchResponse{
		Created: make([]*PhotoResponse, len(res.Created)),
		Failed:  make([]FailureResponse, len(res.Failed)),
	}
	for i, p := range res.Created {
		out.Created[i] = PhotoResponseFromEntity(p, m, requestHost)
	}
	for i, f := range res.Failed {
		out.Failed[i] = FailureResponse{Index: f.Index, Name: f.Name, Reason: FailureReason(f.Err)}
	}
	return out
}

// FailureReason maps a batch failure to a stable machine-readable reason
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrUploadFailed):
		return "upload_failed"
	case errors.Is(err, ErrPersistFailed):
		return "persist_failed"
	default:
		return "error"
	}
}
