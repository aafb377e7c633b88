package wizard

import (
	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/domain/photo"
)

// MoveCandidateRequest for PATCH /wizard/{sessionID}/candidates/move
type MoveCandidateRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// SubmitRequest for POST /wizard/{sessionID}/submit
type SubmitRequest struct {
	PublishNow bool `json:"publish_now"`
}

// CandidateResponse summarizes one queued file. Bytes stay server-side.
type CandidateResponse struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	AltText   string `json:"alt_text"`
	Caption   string `json:"caption"`
}

// SessionResponse represents a wizard session in API responses
type SessionResponse struct {
	ID         uuid.UUID           `json:"id"`
	Step       int                 `json:"step"`
	StepName   string              `json:"step_name"`
	Draft      Draft               `json:"draft"`
	Candidates []CandidateResponse `json:"candidates"`
}

// SubmitResponse reports the submission outcome: the created listing id plus
// per-file photo outcomes. Photo failures are soft; their presence does not
// change the success status.
type SubmitResponse struct {
	ListingID uuid.UUID            `json:"listing_id"`
	Status    string               `json:"status"`
	Photos    *photo.BatchResponse `json:"photos,omitempty"`
}

// SessionResponseFrom renders a session snapshot
func SessionResponseFrom(s *Session) *SessionResponse {
	step, draft, candidates := s.Snapshot()

	items := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		items[i] = CandidateResponse{
			Index:     i,
			Name:      c.OriginalName,
			SizeBytes: int64(len(c.Data)),
			AltText:   c.AltText,
			Caption:   c.Caption,
		}
	}

	return &SessionResponse{
		ID:         s.ID(),
		Step:       int(step),
		StepName:   step.String(),
		Draft:      draft,
		Candidates: items,
	}
}
