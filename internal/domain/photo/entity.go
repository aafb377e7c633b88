package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo represents one image attached to an aircraft listing (metadata only,
// the blob lives in object storage under StoragePath)
type Photo struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AircraftID   uuid.UUID `db:"aircraft_id" json:"aircraft_id"`
	StoragePath  string    `db:"storage_path" json:"storage_path"` // unique object key, immutable
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	AltText      string    `db:"alt_text" json:"alt_text"`
	Caption      string    `db:"caption" json:"caption"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsPrimary    bool      `db:"is_primary" json:"is_primary"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CandidateFile is a not-yet-persisted image payload. It has no identity until
// it is promoted to a Photo by a successful upload.
type CandidateFile struct {
	Data         []byte
	OriginalName string
	AltText      string
	Caption      string
}

// FileFailure records one file of a batch that did not become a Photo
type FileFailure struct {
	Index int    // position in the submitted batch
	Name  string // original file name
	Err   error
}

// BatchResult is the per-item outcome summary of an UploadBatch call. Partial
// success is the expected common case, not an edge case.
type BatchResult struct {
	Created []*Photo
	Failed  []FileFailure
}
