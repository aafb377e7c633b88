package photo

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skylist/skylist-api/internal/pkg/imaging"
	"github.com/skylist/skylist-api/internal/pkg/storage"
)

// Manager maintains the relationship between uploaded blobs in the store and
// the ordered photo rows in the repository for one aircraft at a time. Every
// persisted row has a successfully stored blob; a blob without a row is only
// ever left behind by a failed store delete, which is harmless because nothing
// references it. The manager is stateless across calls.
type Manager struct {
	repo   Repository
	store  storage.Storage
	thumbs *imaging.Processor // nil disables thumbnail derivation
	seq    atomic.Uint64      // disambiguates keys allocated in the same nanosecond
}

// NewManager creates the photo collection manager
func NewManager(repo Repository, store storage.Storage, thumbs *imaging.Processor) *Manager {
	return &Manager{
		repo:   repo,
		store:  store,
		thumbs: thumbs,
	}
}

// Validate checks a candidate file against the photo allow-list and size
// ceiling. MIME type is sniffed from content, not taken from the client.
// No side effects; callers surface the reason and skip the file.
func (m *Manager) Validate(f CandidateFile) error {
	mimeType := storage.DetectMimeType(f.Data)
	if !storage.IsAllowedImageType(mimeType) {
		return ErrUnsupportedType
	}
	if int64(len(f.Data)) > storage.MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// UploadBatch uploads files for an aircraft in the given order, one at a time.
// Sequential processing keeps display_order assignment deterministic.
//
// The batch is best-effort, not atomic: a file that fails validation or the
// blob write is recorded and skipped without touching its siblings. The one
// failure that is always compensated is a metadata insert failing after a
// successful upload, which deletes the just-uploaded blob so no orphaned blob
// is ever paired with a missing row.
func (m *Manager) UploadBatch(ctx context.Context, aircraftID uuid.UUID, files []CandidateFile) (*BatchResult, error) {
	preCount, err := m.repo.CountByAircraft(ctx, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing photos: %w", err)
	}

	result := &BatchResult{}

	for i, f := range files {
		if err := m.Validate(f); err != nil {
			result.Failed = append(result.Failed, FileFailure{Index: i, Name: f.OriginalName, Err: err})
			continue
		}

		mimeType := storage.DetectMimeType(f.Data)
		key := m.buildKey(aircraftID, f.OriginalName, mimeType)

		if err := m.store.Put(ctx, key, bytes.NewReader(f.Data), mimeType, storage.PutOptions{IfAbsent: true}); err != nil {
			log.Warn().Err(err).Str("key", key).Str("file", f.OriginalName).Msg("Photo upload failed")
			result.Failed = append(result.Failed, FileFailure{Index: i, Name: f.OriginalName, Err: fmt.Errorf("%w: %v", ErrUploadFailed, err)})
			continue
		}

		p := &Photo{
			ID:           uuid.New(),
			AircraftID:   aircraftID,
			StoragePath:  key,
			OriginalName: f.OriginalName,
			MimeType:     mimeType,
			SizeBytes:    int64(len(f.Data)),
			AltText:      f.AltText,
			Caption:      f.Caption,
			// Rank reflects the original batch position, so a failed sibling
			// leaves a gap. Rank is only used for relative sort.
			DisplayOrder: preCount + i,
			IsPrimary:    preCount == 0 && len(result.Created) == 0,
			CreatedAt:    time.Now(),
		}

		if err := m.repo.Create(ctx, p); err != nil {
			// Compensate: never leave a blob with no matching row
			if delErr := m.store.Delete(ctx, key); delErr != nil {
				log.Error().Err(delErr).Str("key", key).Msg("Failed to delete blob after insert failure")
			}
			result.Failed = append(result.Failed, FileFailure{Index: i, Name: f.OriginalName, Err: fmt.Errorf("%w: %v", ErrPersistFailed, err)})
			continue
		}

		result.Created = append(result.Created, p)
		m.deriveThumbnail(ctx, p, f.Data)
	}

	return result, nil
}

// Remove deletes a photo. The store delete runs first and is non-fatal (an
// unreferenced blob is harmless); the row delete is authoritative. Siblings
// keep their display_order and no photo is promoted to primary.
func (m *Manager) Remove(ctx context.Context, photoID uuid.UUID) error {
	p, err := m.repo.GetByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}
	if p == nil {
		return ErrPhotoNotFound
	}

	if err := m.store.Delete(ctx, p.StoragePath); err != nil {
		log.Warn().Err(err).Str("key", p.StoragePath).Msg("Failed to delete photo blob, row removal continues")
	}
	if m.thumbs != nil {
		if err := m.store.Delete(ctx, thumbKey(p.StoragePath)); err != nil {
			log.Warn().Err(err).Str("key", thumbKey(p.StoragePath)).Msg("Failed to delete thumbnail blob")
		}
	}

	return m.repo.Delete(ctx, photoID)
}

// Reorder assigns display_order = index for the given ids, which must be
// exactly the photos that currently belong to the aircraft. A stale set (for
// example a client that missed a photo added elsewhere) is rejected with
// ErrInvalidSet and nothing is mutated. The photo moved to position 0 becomes
// the primary photo. Calling Reorder twice with the same order is a no-op the
// second time.
func (m *Manager) Reorder(ctx context.Context, aircraftID uuid.UUID, orderedIDs []uuid.UUID) error {
	current, err := m.repo.ListByAircraft(ctx, aircraftID)
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}

	if len(orderedIDs) != len(current) || len(orderedIDs) == 0 {
		return ErrInvalidSet
	}
	existing := make(map[uuid.UUID]bool, len(current))
	for _, p := range current {
		existing[p.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] || seen[id] {
			return ErrInvalidSet
		}
		seen[id] = true
	}

	return m.repo.ReplaceOrder(ctx, aircraftID, orderedIDs)
}

// SetPrimary flags one photo as the listing's main image, clearing the flag on
// all of its siblings
func (m *Manager) SetPrimary(ctx context.Context, photoID uuid.UUID) (*Photo, error) {
	p, err := m.repo.GetByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}

	if err := m.repo.SetPrimary(ctx, p.AircraftID, photoID); err != nil {
		return nil, err
	}

	p.IsPrimary = true
	return p, nil
}

// UpdateDetails edits a photo's alt text and caption
func (m *Manager) UpdateDetails(ctx context.Context, photoID uuid.UUID, altText, caption string) (*Photo, error) {
	p, err := m.repo.GetByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}

	if err := m.repo.UpdateDetails(ctx, photoID, altText, caption); err != nil {
		return nil, err
	}

	p.AltText = altText
	p.Caption = caption
	return p, nil
}

// ListByAircraft returns all photos of a listing in display order
func (m *Manager) ListByAircraft(ctx context.Context, aircraftID uuid.UUID) ([]*Photo, error) {
	return m.repo.ListByAircraft(ctx, aircraftID)
}

// PublicURL derives the fetchable URL for a photo
func (m *Manager) PublicURL(p *Photo) string {
	return m.store.URL(p.StoragePath)
}

// ThumbnailURL derives the fetchable URL for a photo's thumbnail variant,
// falling back to the original when thumbnails are disabled
func (m *Manager) ThumbnailURL(p *Photo) string {
	if m.thumbs == nil {
		return m.store.URL(p.StoragePath)
	}
	return m.store.URL(thumbKey(p.StoragePath))
}

// buildKey allocates a storage key that cannot collide within the process:
// aircraft id scope, nanosecond timestamp, a process-wide sequence number and
// a sanitized form of the original name. The store additionally rejects
// overwrites, so a collision surfaces as an upload failure rather than lost
// data.
func (m *Manager) buildKey(aircraftID uuid.UUID, originalName, mimeType string) string {
	return fmt.Sprintf("aircraft/%s/%d-%d-%s%s",
		aircraftID,
		time.Now().UnixNano(),
		m.seq.Add(1),
		sanitizeName(originalName),
		storage.ExtensionForMime(mimeType),
	)
}

func (m *Manager) deriveThumbnail(ctx context.Context, p *Photo, data []byte) {
	if m.thumbs == nil {
		return
	}
	thumb, err := m.thumbs.Thumbnail(bytes.NewReader(data), p.MimeType)
	if err != nil {
		log.Warn().Err(err).Str("photo_id", p.ID.String()).Msg("Thumbnail derivation failed")
		return
	}
	if err := m.store.Put(ctx, thumbKey(p.StoragePath), bytes.NewReader(thumb), p.MimeType, storage.PutOptions{}); err != nil {
		log.Warn().Err(err).Str("photo_id", p.ID.String()).Msg("Thumbnail upload failed")
	}
}

func thumbKey(storagePath string) string {
	return "thumb/" + storagePath
}

// sanitizeName reduces an original file name to a short, key-safe slug
func sanitizeName(name string) string {
	// Strip any extension; the key gets one from the detected MIME type
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= 40 {
			break
		}
	}

	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "photo"
	}
	return s
}
