package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access interface
type Repository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByAircraft(ctx context.Context, aircraftID uuid.UUID) ([]*Photo, error)
	CountByAircraft(ctx context.Context, aircraftID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPrimary(ctx context.Context, aircraftID, photoID uuid.UUID) error
	UpdateDetails(ctx context.Context, id uuid.UUID, altText, caption string) error
	ReplaceOrder(ctx context.Context, aircraftID uuid.UUID, orderedIDs []uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO aircraft_photos (id, aircraft_id, storage_path, original_name, mime_type, size_bytes, alt_text, caption, display_order, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		photo.ID,
		photo.AircraftID,
		photo.StoragePath,
		photo.OriginalName,
		photo.MimeType,
		photo.SizeBytes,
		photo.AltText,
		photo.Caption,
		photo.DisplayOrder,
		photo.IsPrimary,
		photo.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM aircraft_photos WHERE id = $1`
	var photo Photo
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) ListByAircraft(ctx context.Context, aircraftID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM aircraft_photos WHERE aircraft_id = $1 ORDER BY display_order, created_at`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, aircraftID)
	return photos, err
}

func (r *repository) CountByAircraft(ctx context.Context, aircraftID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM aircraft_photos WHERE aircraft_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, aircraftID)
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM aircraft_photos WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *repository) SetPrimary(ctx context.Context, aircraftID, photoID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	clearQuery := `UPDATE aircraft_photos SET is_primary = false WHERE aircraft_id = $1 AND is_primary = true`
	if _, err := tx.ExecContext(ctx, clearQuery, aircraftID); err != nil {
		return err
	}

	setQuery := `UPDATE aircraft_photos SET is_primary = true WHERE id = $1 AND aircraft_id = $2`
	if _, err := tx.ExecContext(ctx, setQuery, photoID, aircraftID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) UpdateDetails(ctx context.Context, id uuid.UUID, altText, caption string) error {
	query := `UPDATE aircraft_photos SET alt_text = $2, caption = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, altText, caption)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// ReplaceOrder assigns display_order = index for each id, and promotes the
// first id to primary, as one transaction. Callers are responsible for the
// exact-set check; this only applies the batch.
func (r *repository) ReplaceOrder(ctx context.Context, aircraftID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `UPDATE aircraft_photos SET display_order = $3 WHERE id = $1 AND aircraft_id = $2`
	for i, id := range orderedIDs {
		result, err := tx.ExecContext(ctx, orderQuery, id, aircraftID, i)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("photo %s does not belong to aircraft %s", id, aircraftID)
		}
	}

	clearQuery := `UPDATE aircraft_photos SET is_primary = false WHERE aircraft_id = $1 AND is_primary = true`
	if _, err := tx.ExecContext(ctx, clearQuery, aircraftID); err != nil {
		return err
	}
	setQuery := `UPDATE aircraft_photos SET is_primary = true WHERE id = $1 AND aircraft_id = $2`
	if _, err := tx.ExecContext(ctx, setQuery, orderedIDs[0], aircraftID); err != nil {
		return err
	}

	return tx.Commit()
}
