package inquiry

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines inquiry data access interface
type Repository interface {
	Create(ctx context.Context, i *Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Inquiry, error)
	List(ctx context.Context, unhandledOnly bool) ([]*Inquiry, error)
	MarkHandled(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new inquiry repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, i *Inquiry) error {
	query := `
		INSERT INTO inquiries (id, aircraft_id, name, email, phone, message, handled, created_at)
		VALUES (:id, :aircraft_id, :name, :email, :phone, :message, :handled, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, i)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Inquiry, error) {
	query := `SELECT * FROM inquiries WHERE id = $1`
	var i Inquiry
	err := r.db.GetContext(ctx, &i, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *repository) List(ctx context.Context, unhandledOnly bool) ([]*Inquiry, error) {
	query := `SELECT * FROM inquiries ORDER BY created_at DESC`
	if unhandledOnly {
		query = `SELECT * FROM inquiries WHERE handled = false ORDER BY created_at DESC`
	}
	var inquiries []*Inquiry
	err := r.db.SelectContext(ctx, &inquiries, query)
	return inquiries, err
}

func (r *repository) MarkHandled(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE inquiries SET handled = true WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}
