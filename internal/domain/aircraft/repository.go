package aircraft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines aircraft data access interface
type Repository interface {
	Create(ctx context.Context, a *Aircraft) error
	GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	List(ctx context.Context, filter Filter) ([]*Aircraft, int, error)
	Update(ctx context.Context, a *Aircraft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new aircraft repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Aircraft) error {
	query := `
		INSERT INTO aircraft (id, make, model, year, registration, category, price_cents, currency, total_time_hours, engine_time_hours, location_city, location_country, description, status, created_at, updated_at)
		VALUES (:id, :make, :model, :year, :registration, :category, :price_cents, :currency, :total_time_hours, :engine_time_hours, :location_city, :location_country, :description, :status, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, a)
	if isUniqueViolation(err) {
		return ErrRegistrationTaken
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	query := `SELECT * FROM aircraft WHERE id = $1`
	var a Aircraft
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// List returns a filtered page of listings plus the total match count
func (r *repository) List(ctx context.Context, filter Filter) ([]*Aircraft, int, error) {
	where, args := buildWhere(filter)

	countQuery := `SELECT COUNT(*) FROM aircraft` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(
		`SELECT * FROM aircraft%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		where, limit, filter.Offset,
	)
	var aircraft []*Aircraft
	if err := r.db.SelectContext(ctx, &aircraft, query, args...); err != nil {
		return nil, 0, err
	}
	return aircraft, total, nil
}

func buildWhere(filter Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Make != "" {
		add("make ILIKE $%d", filter.Make)
	}
	if filter.PriceMinCents > 0 {
		add("price_cents >= $%d", filter.PriceMinCents)
	}
	if filter.PriceMaxCents > 0 {
		add("price_cents <= $%d", filter.PriceMaxCents)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *repository) Update(ctx context.Context, a *Aircraft) error {
	query := `
		UPDATE aircraft SET
			make = :make, model = :model, year = :year, registration = :registration,
			category = :category, price_cents = :price_cents, currency = :currency,
			total_time_hours = :total_time_hours, engine_time_hours = :engine_time_hours,
			location_city = :location_city, location_country = :location_country,
			description = :description, status = :status, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, a)
	if isUniqueViolation(err) {
		return ErrRegistrationTaken
	}
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrAircraftNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM aircraft WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrAircraftNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
