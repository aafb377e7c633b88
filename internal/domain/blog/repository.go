package blog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines blog data access interface
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, publishedOnly bool) ([]*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new blog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO blog_posts (id, slug, title, summary, body_markdown, body_html, published, created_at, updated_at)
		VALUES (:id, :slug, :title, :summary, :body_markdown, :body_html, :published, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, p)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `SELECT * FROM blog_posts WHERE slug = $1`
	var p Post
	err := r.db.GetContext(ctx, &p, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, publishedOnly bool) ([]*Post, error) {
	query := `SELECT * FROM blog_posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT * FROM blog_posts WHERE published = true ORDER BY created_at DESC`
	}
	var posts []*Post
	err := r.db.SelectContext(ctx, &posts, query)
	return posts, err
}

func (r *repository) Update(ctx context.Context, p *Post) error {
	query := `
		UPDATE blog_posts SET
			slug = :slug, title = :title, summary = :summary,
			body_markdown = :body_markdown, body_html = :body_html,
			published = :published, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blog_posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
