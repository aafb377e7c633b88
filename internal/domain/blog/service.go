package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/russross/blackfriday/v2"
)

// Service defines blog business logic interface. Posts are addressed by slug;
// the uuid id is internal.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, publishedOnly bool) ([]*Post, error)
	Update(ctx context.Context, slug string, req UpdateRequest) (*Post, error)
	Delete(ctx context.Context, slug string) error
}

type service struct {
	repo Repository
}

// NewService creates blog service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Post, error) {
	now := time.Now()
	p := &Post{
		ID:           uuid.New(),
		Slug:         req.Slug,
		Title:        req.Title,
		Summary:      req.Summary,
		BodyMarkdown: req.BodyMarkdown,
		BodyHTML:     renderMarkdown(req.BodyMarkdown),
		Published:    req.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPublishedBySlug is the public read: drafts are invisible
func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if p == nil || !p.Published {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *service) getBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, publishedOnly bool) ([]*Post, error) {
	return s.repo.List(ctx, publishedOnly)
}

func (s *service) Update(ctx context.Context, slug string, req UpdateRequest) (*Post, error) {
	p, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Summary != nil {
		p.Summary = *req.Summary
	}
	if req.BodyMarkdown != nil {
		p.BodyMarkdown = *req.BodyMarkdown
		p.BodyHTML = renderMarkdown(p.BodyMarkdown)
	}
	if req.Published != nil {
		p.Published = *req.Published
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, slug string) error {
	p, err := s.getBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}

func renderMarkdown(md string) string {
	return string(blackfriday.Run([]byte(md)))
}

// Slugify reduces a title to a URL-safe slug
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
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
		if b.Len() >= 80 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}
