package aircraft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skylist/skylist-api/internal/domain/photo"
)

// Service defines aircraft business logic interface
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Aircraft, error)
	CreateWithPhotos(ctx context.Context, req CreateRequest, files []photo.CandidateFile) (*Aircraft, *photo.BatchResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	List(ctx context.Context, filter Filter) ([]*Aircraft, int, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Aircraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	photos *photo.Manager
	cache  *Cache
}

// NewService creates aircraft service
func NewService(repo Repository, photos *photo.Manager, cache *Cache) Service {
	return &service{repo: repo, photos: photos, cache: cache}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Aircraft, error) {
	now := time.Now()
	a := &Aircraft{
		ID:              uuid.New(),
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Registration:    req.Registration,
		Category:        req.Category,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
		TotalTimeHours:  req.TotalTimeHours,
		EngineTimeHours: req.EngineTimeHours,
		LocationCity:    req.LocationCity,
		LocationCountry: req.LocationCountry,
		Description:     req.Description,
		Status:          req.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return a, nil
}

// CreateWithPhotos creates the listing row, then attaches the files as one
// batch. Only the row create is a hard failure; a file that fails to attach is
// reported in the batch result and the listing stands with whatever photos
// succeeded, possibly none.
func (s *service) CreateWithPhotos(ctx context.Context, req CreateRequest, files []photo.CandidateFile) (*Aircraft, *photo.BatchResult, error) {
	a, err := s.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return a, &photo.BatchResult{}, nil
	}

	result, err := s.photos.UploadBatch(ctx, a.ID, files)
	if err != nil {
		log.Error().Err(err).Str("aircraft_id", a.ID.String()).Msg("Photo batch failed after listing create")
		result = &photo.BatchResult{}
		for i, f := range files {
			result.Failed = append(result.Failed, photo.FileFailure{Index: i, Name: f.OriginalName, Err: err})
		}
	}
	return a, result, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load aircraft: %w", err)
	}
	if a == nil {
		return nil, ErrAircraftNotFound
	}
	return a, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Aircraft, int, error) {
	if items, total, ok := s.cache.Get(ctx, filter); ok {
		return items, total, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	s.cache.Set(ctx, filter, items, total)
	return items, total, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Aircraft, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(a, req)
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return a, nil
}

// Delete removes the listing and its photos. Photo blob deletes are
// best-effort; the row cascade is authoritative.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	photos, err := s.photos.ListByAircraft(ctx, a.ID)
	if err != nil {
		log.Warn().Err(err).Str("aircraft_id", a.ID.String()).Msg("Failed to list photos before listing delete")
	}
	for _, p := range photos {
		if err := s.photos.Remove(ctx, p.ID); err != nil {
			log.Warn().Err(err).Str("photo_id", p.ID.String()).Msg("Failed to remove photo during listing delete")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func applyUpdate(a *Aircraft, req UpdateRequest) {
	if req.Make != nil {
		a.Make = *req.Make
	}
	if req.Model != nil {
		a.Model = *req.Model
	}
	if req.Year != nil {
		a.Year = *req.Year
	}
	if req.Registration != nil {
		a.Registration = *req.Registration
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.PriceCents != nil {
		a.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		a.Currency = *req.Currency
	}
	if req.TotalTimeHours != nil {
		a.TotalTimeHours = *req.TotalTimeHours
	}
	if req.EngineTimeHours != nil {
		a.EngineTimeHours = *req.EngineTimeHours
	}
	if req.LocationCity != nil {
		a.LocationCity = *req.LocationCity
	}
	if req.LocationCountry != nil {
		a.LocationCountry = *req.LocationCountry
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
}
