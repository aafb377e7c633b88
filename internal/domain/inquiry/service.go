package inquiry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/domain/aircraft"
)

// ListingReader is the slice of the aircraft service the inquiry flow needs
type ListingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*aircraft.Aircraft, error)
}

// Service defines inquiry business logic interface
type Service interface {
	Create(ctx context.Context, aircraftID uuid.UUID, req CreateRequest) (*Inquiry, error)
	List(ctx context.Context, unhandledOnly bool) ([]*Inquiry, error)
	MarkHandled(ctx context.Context, id uuid.UUID) (*Inquiry, error)
}

type service struct {
	repo     Repository
	listings ListingReader
}

// NewService creates inquiry service
func NewService(repo Repository, listings ListingReader) Service {
	return &service{repo: repo, listings: listings}
}

// Create records a contact request. Only active listings accept inquiries.
func (s *service) Create(ctx context.Context, aircraftID uuid.UUID, req CreateRequest) (*Inquiry, error) {
	a, err := s.listings.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if a.Status != aircraft.StatusActive {
		return nil, aircraft.ErrAircraftNotFound
	}

	i := &Inquiry{
		ID:         uuid.New(),
		AircraftID: aircraftID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) List(ctx context.Context, unhandledOnly bool) ([]*Inquiry, error) {
	return s.repo.List(ctx, unhandledOnly)
}

func (s *service) MarkHandled(ctx context.Context, id uuid.UUID) (*Inquiry, error) {
	if err := s.repo.MarkHandled(ctx, id); err != nil {
		return nil, err
	}
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, ErrInquiryNotFound
	}
	return i, nil
}

// IsNotFound reports whether the error is any of the flow's not-found cases
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInquiryNotFound) || errors.Is(err, aircraft.ErrAircraftNotFound)
}
