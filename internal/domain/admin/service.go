package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/pkg/jwt"
	"github.com/skylist/skylist-api/internal/pkg/password"
)

// Service defines admin business logic interface
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
}

type service struct {
	repo Repository
	jwt  *jwt.Service
}

// NewService creates admin service
func NewService(repo Repository, jwtService *jwt.Service) Service {
	return &service{repo: repo, jwt: jwtService}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	a, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if a == nil || !password.Verify(req.Password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{AccessToken: token, Admin: a}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}
