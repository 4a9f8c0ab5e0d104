package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	profileRepo "github.com/heavyrent/rental-service/internal/infra/storage/profile"
	"github.com/heavyrent/rental-service/internal/service/profiles/models"
	"github.com/heavyrent/rental-service/internal/validation"
)

// Service owns profiles and the mapping from identity provider accounts to them.
type Service struct {
	repo   ProfileRepository
	phone  domain.PhoneFormat
	logger Logger
}

func NewService(repo ProfileRepository, phone domain.PhoneFormat, logger Logger) *Service {
	return &Service{
		repo:   repo,
		phone:  phone,
		logger: logger,
	}
}

// Create registers the caller's profile. The email defaults to the one on the token.
func (s *Service) Create(ctx context.Context, session *domain.Session, req *models.CreateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("CreateProfile: user=%s, role=%s", session.UserID, req.Role)

	verr := domain.NewValidationError()
	validation.Into(verr, req)
	if req.Phone != nil && !s.phone.Valid(*req.Phone) {
		verr.Add("phone", "must match the format "+s.phone.Example)
	}
	if err := verr.OrNil(); err != nil {
		s.logger.Warn("CreateProfile: validation failed for user=%s: %v", session.UserID, err)
		return nil, err
	}

	email := req.Email
	if email == nil && session.Email != "" {
		email = &session.Email
	}

	created, err := s.repo.Create(ctx, &domain.Profile{
		UserID:   session.UserID,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
		Email:    email,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileExists) {
			s.logger.Warn("CreateProfile: profile already exists for user=%s", session.UserID)
			return nil, ErrProfileExists
		}
		s.logger.Error("CreateProfile: repository error for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProfile: created profile id=%s for user=%s", created.ID, session.UserID)
	return models.FromDomainProfile(created), nil
}

func (s *Service) Me(ctx context.Context, session *domain.Session) (*models.ProfileResponse, error) {
	p, err := s.ResolveIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProfile(p), nil
}

// ResolveIdentity maps an identity provider account to its profile.
// Business entities always reference the profile id, never the raw account id.
func (s *Service) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("ResolveIdentity: no profile for user=%s", userID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("ResolveIdentity: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ResolveIdentity - repository error: %v", ErrInternal, err)
	}
	return p, nil
}

// ResolveRole reads the role from the profiles table. It is the only source of roles:
// token claims and identity provider metadata are never consulted.
func (s *Service) ResolveRole(ctx context.Context, profileID uuid.UUID) (domain.Role, error) {
	role, err := s.repo.GetRole(ctx, profileID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return "", ErrProfileNotFound
		}
		s.logger.Error("ResolveRole: repository error for profile=%s: %v", profileID, err)
		return "", fmt.Errorf("%w: ResolveRole - repository error: %v", ErrInternal, err)
	}
	return role, nil
}

// GetByID returns any profile, for example the counterparty of a notification.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return p, nil
}
