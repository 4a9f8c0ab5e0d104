package profiles

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetRole(ctx context.Context, id uuid.UUID) (domain.Role, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
