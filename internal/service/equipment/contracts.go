package equipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type EquipmentStore interface {
	Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EquipmentStatus) error
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	ResolveRole(ctx context.Context, profileID uuid.UUID) (domain.Role, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
