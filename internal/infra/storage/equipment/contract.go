package equipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// Store is implemented by Repository and CachedRepository.
type Store interface {
	Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
	List(ctx context.Context, filter domain.EquipmentFilter, paginate bool) ([]*domain.Equipment, error)
	Count(ctx context.Context, filter domain.EquipmentFilter) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EquipmentStatus) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
