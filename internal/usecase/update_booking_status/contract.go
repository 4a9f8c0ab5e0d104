package update_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	ResolveRole(ctx context.Context, profileID uuid.UUID) (domain.Role, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
