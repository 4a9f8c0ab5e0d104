package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type BookingRepository interface {
	FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	BookingResult(result string)
}

// TimeProvider is swapped in tests.
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
