package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type BookingLister interface {
	ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]*domain.Booking, error)
}

type PaymentChecker interface {
	HasPaid(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification)
}

type Metrics interface {
	JobResult(job, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
