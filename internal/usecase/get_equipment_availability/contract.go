package get_equipment_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type BookingRepository interface {
	FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*domain.Booking, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

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
