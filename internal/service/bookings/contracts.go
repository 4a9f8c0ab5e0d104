package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error)
}

type PaymentLister interface {
	ListByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*domain.Payment, error)
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
