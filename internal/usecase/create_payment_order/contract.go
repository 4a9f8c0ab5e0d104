package create_payment_order

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
)

type BookingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	HasPaid(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, in razorpay.OrderRequest) (*razorpay.Order, error)
	KeyID() string
}

type Metrics interface {
	PaymentOrderResult(result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
