package verify_payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type PaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID, gatewayPaymentID string, paidAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, gatewayPaymentID string) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type SignatureVerifier interface {
	VerifyPaymentSignature(orderID, paymentID, signature string) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	PaymentVerificationResult(result string)
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
