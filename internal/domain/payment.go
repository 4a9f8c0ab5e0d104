package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment attempt for a booking. GatewayPaymentID and PaidAt are set only by verification.
type Payment struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	GatewayOrderID   string
	GatewayPaymentID *string
	Amount           float64
	Currency         string
	Status           PaymentStatus
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToMinorUnits converts an amount in rupees to integer paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Gateway order limits.
const (
	MinPaymentMinorUnits = 100
	MaxReceiptLength     = 40
)

// ReceiptFor is the gateway receipt reference of a booking, at most MaxReceiptLength characters.
func ReceiptFor(bookingID uuid.UUID) string {
	return "bk_" + strings.ReplaceAll(bookingID.String(), "-", "")
}
