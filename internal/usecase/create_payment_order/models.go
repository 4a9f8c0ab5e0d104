package create_payment_order

import (
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/service/payments/models"
)

type Request struct {
	UserID    uuid.UUID `json:"-"`
	BookingID uuid.UUID `json:"bookingId"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	Currency  string    `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// Response carries everything the checkout widget is opened with.
type Response struct {
	Order   *models.OrderResponse   `json:"order"`
	Payment *models.PaymentResponse `json:"payment"`
	Key     string                  `json:"key"`
}
