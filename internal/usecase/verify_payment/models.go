package verify_payment

import (
	"github.com/google/uuid"

	bookingModels "github.com/heavyrent/rental-service/internal/service/bookings/models"
	paymentModels "github.com/heavyrent/rental-service/internal/service/payments/models"
)

// Request is the checkout callback as posted by the client. Field names follow the gateway.
type Request struct {
	UserID           uuid.UUID `json:"-"`
	GatewayPaymentID string    `json:"razorpay_payment_id" validate:"required,max=64"`
	GatewayOrderID   string    `json:"razorpay_order_id" validate:"required,max=64"`
	Signature        string    `json:"razorpay_signature" validate:"required,max=256"`
	BookingID        uuid.UUID `json:"booking_id"`
}

type Response struct {
	Payment *paymentModels.PaymentResponse `json:"payment"`
	Booking *bookingModels.BookingResponse `json:"booking"`

	// AlreadyVerified is set when the payment had been captured by an earlier call.
	AlreadyVerified bool `json:"alreadyVerified"`
}
