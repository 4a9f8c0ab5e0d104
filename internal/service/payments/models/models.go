package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
)

type PaymentResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"bookingId"`
	GatewayOrderID   string     `json:"razorpayOrderId"`
	GatewayPaymentID *string    `json:"razorpayPaymentId,omitempty"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaidAt           *time.Time `json:"paymentDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// OrderResponse is the part of the gateway order the checkout widget needs. Amount is in minor units.
type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
	}
}

func FromGatewayOrder(o *razorpay.Order) *OrderResponse {
	return &OrderResponse{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		Status:   o.Status,
	}
}
