package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	paymentModels "github.com/heavyrent/rental-service/internal/service/payments/models"
)

// ListBookingsRequest selects the caller's bookings as client or as operator.
type ListBookingsRequest struct {
	Role   string  `json:"role" validate:"omitempty,oneof=client operator"`
	Status *string `json:"status" validate:"omitempty,oneof=pending confirmed active completed cancelled"`
	Page   int     `json:"page" validate:"gte=1"`
	Limit  int     `json:"limit" validate:"gte=1,lte=100"`
}

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	EquipmentID   uuid.UUID `json:"equipmentId"`
	ClientID      uuid.UUID `json:"clientId"`
	OperatorID    uuid.UUID `json:"operatorId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationHours int       `json:"durationHours"`

	DailyRate     float64 `json:"dailyRate"`
	BillableDays  int     `json:"billableDays"`
	BasePrice     float64 `json:"basePrice"`
	TaxAmount     float64 `json:"taxAmount"`
	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	BalanceAmount float64 `json:"balanceAmount"`

	ContactName         string  `json:"contactName"`
	ContactPhone        string  `json:"contactPhone"`
	PickupAddress       string  `json:"pickupAddress"`
	DeliveryAddress     string  `json:"deliveryAddress"`
	SpecialRequirements *string `json:"specialRequirements,omitempty"`
	Notes               *string `json:"notes,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Payments is filled only by the single-booking read.
	Payments []*paymentModels.PaymentResponse `json:"payments,omitempty"`
}

type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	HasMore  bool               `json:"hasMore"`
}

func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                  b.ID,
		EquipmentID:         b.EquipmentID,
		ClientID:            b.ClientID,
		OperatorID:          b.OperatorID,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		DurationHours:       b.DurationHours,
		DailyRate:           b.Price.DailyRate,
		BillableDays:        b.Price.Days,
		BasePrice:           b.Price.BasePrice,
		TaxAmount:           b.Price.TaxAmount,
		TotalAmount:         b.Price.TotalAmount,
		AdvanceAmount:       b.Price.AdvanceAmount,
		BalanceAmount:       b.Price.BalanceAmount,
		ContactName:         b.ContactName,
		ContactPhone:        b.ContactPhone,
		PickupAddress:       b.PickupAddress,
		DeliveryAddress:     b.DeliveryAddress,
		SpecialRequirements: b.SpecialRequirements,
		Notes:               b.Notes,
		Status:              string(b.Status),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func FromDomainBookingList(items []*domain.Booking, total, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(items)),
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  page*limit < total,
	}
	for _, b := range items {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}
