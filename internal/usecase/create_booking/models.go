package create_booking

import (
	"time"

	"github.com/google/uuid"
)

type Request struct {
	UserID              uuid.UUID `json:"-"`
	EquipmentID         uuid.UUID `json:"equipmentId"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	DurationHours       int       `json:"durationHours" validate:"gte=1,lte=720"`
	ContactName         string    `json:"contactName" validate:"required,runes=2-100,personname"`
	ContactPhone        string    `json:"contactPhone" validate:"required"`
	PickupAddress       string    `json:"pickupAddress" validate:"required,runes=10-500"`
	DeliveryAddress     string    `json:"deliveryAddress" validate:"required,runes=10-500"`
	SpecialRequirements *string   `json:"specialRequirements" validate:"omitempty,max=2000"`
}
