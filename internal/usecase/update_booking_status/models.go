package update_booking_status

import (
	"github.com/google/uuid"
)

type Request struct {
	UserID    uuid.UUID `json:"-"`
	BookingID uuid.UUID `json:"-"`
	Status    string    `json:"status" validate:"required,oneof=pending confirmed active completed cancelled"`
	Notes     *string   `json:"notes" validate:"omitempty,max=1000"`
}
