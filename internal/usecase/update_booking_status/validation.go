package update_booking_status

import (
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()
	if req.BookingID == uuid.Nil {
		verr.Add("bookingId", "is required")
	}
	validation.Into(verr, req)
	return verr.OrNil()
}
