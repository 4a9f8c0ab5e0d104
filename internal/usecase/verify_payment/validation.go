package verify_payment

import (
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()
	validation.Into(verr, req)
	if req.BookingID == uuid.Nil {
		verr.Add("booking_id", "is required")
	}
	return verr.OrNil()
}
