package create_payment_order

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

func validateRequest(req *Request, maxAmount float64) error {
	verr := domain.NewValidationError()

	if req.BookingID == uuid.Nil {
		verr.Add("bookingId", "is required")
	}
	validation.Into(verr, req)
	if req.Amount > 0 && domain.ToMinorUnits(req.Amount) < domain.MinPaymentMinorUnits {
		verr.Add("amount", fmt.Sprintf("must be at least %.2f", float64(domain.MinPaymentMinorUnits)/100))
	}
	if req.Amount > maxAmount {
		verr.Add("amount", fmt.Sprintf("must not exceed %.2f", maxAmount))
	}
	return verr.OrNil()
}
