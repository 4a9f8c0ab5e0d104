package create_quote

import (
	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

func validateRequest(req *Request, phone domain.PhoneFormat) error {
	verr := domain.NewValidationError()
	validation.Into(verr, req)
	if req.Phone != "" && !phone.Valid(req.Phone) {
		verr.Add("phone", "must match the format "+phone.Example)
	}
	return verr.OrNil()
}
