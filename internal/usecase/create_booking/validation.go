package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

// validateRequest checks the whole request before anything is read or written
// and reports every failing field at once.
func validateRequest(req *Request, phone domain.PhoneFormat, now time.Time) error {
	verr := domain.NewValidationError()

	if req.EquipmentID == uuid.Nil {
		verr.Add("equipmentId", "is required")
	}

	switch {
	case req.StartTime.IsZero():
		verr.Add("startTime", "is required")
	case req.EndTime.IsZero():
		verr.Add("endTime", "is required")
	case !req.StartTime.Before(req.EndTime):
		verr.Add("endTime", "must be after startTime")
	default:
		if !req.StartTime.After(now) {
			verr.Add("startTime", "must be in the future")
		}
		if hours := domain.DurationHours(req.StartTime, req.EndTime); req.DurationHours != hours {
			verr.Add("durationHours", fmt.Sprintf("must match the booking period (%d hours)", hours))
		}
	}

	validation.Into(verr, req)

	if req.ContactPhone != "" && !phone.Valid(req.ContactPhone) {
		verr.Add("contactPhone", "must match the format "+phone.Example)
	}

	return verr.OrNil()
}
