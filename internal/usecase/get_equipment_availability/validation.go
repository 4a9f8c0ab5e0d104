package get_equipment_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

// normalize fills the default range and truncates both ends to UTC midnight.
func normalize(req *Request, now time.Time) {
	if req.From.IsZero() {
		req.From = now
	}
	req.From = startOfDay(req.From)

	if req.To.IsZero() {
		req.To = req.From.AddDate(0, 0, domain.DefaultAvailabilityDays)
	}
	req.To = startOfDay(req.To)
}

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()

	if req.EquipmentID == uuid.Nil {
		verr.Add("equipmentId", "is required")
	}

	switch {
	case !req.From.Before(req.To):
		verr.Add("to", "must be after from")
	case req.To.Sub(req.From) > domain.MaxAvailabilityDays*24*time.Hour:
		verr.Add("to", fmt.Sprintf("range must not exceed %d days", domain.MaxAvailabilityDays))
	}

	return verr.OrNil()
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
