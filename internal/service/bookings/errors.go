package bookings

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied is returned when the caller is neither a participant nor an admin.
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	ErrInternal = errors.New("bookings: internal error")
)
