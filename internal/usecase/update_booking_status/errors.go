package update_booking_status

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)
	ErrInternal        = errors.New("update_booking_status: internal error")
)
