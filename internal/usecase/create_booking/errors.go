package create_booking

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment not found", domain.ErrNotFound)

	// ErrBookingOverlap is returned when a live booking already holds part of the interval.
	ErrBookingOverlap = fmt.Errorf("%w: equipment is already booked for the selected period", domain.ErrConflict)

	// ErrBookingContention is returned when concurrent requests kept aborting the transaction.
	ErrBookingContention = fmt.Errorf("%w: booking could not be completed due to concurrent requests, please retry", domain.ErrConflict)

	ErrEquipmentUnavailable = fmt.Errorf("%w: equipment is not available for booking", domain.ErrConflict)

	ErrOwnEquipment = fmt.Errorf("%w: operators cannot book their own equipment", domain.ErrForbidden)

	ErrInternal = errors.New("create_booking: internal error")
)
