package create_payment_order

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrBookingNotFound      = fmt.Errorf("%w: booking not found", domain.ErrNotFound)
	ErrNotBookingClient     = fmt.Errorf("%w: unauthorized to pay for this booking", domain.ErrForbidden)
	ErrBookingClosed        = fmt.Errorf("%w: booking is completed or cancelled", domain.ErrConflict)
	ErrAlreadyPaid          = fmt.Errorf("%w: booking is already paid", domain.ErrConflict)
	ErrGatewayFailed        = fmt.Errorf("%w: payment order creation failed", domain.ErrExternalService)
	ErrGatewayNotConfigured = fmt.Errorf("%w: payment gateway configuration missing", domain.ErrConfiguration)
	ErrInternal             = errors.New("create_payment_order: internal error")
)
