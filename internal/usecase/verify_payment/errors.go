package verify_payment

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrPaymentNotFound      = fmt.Errorf("%w: payment not found", domain.ErrNotFound)
	ErrBookingNotFound      = fmt.Errorf("%w: booking not found", domain.ErrNotFound)
	ErrBookingMismatch      = fmt.Errorf("%w: payment does not belong to this booking", domain.ErrValidation)
	ErrNotBookingClient     = fmt.Errorf("%w: unauthorized to verify payment for this booking", domain.ErrForbidden)
	ErrAlreadyCaptured      = fmt.Errorf("%w: booking already has a captured payment", domain.ErrConflict)
	ErrSignatureMismatch    = fmt.Errorf("%w: payment verification failed", domain.ErrSignatureMismatch)
	ErrGatewayNotConfigured = fmt.Errorf("%w: payment gateway configuration missing", domain.ErrConfiguration)
	ErrInternal             = errors.New("verify_payment: internal error")
)
