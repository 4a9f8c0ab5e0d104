package payment

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrPaymentNotFound = fmt.Errorf("%w: payment.repository: payment not found", domain.ErrNotFound)
	ErrOrderExists     = fmt.Errorf("%w: payment.repository: gateway order already recorded", domain.ErrConflict)

	// ErrAlreadyPaid is returned when another payment of the booking already reached paid.
	ErrAlreadyPaid = fmt.Errorf("%w: payment.repository: booking already has a paid payment", domain.ErrConflict)

	ErrBuildQuery = errors.New("payment.repository: failed to build query")
	ErrExecQuery  = errors.New("payment.repository: failed to execute query")
	ErrScanRow    = errors.New("payment.repository: failed to scan row")
)
