package razorpay

import (
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	// ErrNotConfigured is returned when the key id or key secret is empty.
	ErrNotConfigured = fmt.Errorf("%w: razorpay: key id and key secret are required", domain.ErrConfiguration)

	// ErrGateway is returned when the gateway call fails or answers with an error.
	ErrGateway = fmt.Errorf("%w: razorpay: gateway request failed", domain.ErrExternalService)

	ErrInvalidResponse = fmt.Errorf("%w: razorpay: invalid response", domain.ErrExternalService)
)
