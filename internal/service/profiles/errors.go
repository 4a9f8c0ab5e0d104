package profiles

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	// ErrProfileNotFound is returned when the caller has not completed sign-up.
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", domain.ErrNotFound)

	ErrProfileExists = fmt.Errorf("%w: profile already exists", domain.ErrConflict)

	ErrInternal = errors.New("profiles: internal error")
)
