package booking

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/infra/storage"
)

var (
	// ErrBookingNotFound is returned when no booking has the given id.
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking not found", domain.ErrNotFound)

	// ErrOverlap is returned when the database rejects an insert that would overlap a live booking.
	ErrOverlap = fmt.Errorf("%w: booking.repository: interval overlaps an existing booking", domain.ErrConflict)

	ErrBuildQuery = errors.New("booking.repository: failed to build query")
	ErrExecQuery  = errors.New("booking.repository: failed to execute query")
	ErrScanRow    = errors.New("booking.repository: failed to scan row")
)

// IsOverlap reports whether the database rejected the interval itself.
func IsOverlap(err error) bool {
	return errors.Is(err, ErrOverlap) || storage.IsExclusionViolation(err)
}

// IsRetryable reports whether a serializable transaction lost a race and may be run again.
func IsRetryable(err error) bool {
	return storage.IsSerializationFailure(err)
}

// IsConflict reports whether err means a concurrent writer won: an overlap or a lost serializable transaction.
func IsConflict(err error) bool {
	return IsOverlap(err) || IsRetryable(err)
}
