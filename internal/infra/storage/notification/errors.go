package notification

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrNotificationNotFound = fmt.Errorf("%w: notification.repository: notification not found", domain.ErrNotFound)

	ErrBuildQuery = errors.New("notification.repository: failed to build query")
	ErrExecQuery  = errors.New("notification.repository: failed to execute query")
	ErrScanRow    = errors.New("notification.repository: failed to scan row")
	ErrEncodeData = errors.New("notification.repository: failed to encode data")
)
