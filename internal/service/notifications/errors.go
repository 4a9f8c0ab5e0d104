package notifications

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", domain.ErrNotFound)

	ErrInternal = errors.New("notifications: internal error")
)
