package mark_notification_read

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type NotificationService interface {
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) error
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
