package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/integrations/mailer"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, int, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
}

// ProfileReader resolves recipients' email addresses.
type ProfileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Metrics interface {
	NotificationResult(channel, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
