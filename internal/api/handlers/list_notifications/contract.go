package list_notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, limit int) (*models.NotificationListResponse, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
