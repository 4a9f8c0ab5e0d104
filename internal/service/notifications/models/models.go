package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type NotificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int                     `json:"total"`
	Page          int                     `json:"page"`
	Limit         int                     `json:"limit"`
	HasMore       bool                    `json:"hasMore"`
}

// Event is published to the message bus for every stored notification.
type Event struct {
	NotificationID uuid.UUID         `json:"notificationId"`
	RecipientID    uuid.UUID         `json:"recipientId"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Data           map[string]string `json:"data,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Data:      n.Data,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
