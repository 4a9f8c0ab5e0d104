package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	notificationRepo "github.com/heavyrent/rental-service/internal/infra/storage/notification"
	"github.com/heavyrent/rental-service/internal/integrations/mailer"
	"github.com/heavyrent/rental-service/internal/service/notifications/models"
)

const (
	channelInbox = "inbox"
	channelEmail = "email"
	channelEvent = "event"
)

// Service fans a notification out to the inbox table, email and the event bus.
// Delivery is best effort: Notify never fails the caller.
type Service struct {
	repo       NotificationRepository
	profiles   ProfileReader
	email      EmailSender
	events     EventPublisher
	adminEmail string
	metrics    Metrics
	logger     Logger
}

type Option func(*Service)

// WithEmail enables the email channel. adminEmail receives operational alerts.
func WithEmail(sender EmailSender, adminEmail string) Option {
	return func(s *Service) {
		s.email = sender
		s.adminEmail = adminEmail
	}
}

func WithEvents(publisher EventPublisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

func NewService(repo NotificationRepository, profiles ProfileReader, m Metrics, logger Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		profiles: profiles,
		metrics:  m,
		logger:   logger,
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type nopMetrics struct{}

func (nopMetrics) NotificationResult(string, string) {}

// Notify stores n and forwards it to the enabled channels.
func (s *Service) Notify(ctx context.Context, n *domain.Notification) {
	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Notify: failed to store %s for recipient=%s: %v", n.Type, n.RecipientID, err)
		s.metrics.NotificationResult(channelInbox, "error")
		return
	}
	s.metrics.NotificationResult(channelInbox, "ok")

	if s.email != nil {
		s.sendEmail(ctx, stored)
	}
	if s.events != nil {
		s.publish(ctx, stored)
	}
}

func (s *Service) sendEmail(ctx context.Context, n *domain.Notification) {
	recipient, err := s.profiles.GetByID(ctx, n.RecipientID)
	if err != nil {
		s.logger.Warn("Notify: cannot load recipient=%s for email: %v", n.RecipientID, err)
		s.metrics.NotificationResult(channelEmail, "error")
		return
	}
	if recipient.Email == nil || *recipient.Email == "" {
		s.metrics.NotificationResult(channelEmail, "skipped")
		return
	}

	err = s.email.Send(ctx, mailer.Message{
		ToEmail:   *recipient.Email,
		ToName:    recipient.FullName,
		Subject:   n.Title,
		PlainText: n.Message,
	})
	if err != nil {
		s.logger.Warn("Notify: email to recipient=%s failed: %v", n.RecipientID, err)
		s.metrics.NotificationResult(channelEmail, "error")
		return
	}
	s.metrics.NotificationResult(channelEmail, "ok")
}

func (s *Service) publish(ctx context.Context, n *domain.Notification) {
	event := models.Event{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		Type:           string(n.Type),
		Title:          n.Title,
		Data:           n.Data,
		OccurredAt:     n.CreatedAt,
	}
	if err := s.events.PublishJSON(ctx, "notification."+string(n.Type), event); err != nil {
		s.logger.Warn("Notify: publish %s for recipient=%s failed: %v", n.Type, n.RecipientID, err)
		s.metrics.NotificationResult(channelEvent, "error")
		return
	}
	s.metrics.NotificationResult(channelEvent, "ok")
}

// AlertAdmin emails the operations mailbox. It is a no-op when email is disabled.
func (s *Service) AlertAdmin(ctx context.Context, subject, text string) {
	if s.email == nil || s.adminEmail == "" {
		return
	}
	if err := s.email.Send(ctx, mailer.Message{ToEmail: s.adminEmail, Subject: subject, PlainText: text}); err != nil {
		s.logger.Warn("AlertAdmin: email failed: %v", err)
		s.metrics.NotificationResult(channelEmail, "error")
		return
	}
	s.metrics.NotificationResult(channelEmail, "ok")
}

func (s *Service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, limit int) (*models.NotificationListResponse, error) {
	items, total, err := s.repo.List(ctx, recipientID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error("ListNotifications: repository error for recipient=%s: %v", recipientID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.NotificationListResponse{
		Notifications: make([]*models.NotificationResponse, 0, len(items)),
		Total:         total,
		Page:          page,
		Limit:         limit,
		HasMore:       page*limit < total,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, models.FromDomainNotification(n))
	}
	return resp, nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID, id uuid.UUID) error {
	err := s.repo.MarkRead(ctx, id, recipientID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}
