package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/domain"
	notificationRepo "github.com/heavyrent/rental-service/internal/infra/storage/notification"
	"github.com/heavyrent/rental-service/internal/integrations/mailer"
	"github.com/heavyrent/rental-service/internal/service/notifications/models"
	"github.com/heavyrent/rental-service/pkg/ptr"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, int, error) {
	args := m.Called(ctx, recipientID, unreadOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return m.Called(ctx, id, recipientID).Error(0)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) NotificationResult(channel, result string) {
	m.Called(channel, result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Notify_FansOut(t *testing.T) {
	repo, profiles, email, events, m := new(MockRepository), new(MockProfiles), new(MockEmail), new(MockPublisher), new(MockMetrics)
	svc := NewService(repo, profiles, m, nopLogger{}, WithEmail(email, "ops@heavyrent.in"), WithEvents(events))

	recipient := uuid.New()
	n := &domain.Notification{
		RecipientID: recipient,
		Title:       "Payment successful",
		Message:     "Advance of INR 425.00 received",
		Type:        domain.NotificationPaymentSuccess,
		Data:        map[string]string{"booking_id": "b1"},
	}
	stored := *n
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()

	repo.On("Create", mock.Anything, n).Return(&stored, nil)
	profiles.On("GetByID", mock.Anything, recipient).
		Return(&domain.Profile{ID: recipient, FullName: "Ravi Kumar", Email: ptr.Ptr("ravi@example.com")}, nil)
	email.On("Send", mock.Anything, mailer.Message{
		ToEmail:   "ravi@example.com",
		ToName:    "Ravi Kumar",
		Subject:   "Payment successful",
		PlainText: "Advance of INR 425.00 received",
	}).Return(nil)
	events.On("PublishJSON", mock.Anything, "notification.payment_success", mock.MatchedBy(func(e models.Event) bool {
		return e.NotificationID == stored.ID && e.RecipientID == recipient && e.Data["booking_id"] == "b1"
	})).Return(nil)
	m.On("NotificationResult", mock.Anything, "ok").Return()

	svc.Notify(context.Background(), n)

	repo.AssertExpectations(t)
	email.AssertExpectations(t)
	events.AssertExpectations(t)
	m.AssertCalled(t, "NotificationResult", "inbox", "ok")
	m.AssertCalled(t, "NotificationResult", "email", "ok")
	m.AssertCalled(t, "NotificationResult", "event", "ok")
}

func TestService_Notify_StoreFailureIsSwallowed(t *testing.T) {
	repo, events := new(MockRepository), new(MockPublisher)
	svc := NewService(repo, new(MockProfiles), nil, nopLogger{}, WithEvents(events))

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), &domain.Notification{RecipientID: uuid.New(), Type: domain.NotificationBookingRequest})
	})
	events.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Notify_SkipsEmailWithoutAddress(t *testing.T) {
	repo, profiles, email := new(MockRepository), new(MockProfiles), new(MockEmail)
	svc := NewService(repo, profiles, nil, nopLogger{}, WithEmail(email, ""))

	n := &domain.Notification{RecipientID: uuid.New(), Type: domain.NotificationBookingConfirmed}
	repo.On("Create", mock.Anything, n).Return(n, nil)
	profiles.On("GetByID", mock.Anything, n.RecipientID).Return(&domain.Profile{ID: n.RecipientID}, nil)

	svc.Notify(context.Background(), n)
	email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_AlertAdmin(t *testing.T) {
	email := new(MockEmail)
	svc := NewService(new(MockRepository), new(MockProfiles), nil, nopLogger{}, WithEmail(email, "ops@heavyrent.in"))

	email.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.ToEmail == "ops@heavyrent.in" && msg.Subject == "New custom quote"
	})).Return(errors.New("sendgrid down"))

	svc.AlertAdmin(context.Background(), "New custom quote", "Tower crane, Navi Mumbai")
	email.AssertExpectations(t)

	disabled := NewService(new(MockRepository), new(MockProfiles), nil, nopLogger{})
	assert.NotPanics(t, func() { disabled.AlertAdmin(context.Background(), "s", "t") })
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProfiles), nil, nopLogger{})
	recipient := uuid.New()

	repo.On("List", mock.Anything, recipient, true, 2, 2).
		Return([]*domain.Notification{{ID: uuid.New(), Type: domain.NotificationBookingRequest}}, 5, nil)

	resp, err := svc.List(context.Background(), recipient, true, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.True(t, resp.HasMore)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "booking_request", resp.Notifications[0].Type)
}

func TestService_MarkRead(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProfiles), nil, nopLogger{})
	recipient, id := uuid.New(), uuid.New()

	repo.On("MarkRead", mock.Anything, id, recipient).Return(notificationRepo.ErrNotificationNotFound)

	err := svc.MarkRead(context.Background(), recipient, id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
