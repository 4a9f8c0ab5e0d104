package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/domain"
)

type MockBookings struct{ mock.Mock }

func (m *MockBookings) ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, status, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockPayments struct{ mock.Mock }

func (m *MockPayments) HasPaid(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

type MockEquipment struct{ mock.Mock }

func (m *MockEquipment) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n *domain.Notification) {
	m.Called(ctx, n)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) JobResult(job, result string) {
	m.Called(job, result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	runner    *Runner
	bookings  *MockBookings
	payments  *MockPayments
	equipment *MockEquipment
	notifier  *MockNotifier
	metrics   *MockMetrics
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  new(MockBookings),
		payments:  new(MockPayments),
		equipment: new(MockEquipment),
		notifier:  new(MockNotifier),
		metrics:   new(MockMetrics),
	}
	f.runner = NewRunner(f.bookings, f.payments, f.equipment, f.notifier, 24*time.Hour, f.metrics, nopLogger{})
	f.runner.now = func() time.Time { return now }

	f.equipment.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Equipment{Name: "JCB 3DX"}, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return()
	f.metrics.On("JobResult", mock.Anything, mock.Anything).Return()
	return f
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		EquipmentID: uuid.New(),
		ClientID:    uuid.New(),
		OperatorID:  uuid.New(),
		StartTime:   now.Add(6 * time.Hour),
		EndTime:     now.Add(10 * time.Hour),
		Status:      status,
		Price:       domain.Pricing{TaxRate: 0.18, AdvanceRate: 0.30}.Compute(1200, 4),
	}
}

func TestSendPaymentReminders_SkipsPaidBookings(t *testing.T) {
	f := newFixture()
	unpaid, paid := booking(domain.StatusPending), booking(domain.StatusPending)
	f.bookings.On("ListStartingBetween", mock.Anything, domain.StatusPending, now, now.Add(24*time.Hour)).
		Return([]*domain.Booking{unpaid, paid}, nil)
	f.payments.On("HasPaid", mock.Anything, unpaid.ID).Return(false, nil)
	f.payments.On("HasPaid", mock.Anything, paid.ID).Return(true, nil)

	sent, err := f.runner.sendPaymentReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	f.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == unpaid.ClientID &&
			n.Type == domain.NotificationPaymentReminder &&
			strings.Contains(n.Message, "425.00")
	}))
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestSendPaymentReminders_PaymentCheckErrorSkipsBooking(t *testing.T) {
	f := newFixture()
	b := booking(domain.StatusPending)
	f.bookings.On("ListStartingBetween", mock.Anything, domain.StatusPending, mock.Anything, mock.Anything).
		Return([]*domain.Booking{b}, nil)
	f.payments.On("HasPaid", mock.Anything, b.ID).Return(false, errors.New("timeout"))

	sent, err := f.runner.sendPaymentReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendRentalStartReminders_NotifiesBothParties(t *testing.T) {
	f := newFixture()
	b := booking(domain.StatusConfirmed)
	f.bookings.On("ListStartingBetween", mock.Anything, domain.StatusConfirmed, now, now.Add(24*time.Hour)).
		Return([]*domain.Booking{b}, nil)

	sent, err := f.runner.sendRentalStartReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	for _, recipient := range []uuid.UUID{b.ClientID, b.OperatorID} {
		recipient := recipient
		f.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == recipient && n.Type == domain.NotificationRentalReminder
		}))
	}
}

func TestRun_RecordsOutcome(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListStartingBetween", mock.Anything, domain.StatusConfirmed, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))
	f.bookings.On("ListStartingBetween", mock.Anything, domain.StatusPending, mock.Anything, mock.Anything).
		Return([]*domain.Booking{}, nil)

	f.runner.SendRentalStartReminders()
	f.runner.SendPaymentReminders()

	f.metrics.AssertCalled(t, "JobResult", JobRentalStartReminder, "error")
	f.metrics.AssertCalled(t, "JobResult", JobPaymentReminder, "ok")
}

func TestRun_RecoversPanic(t *testing.T) {
	f := newFixture()

	assert.NotPanics(t, func() {
		f.runner.run("broken", func(context.Context) (int, error) {
			panic("boom")
		})
	})
	f.metrics.AssertCalled(t, "JobResult", "broken", "panic")
}

func TestNewScheduler(t *testing.T) {
	f := newFixture()

	s, err := NewScheduler(f.runner, Specs{PaymentReminder: "0 0 8 * * *", RentalStartReminder: "0 30 8 * * *"}, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	_, err = NewScheduler(f.runner, Specs{PaymentReminder: "every day", RentalStartReminder: "0 30 8 * * *"}, nopLogger{})
	assert.Error(t, err)
}
