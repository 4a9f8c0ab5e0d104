package verify_payment

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
	paymentRepo "github.com/heavyrent/rental-service/internal/infra/storage/payment"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
	"github.com/heavyrent/rental-service/pkg/ptr"
)

const keySecret = "test_secret"

type MockPayments struct{ mock.Mock }

func (m *MockPayments) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPayments) MarkPaid(ctx context.Context, id uuid.UUID, gatewayPaymentID string, paidAt time.Time) error {
	return m.Called(ctx, id, gatewayPaymentID, paidAt).Error(0)
}

func (m *MockPayments) MarkFailed(ctx context.Context, id uuid.UUID, gatewayPaymentID string) error {
	return m.Called(ctx, id, gatewayPaymentID).Error(0)
}

type MockBookings struct{ mock.Mock }

func (m *MockBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

type MockEquipment struct{ mock.Mock }

func (m *MockEquipment) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockProfiles struct{ mock.Mock }

func (m *MockProfiles) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n *domain.Notification) {
	m.Called(ctx, n)
}

// recordingTx runs fn inline and remembers whether it failed, as a rollback would.
type recordingTx struct {
	calls      int
	rolledBack bool
}

func (tx *recordingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	err := fn(ctx)
	tx.rolledBack = err != nil
	return err
}

type nopMetrics struct{}

func (nopMetrics) PaymentVerificationResult(string) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	payments  *MockPayments
	bookings  *MockBookings
	equipment *MockEquipment
	profiles  *MockProfiles
	notifier  *MockNotifier
	tx        *recordingTx

	userID  uuid.UUID
	client  *domain.Profile
	booking *domain.Booking
	payment *domain.Payment
	now     time.Time
}

func newFixture(secret string) *fixture {
	f := &fixture{
		payments:  new(MockPayments),
		bookings:  new(MockBookings),
		equipment: new(MockEquipment),
		profiles:  new(MockProfiles),
		notifier:  new(MockNotifier),
		tx:        &recordingTx{},
		userID:    uuid.New(),
		client:    &domain.Profile{ID: uuid.New()},
		now:       time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC),
	}
	f.booking = &domain.Booking{
		ID:          uuid.New(),
		EquipmentID: uuid.New(),
		ClientID:    f.client.ID,
		OperatorID:  uuid.New(),
		Status:      domain.StatusPending,
	}
	f.payment = &domain.Payment{
		ID:             uuid.New(),
		BookingID:      f.booking.ID,
		GatewayOrderID: "order_1",
		Amount:         425,
		Currency:       "INR",
		Status:         domain.PaymentPending,
	}

	gateway := razorpay.NewClient("http://127.0.0.1:1", "rzp_test_key", secret, time.Second, nopLogger{})
	f.uc = NewUseCase(f.payments, f.bookings, f.equipment, f.profiles, gateway, f.notifier, f.tx, nopMetrics{}, nopLogger{})
	f.uc.timeProvider = fixedTime{t: f.now}

	f.profiles.On("ResolveIdentity", mock.Anything, f.userID).Return(f.client, nil)
	f.payments.On("GetByOrderID", mock.Anything, "order_1").Return(f.payment, nil)
	f.bookings.On("GetByID", mock.Anything, f.booking.ID).Return(f.booking, nil)
	f.equipment.On("GetByID", mock.Anything, f.booking.EquipmentID).
		Return(&domain.Equipment{ID: f.booking.EquipmentID, Name: "JCB 3DX"}, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return()
	return f
}

func (f *fixture) request(signature string) *Request {
	return &Request{
		UserID:           f.userID,
		GatewayPaymentID: "pay_1",
		GatewayOrderID:   "order_1",
		Signature:        signature,
		BookingID:        f.booking.ID,
	}
}

func validSignature() string {
	return razorpay.ExpectedSignature(keySecret, "order_1", "pay_1")
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(keySecret)
	f.payments.On("MarkPaid", mock.Anything, f.payment.ID, "pay_1", f.now).Return(nil)
	f.bookings.On("UpdateStatus", mock.Anything, f.booking.ID, domain.StatusConfirmed, (*string)(nil)).Return(nil)

	resp, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	require.NoError(t, err)
	assert.False(t, resp.AlreadyVerified)
	assert.Equal(t, "paid", resp.Payment.Status)
	assert.Equal(t, "pay_1", *resp.Payment.GatewayPaymentID)
	assert.Equal(t, f.now, *resp.Payment.PaidAt)
	assert.Equal(t, "confirmed", resp.Booking.Status)

	f.notifier.AssertNumberOfCalls(t, "Notify", 2)
	f.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == f.booking.ClientID && n.Type == domain.NotificationPaymentSuccess &&
			n.Data["payment_id"] == f.payment.ID.String()
	}))
	f.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == f.booking.OperatorID && n.Type == domain.NotificationBookingConfirmed
	}))
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture(keySecret)
	f.payment.Status = domain.PaymentPaid
	f.payment.GatewayPaymentID = ptr.Ptr("pay_1")
	f.booking.Status = domain.StatusConfirmed

	resp, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	require.NoError(t, err)
	assert.True(t, resp.AlreadyVerified)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	f.payments.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_CapturedWithAnotherPayment(t *testing.T) {
	f := newFixture(keySecret)
	f.payment.Status = domain.PaymentPaid
	f.payment.GatewayPaymentID = ptr.Ptr("pay_0")

	_, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	assert.ErrorIs(t, err, ErrAlreadyCaptured)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_SignatureMismatch(t *testing.T) {
	f := newFixture(keySecret)
	f.payments.On("MarkFailed", mock.Anything, f.payment.ID, "pay_1").Return(nil)

	bad := []byte(validSignature())
	bad[0] ^= 0x01

	_, err := f.uc.Execute(context.Background(), f.request(string(bad)))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
	assert.False(t, f.tx.rolledBack, "failed attempt must be committed")
	f.payments.AssertCalled(t, "MarkFailed", mock.Anything, f.payment.ID, "pay_1")
	f.payments.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_NotConfigured(t *testing.T) {
	f := newFixture("")

	_, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_NotTheClient(t *testing.T) {
	f := newFixture(keySecret)
	f.booking.ClientID = uuid.New()

	_, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	assert.ErrorIs(t, err, ErrNotBookingClient)
	f.payments.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_BookingMismatch(t *testing.T) {
	f := newFixture(keySecret)
	req := f.request(validSignature())
	req.BookingID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingMismatch)
}

func TestExecute_UnknownOrder(t *testing.T) {
	f := newFixture(keySecret)
	f.payments.On("GetByOrderID", mock.Anything, "order_x").Return(nil, paymentRepo.ErrPaymentNotFound)
	req := f.request(razorpay.ExpectedSignature(keySecret, "order_x", "pay_1"))
	req.GatewayOrderID = "order_x"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_ConfirmedBookingKeepsStatus(t *testing.T) {
	f := newFixture(keySecret)
	f.booking.Status = domain.StatusActive
	f.payments.On("MarkPaid", mock.Anything, f.payment.ID, "pay_1", f.now).Return(nil)

	resp, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Booking.Status)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_OtherPaymentAlreadyPaid(t *testing.T) {
	f := newFixture(keySecret)
	f.payments.On("MarkPaid", mock.Anything, f.payment.ID, "pay_1", f.now).Return(paymentRepo.ErrAlreadyPaid)

	_, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	assert.ErrorIs(t, err, ErrAlreadyCaptured)
	assert.True(t, f.tx.rolledBack)
}

func TestExecute_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(keySecret)
	f.payments.On("MarkPaid", mock.Anything, f.payment.ID, "pay_1", f.now).Return(nil)
	f.bookings.On("UpdateStatus", mock.Anything, f.booking.ID, domain.StatusConfirmed, (*string)(nil)).
		Return(errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), f.request(validSignature()))
	assert.ErrorIs(t, err, ErrInternal)
	assert.True(t, f.tx.rolledBack)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(keySecret)
	req := f.request("")
	req.BookingID = uuid.Nil

	_, err := f.uc.Execute(context.Background(), req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "razorpay_signature")
	assert.Contains(t, verr.Fields, "booking_id")
}
