package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
	"github.com/heavyrent/rental-service/pkg/ptr"
)

// memoryBookings keeps bookings in memory and answers overlap queries like the SQL repository.
type memoryBookings struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	failWith error
	// failures are returned by the next Create calls, one each, before failWith applies
	failures []error
	creates  int
}

func (m *memoryBookings) FindOverlapping(_ context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Booking
	for _, b := range m.bookings {
		if b.EquipmentID == equipmentID && b.Status != domain.StatusCancelled && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		return nil, err
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	b.ID = uuid.New()
	m.bookings = append(m.bookings, b)
	return b, nil
}

type MockEquipment struct {
	mock.Mock
}

func (m *MockEquipment) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n *domain.Notification) {
	m.Called(ctx, n)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) BookingResult(result string) {
	m.Called(result)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	bookings  *memoryBookings
	equipment *MockEquipment
	profiles  *MockProfiles
	notifier  *MockNotifier
	metrics   *MockMetrics

	userID    uuid.UUID
	client    *domain.Profile
	operator  uuid.UUID
	excavator *domain.Equipment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	phone, err := domain.PhoneFormatFor("IN")
	require.NoError(t, err)

	f := &fixture{
		bookings:  &memoryBookings{},
		equipment: new(MockEquipment),
		profiles:  new(MockProfiles),
		notifier:  new(MockNotifier),
		metrics:   new(MockMetrics),
		userID:    uuid.New(),
		client:    &domain.Profile{ID: uuid.New(), Role: domain.RoleClient},
		operator:  uuid.New(),
	}
	f.excavator = &domain.Equipment{
		ID:        uuid.New(),
		OwnerID:   f.operator,
		Name:      "JCB 3DX",
		DailyRate: 1200,
		Status:    domain.EquipmentAvailable,
	}

	f.uc = NewUseCase(f.bookings, f.equipment, f.profiles, f.notifier, inlineTx{},
		domain.Pricing{TaxRate: 0.18, AdvanceRate: 0.30}, phone, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{t: time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)}

	f.profiles.On("ResolveIdentity", mock.Anything, f.userID).Return(f.client, nil)
	f.equipment.On("GetByID", mock.Anything, f.excavator.ID).Return(f.excavator, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return()
	f.metrics.On("BookingResult", mock.Anything).Return()
	return f
}

func (f *fixture) request(start, end time.Time) *Request {
	return &Request{
		UserID:          f.userID,
		EquipmentID:     f.excavator.ID,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   domain.DurationHours(start, end),
		ContactName:     "Ravi Kumar",
		ContactPhone:    "+919876543210",
		PickupAddress:   "Plot 12, MIDC Bhosari, Pune",
		DeliveryAddress: "Site 4, Hinjewadi Phase 2, Pune",
	}
}

func at(hour int) time.Time {
	return time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestExecute_OverlapScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.request(at(9), at(13)))
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, 1200.0, first.BasePrice)
	assert.Equal(t, 216.0, first.TaxAmount)
	assert.Equal(t, 1416.0, first.TotalAmount)
	assert.Equal(t, 425.0, first.AdvanceAmount)

	_, err = f.uc.Execute(ctx, f.request(at(11), at(15)))
	assert.ErrorIs(t, err, ErrBookingOverlap)
	assert.ErrorIs(t, err, domain.ErrConflict)

	adjacent, err := f.uc.Execute(ctx, f.request(at(13), at(17)))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, adjacent.ID)

	assert.Len(t, f.bookings.bookings, 2)
	f.metrics.AssertCalled(t, "BookingResult", "conflict")
}

func TestExecute_CancelledBookingFreesInterval(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{{
		ID:          uuid.New(),
		EquipmentID: f.excavator.ID,
		StartTime:   at(9),
		EndTime:     at(13),
		Status:      domain.StatusCancelled,
	}}

	_, err := f.uc.Execute(context.Background(), f.request(at(10), at(12)))
	require.NoError(t, err)
}

func TestExecute_NotifiesOperator(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	require.NoError(t, err)

	f.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == f.operator &&
			n.Type == domain.NotificationBookingRequest &&
			n.Data["booking_id"] == resp.ID.String()
	}))
	assert.Equal(t, f.client.ID, resp.ClientID)
	assert.Equal(t, f.operator, resp.OperatorID)
}

func TestExecute_ConstraintViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	f.bookings.failWith = &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrBookingOverlap)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_SerializationFailureIsRetried(t *testing.T) {
	f := newFixture(t)
	f.bookings.failures = []error{&pq.Error{Code: "40001"}, &pq.Error{Code: "40001"}}

	resp, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, 3, f.bookings.creates)
	f.metrics.AssertCalled(t, "BookingResult", "created")
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestExecute_PersistentSerializationFailureIsNotOverlap(t *testing.T) {
	f := newFixture(t)
	f.bookings.failWith = &pq.Error{Code: "40001"}

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrBookingContention)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrBookingOverlap)
	assert.Equal(t, maxTxAttempts, f.bookings.creates)
	f.metrics.AssertCalled(t, "BookingResult", "contention")
}

func TestExecute_ExclusionViolationIsNotRetried(t *testing.T) {
	f := newFixture(t)
	f.bookings.failWith = &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrBookingOverlap)
	assert.Equal(t, 1, f.bookings.creates)
}

func TestExecute_InternalError(t *testing.T) {
	f := newFixture(t)
	f.bookings.failWith = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, bookingRepo.IsConflict(err))
}

func TestExecute_EquipmentNotFound(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()
	f.equipment.On("GetByID", mock.Anything, missing).Return(nil, equipmentRepo.ErrEquipmentNotFound)

	req := f.request(at(9), at(13))
	req.EquipmentID = missing

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_OwnEquipment(t *testing.T) {
	f := newFixture(t)
	f.client.ID = f.operator

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrOwnEquipment)
}

func TestExecute_EquipmentInMaintenance(t *testing.T) {
	f := newFixture(t)
	f.excavator.Status = domain.EquipmentMaintenance

	_, err := f.uc.Execute(context.Background(), f.request(at(9), at(13)))
	assert.ErrorIs(t, err, ErrEquipmentUnavailable)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
		field  string
	}{
		{"phone without country code", func(r *Request) { r.ContactPhone = "9876543210" }, "contactPhone"},
		{"phone starting with 5", func(r *Request) { r.ContactPhone = "+915876543210" }, "contactPhone"},
		{"end before start", func(r *Request) { r.EndTime = r.StartTime.Add(-time.Hour) }, "endTime"},
		{"start in the past", func(r *Request) {
			r.StartTime = time.Date(2024, 5, 29, 9, 0, 0, 0, time.UTC)
			r.EndTime = r.StartTime.Add(4 * time.Hour)
		}, "startTime"},
		{"duration mismatch", func(r *Request) { r.DurationHours = 5 }, "durationHours"},
		{"duration over 30 days", func(r *Request) {
			r.EndTime = r.StartTime.Add(721 * time.Hour)
			r.DurationHours = 721
		}, "durationHours"},
		{"name with digits", func(r *Request) { r.ContactName = "Ravi 2" }, "contactName"},
		{"name too short", func(r *Request) { r.ContactName = "R" }, "contactName"},
		{"short address", func(r *Request) { r.PickupAddress = "Pune" }, "pickupAddress"},
		{"long requirements", func(r *Request) { r.SpecialRequirements = ptr.Ptr(string(make([]byte, 2001))) }, "specialRequirements"},
		{"missing equipment", func(r *Request) { r.EquipmentID = uuid.Nil }, "equipmentId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request(at(9), at(13))
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, f.bookings.bookings)
			f.profiles.AssertNotCalled(t, "ResolveIdentity", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ValidPhonePasses(t *testing.T) {
	f := newFixture(t)
	req := f.request(at(9), at(13))
	req.ContactPhone = "+919876543210"

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_MultiDayPricing(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(at(9), at(9).Add(30*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.BillableDays)
	assert.Equal(t, 2400.0, resp.BasePrice)
	assert.Equal(t, 432.0, resp.TaxAmount)
	assert.Equal(t, 2832.0, resp.TotalAmount)
	assert.Equal(t, 850.0, resp.AdvanceAmount)
}
