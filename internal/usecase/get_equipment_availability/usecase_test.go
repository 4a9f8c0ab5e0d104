package get_equipment_availability

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
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
)

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, equipmentID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.June, day, hour, min, 0, 0, time.UTC)
}

func booking(start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: uuid.New(), StartTime: start, EndTime: end, Status: status}
}

type fixture struct {
	uc        *UseCase
	bookings  *MockBookings
	equipment *MockEquipment
	item      *domain.Equipment
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings:  new(MockBookings),
		equipment: new(MockEquipment),
		item:      &domain.Equipment{ID: uuid.New(), Name: "JCB 3DX", Status: domain.EquipmentAvailable},
	}
	f.uc = NewUseCase(f.bookings, f.equipment, nopLogger{})
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func TestExecute_FreeWindowsAroundBookings(t *testing.T) {
	f := newFixture(at(1, 6, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, at(2, 0, 0), at(3, 0, 0)).Return([]*domain.Booking{
		booking(at(2, 9, 0), at(2, 13, 0), domain.StatusConfirmed),
		booking(at(2, 13, 30), at(2, 17, 0), domain.StatusPending),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID, From: at(2, 0, 0), To: at(3, 0, 0)})

	require.NoError(t, err)
	assert.True(t, resp.Bookable)
	require.Len(t, resp.Booked, 2)
	assert.Equal(t, "confirmed", resp.Booked[0].Status)
	// the 30 minute gap between the two bookings is too short to book
	assert.Equal(t, []Window{
		{Start: at(2, 0, 0), End: at(2, 9, 0)},
		{Start: at(2, 17, 0), End: at(3, 0, 0)},
	}, resp.Free)
}

func TestExecute_BackToBackBookingsMerge(t *testing.T) {
	f := newFixture(at(1, 6, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, mock.Anything, mock.Anything).Return([]*domain.Booking{
		booking(at(2, 9, 0), at(2, 13, 0), domain.StatusConfirmed),
		booking(at(2, 13, 0), at(2, 17, 0), domain.StatusActive),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID, From: at(2, 0, 0), To: at(3, 0, 0)})

	require.NoError(t, err)
	assert.Len(t, resp.Booked, 2)
	assert.Equal(t, []Window{
		{Start: at(2, 0, 0), End: at(2, 9, 0)},
		{Start: at(2, 17, 0), End: at(3, 0, 0)},
	}, resp.Free)
}

func TestExecute_ClipsToRangeAndNow(t *testing.T) {
	// now is 10:00 on the first requested day
	f := newFixture(at(2, 10, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, at(2, 0, 0), at(3, 0, 0)).Return([]*domain.Booking{
		booking(at(1, 20, 0), at(2, 8, 0), domain.StatusActive),
		booking(at(2, 22, 0), at(4, 9, 0), domain.StatusPending),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID, From: at(2, 0, 0), To: at(3, 0, 0)})

	require.NoError(t, err)
	require.Len(t, resp.Booked, 2)
	assert.Equal(t, at(2, 0, 0), resp.Booked[0].Start)
	assert.Equal(t, at(3, 0, 0), resp.Booked[1].End)
	assert.Equal(t, []Window{{Start: at(2, 10, 0), End: at(2, 22, 0)}}, resp.Free)
}

func TestExecute_DefaultRange(t *testing.T) {
	f := newFixture(at(1, 15, 45))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, at(1, 0, 0), at(15, 0, 0)).Return([]*domain.Booking{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID})

	require.NoError(t, err)
	assert.Equal(t, at(1, 0, 0), resp.From)
	assert.Equal(t, at(15, 0, 0), resp.To)
	assert.Equal(t, []Window{{Start: at(1, 15, 45), End: at(15, 0, 0)}}, resp.Free)
	f.bookings.AssertExpectations(t)
}

func TestExecute_PastRangeHasNoFreeWindows(t *testing.T) {
	f := newFixture(at(20, 0, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, mock.Anything, mock.Anything).Return([]*domain.Booking{
		booking(at(2, 9, 0), at(2, 13, 0), domain.StatusCompleted),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID, From: at(2, 0, 0), To: at(3, 0, 0)})

	require.NoError(t, err)
	assert.Len(t, resp.Booked, 1)
	assert.Empty(t, resp.Free)
}

func TestExecute_OutOfServiceEquipment(t *testing.T) {
	for _, status := range []domain.EquipmentStatus{domain.EquipmentMaintenance, domain.EquipmentUnavailable} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(at(1, 6, 0))
			f.item.Status = status
			f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
			f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

			resp, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID, From: at(2, 0, 0), To: at(3, 0, 0)})

			require.NoError(t, err)
			assert.False(t, resp.Bookable)
			assert.Empty(t, resp.Free)
			assert.Equal(t, string(status), resp.Status)
		})
	}
}

func TestExecute_EquipmentNotFound(t *testing.T) {
	f := newFixture(at(1, 6, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(nil, equipmentRepo.ErrEquipmentNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID})

	assert.ErrorIs(t, err, ErrEquipmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(at(1, 6, 0))
	f.equipment.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.bookings.On("FindOverlapping", mock.Anything, f.item.ID, mock.Anything, mock.Anything).Return(nil, errors.New("conn reset"))

	_, err := f.uc.Execute(context.Background(), &Request{EquipmentID: f.item.ID})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing equipment", Request{From: at(2, 0, 0), To: at(3, 0, 0)}, "equipmentId"},
		{"reversed range", Request{EquipmentID: uuid.New(), From: at(5, 0, 0), To: at(3, 0, 0)}, "to"},
		{"same day", Request{EquipmentID: uuid.New(), From: at(5, 8, 0), To: at(5, 20, 0)}, "to"},
		{"too long", Request{EquipmentID: uuid.New(), From: at(1, 0, 0), To: at(1, 0, 0).AddDate(0, 3, 0)}, "to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(at(1, 6, 0))

			_, err := f.uc.Execute(context.Background(), &tt.req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			f.equipment.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}
