package booking

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRow(b *domain.Booking) []driver.Value {
	return []driver.Value{
		b.ID.String(), b.EquipmentID.String(), b.ClientID.String(), b.OperatorID.String(),
		b.StartTime, b.EndTime, b.DurationHours,
		b.Price.DailyRate, b.Price.Days, b.Price.BasePrice, b.Price.TaxAmount, b.Price.TotalAmount,
		b.Price.AdvanceAmount, b.Price.BalanceAmount,
		b.ContactName, b.ContactPhone, b.PickupAddress, b.DeliveryAddress, nil, nil,
		string(b.Status), time.Now(), time.Now(),
	}
}

func sampleBooking() *domain.Booking {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              uuid.New(),
		EquipmentID:     uuid.New(),
		ClientID:        uuid.New(),
		OperatorID:      uuid.New(),
		StartTime:       start,
		EndTime:         start.Add(4 * time.Hour),
		DurationHours:   4,
		Price:           domain.Pricing{TaxRate: 0.18, AdvanceRate: 0.30}.Compute(1200, 4),
		ContactName:     "Ravi Kumar",
		ContactPhone:    "+919876543210",
		PickupAddress:   "Plot 12, MIDC Bhosari, Pune",
		DeliveryAddress: "Site 4, Hinjewadi Phase 2, Pune",
		Status:          domain.StatusPending,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		b := sampleBooking()
		id := uuid.New()

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(b.EquipmentID, b.ClientID, b.OperatorID, b.StartTime, b.EndTime, 4,
				1200.0, 1, 1200.0, 216.0, 1416.0, 425.0, 991.0,
				b.ContactName, b.ContactPhone, b.PickupAddress, b.DeliveryAddress, nil, domain.StatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(id.String(), time.Now(), time.Now()))

		created, err := repo.Create(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, id, created.ID)
	})

	t.Run("Exclusion constraint", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

		_, err := repo.Create(ctx, sampleBooking())
		assert.ErrorIs(t, err, ErrOverlap)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.True(t, IsConflict(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping_LocksInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	existing := sampleBooking()
	start := existing.StartTime.Add(2 * time.Hour)
	end := start.Add(4 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE equipment_id = \$1 AND status <> \$2 AND start_time < \$3 AND end_time > \$4 ORDER BY start_time ASC FOR UPDATE`).
		WithArgs(existing.EquipmentID, domain.StatusCancelled, end, start).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(existing)...))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	found, err := repo.FindOverlapping(ctx, existing.EquipmentID, start, end)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, existing.ID, found[0].ID)
	assert.Equal(t, 425.0, found[0].Price.AdvanceAmount)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)
	equipmentID := uuid.New()
	start := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY start_time ASC$`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	found, err := repo.FindOverlapping(context.Background(), equipmentID, start, start.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	b := sampleBooking()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(b.ID).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(b)...))

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ClientID, got.ClientID)
	assert.Equal(t, domain.StatusPending, got.Status)

	mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, _, mock := newRepo(t)
	b := sampleBooking()
	status := domain.StatusPending

	filter := domain.BookingsFilter{
		ProfileID: b.OperatorID,
		AsParty:   domain.PartyOperator,
		Status:    &status,
		Page:      1,
		Limit:     10,
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE \(operator_id = \$1 AND status = \$2\)`).
		WithArgs(b.OperatorID, domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE \(operator_id = \$1 AND status = \$2\) ORDER BY created_at DESC, id LIMIT 10 OFFSET 0`).
		WithArgs(b.OperatorID, domain.StatusPending).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(b)...))

	items, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\), notes = \$2 WHERE id = \$3`).
		WithArgs(domain.StatusCancelled, "site closed", id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), id, domain.StatusCancelled, ptr.Ptr("site closed")))

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(domain.StatusConfirmed, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), id, domain.StatusConfirmed, nil), ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: "40001"}))
	assert.True(t, IsConflict(ErrOverlap))
	assert.False(t, IsConflict(ErrBookingNotFound))
}
