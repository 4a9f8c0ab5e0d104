package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/infra/storage"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"equipment_id",
	"client_id",
	"operator_id",
	"start_time",
	"end_time",
	"duration_hours",
	"daily_rate",
	"billable_days",
	"base_price",
	"tax_amount",
	"total_amount",
	"advance_amount",
	"balance_amount",
	"contact_name",
	"contact_phone",
	"pickup_address",
	"delivery_address",
	"special_requirements",
	"notes",
	"status",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. An overlap with a live booking on the same equipment
// is rejected by the bookings_no_overlap constraint and returned as ErrOverlap.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"equipment_id",
			"client_id",
			"operator_id",
			"start_time",
			"end_time",
			"duration_hours",
			"daily_rate",
			"billable_days",
			"base_price",
			"tax_amount",
			"total_amount",
			"advance_amount",
			"balance_amount",
			"contact_name",
			"contact_phone",
			"pickup_address",
			"delivery_address",
			"special_requirements",
			"status",
		).
		Values(
			b.EquipmentID,
			b.ClientID,
			b.OperatorID,
			b.StartTime,
			b.EndTime,
			b.DurationHours,
			b.Price.DailyRate,
			b.Price.Days,
			b.Price.BasePrice,
			b.Price.TaxAmount,
			b.Price.TotalAmount,
			b.Price.AdvanceAmount,
			b.Price.BalanceAmount,
			b.ContactName,
			b.ContactPhone,
			b.PickupAddress,
			b.DeliveryAddress,
			b.SpecialRequirements,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if storage.IsExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID returns a booking. Inside a transaction the row is locked FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// FindOverlapping returns non-cancelled bookings of equipmentID whose interval [s,e)
// intersects [start, end), i.e. s < end AND e > start.
// Inside a transaction the matching rows are locked FOR UPDATE.
func (r *Repository) FindOverlapping(ctx context.Context, equipmentID uuid.UUID, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List returns the bookings where filter.ProfileID is the client or the operator, newest first,
// together with the total count before pagination.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column := "client_id"
	if filter.AsParty == domain.PartyOperator {
		column = "operator_id"
	}
	where := squirrel.And{squirrel.Eq{column: filter.ProfileID}}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From("bookings").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}
	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListStartingBetween returns bookings in status whose start time falls in [from, to).
func (r *Repository) ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus sets status and, when notes is not nil, the notes column.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()"))
	if notes != nil {
		builder = builder.Set("notes", *notes)
	}

	query, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.EquipmentID,
		&b.ClientID,
		&b.OperatorID,
		&b.StartTime,
		&b.EndTime,
		&b.DurationHours,
		&b.Price.DailyRate,
		&b.Price.Days,
		&b.Price.BasePrice,
		&b.Price.TaxAmount,
		&b.Price.TotalAmount,
		&b.Price.AdvanceAmount,
		&b.Price.BalanceAmount,
		&b.ContactName,
		&b.ContactPhone,
		&b.PickupAddress,
		&b.DeliveryAddress,
		&b.SpecialRequirements,
		&b.Notes,
		&b.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}
