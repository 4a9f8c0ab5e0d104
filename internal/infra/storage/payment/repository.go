package payment

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

var paymentColumns = []string{
	"id",
	"booking_id",
	"gateway_order_id",
	"gateway_payment_id",
	"amount",
	"currency",
	"status",
	"paid_at",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "gateway_order_id", "amount", "currency", "status").
		Values(p.BookingID, p.GatewayOrderID, p.Amount, p.Currency, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrOrderExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByOrderID returns the payment of a gateway order. Inside a transaction the row is locked FOR UPDATE.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"gateway_order_id": orderID})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// MarkPaid records the captured gateway payment.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, gatewayPaymentID string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentPaid).
		Set("gateway_payment_id", gatewayPaymentID).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return ErrAlreadyPaid
		}
		return fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}
	return requireRow(result, "MarkPaid")
}

// MarkFailed flags a payment whose verification failed. Only pending payments change.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, gatewayPaymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentFailed).
		Set("gateway_payment_id", gatewayPaymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// HasPaid reports whether any payment of the booking is paid.
func (r *Repository) HasPaid(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr(
			"EXISTS (SELECT 1 FROM payments WHERE booking_id = ? AND status = ?)",
			bookingID, domain.PaymentPaid,
		)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasPaid - build select query: %v", ErrBuildQuery, err)
	}

	var paid bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&paid); err != nil {
		return false, fmt.Errorf("%w: HasPaid - scan: %v", ErrScanRow, err)
	}
	return paid, nil
}

// ListByBookingID returns payment attempts of a booking, oldest first.
func (r *Repository) ListByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBookingID - scan payment: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - rows error: %v", ErrScanRow, err)
	}
	return payments, nil
}

func requireRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var gatewayPaymentID sql.NullString
	var paidAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.GatewayOrderID,
		&gatewayPaymentID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gatewayPaymentID.Valid {
		p.GatewayPaymentID = &gatewayPaymentID.String
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
