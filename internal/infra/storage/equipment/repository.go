package equipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/psqlbuilder"
)

var equipmentColumns = []string{
	"e.id",
	"e.owner_id",
	"e.name",
	"e.category",
	"e.description",
	"e.daily_rate",
	"e.city",
	"e.address",
	"e.latitude",
	"e.longitude",
	"e.status",
	"e.specifications",
	"e.images",
	"e.created_at",
	"e.updated_at",
	"p.full_name",
	"p.rating",
	"p.review_count",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if e.Specifications == nil {
		e.Specifications = domain.Specifications{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}

	query, args, err := psqlbuilder.Insert("equipment").
		Columns(
			"owner_id",
			"name",
			"category",
			"description",
			"daily_rate",
			"city",
			"address",
			"latitude",
			"longitude",
			"status",
			"specifications",
			"images",
		).
		Values(
			e.OwnerID,
			e.Name,
			e.Category,
			e.Description,
			e.DailyRate,
			e.City,
			e.Address,
			e.Latitude,
			e.Longitude,
			e.Status,
			e.Specifications,
			pq.Array(e.Images),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return e, nil
}

// GetByID returns the item with its owner summary.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBase().
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEquipment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %v", ErrScanRow, err)
	}
	return e, nil
}

// List returns items matching the SQL-expressible part of filter, newest first.
// Geo radius is not applied here. When paginate is false every match is returned.
func (r *Repository) List(ctx context.Context, filter domain.EquipmentFilter, paginate bool) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := applyFilter(r.selectBase(), filter).OrderBy("e.created_at DESC", "e.id")
	if paginate {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan equipment: %v", ErrScanRow, err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return items, nil
}

// Count returns the number of items List would return without pagination.
func (r *Repository) Count(ctx context.Context, filter domain.EquipmentFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("equipment e"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}
	return total, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EquipmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("equipment").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

func (r *Repository) selectBase() squirrel.SelectBuilder {
	return psqlbuilder.Select(equipmentColumns...).
		From("equipment e").
		Join("profiles p ON p.id = e.owner_id")
}

func applyFilter(b squirrel.SelectBuilder, f domain.EquipmentFilter) squirrel.SelectBuilder {
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"e.category": *f.Category})
	}
	if f.City != nil {
		b = b.Where(squirrel.ILike{"e.city": "%" + escapeLike(*f.City) + "%"})
	}
	if f.MinPrice != nil {
		b = b.Where(squirrel.GtOrEq{"e.daily_rate": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		b = b.Where(squirrel.LtOrEq{"e.daily_rate": *f.MaxPrice})
	}
	if f.AvailableOnly {
		b = b.Where(squirrel.Eq{"e.status": domain.EquipmentAvailable})
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	var e domain.Equipment
	var owner domain.OwnerSummary
	var createdAt, updatedAt sql.NullTime
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Name,
		&e.Category,
		&e.Description,
		&e.DailyRate,
		&e.City,
		&e.Address,
		&lat,
		&lng,
		&e.Status,
		&e.Specifications,
		pq.Array(&e.Images),
		&createdAt,
		&updatedAt,
		&owner.FullName,
		&owner.Rating,
		&owner.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lng.Valid {
		e.Longitude = &lng.Float64
	}
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	owner.ID = e.OwnerID
	e.Owner = &owner
	return &e, nil
}
