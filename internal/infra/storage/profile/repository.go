package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/infra/storage"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/psqlbuilder"
)

var profileColumns = []string{
	"id",
	"user_id",
	"full_name",
	"phone",
	"email",
	"role",
	"rating",
	"review_count",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a profile. A second profile for the same identity yields ErrProfileExists.
func (r *Repository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("user_id", "full_name", "phone", "email", "role").
		Values(p.UserID, p.FullName, p.Phone, p.Email, p.Role).
		Suffix("RETURNING id, rating, review_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Rating, &p.ReviewCount, &createdAt, &updatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByUserID maps an identity provider account to its profile.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetRole returns the role column of a profile.
func (r *Repository) GetRole(ctx context.Context, id uuid.UUID) (domain.Role, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("role").
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetRole - build select query: %v", ErrBuildQuery, err)
	}

	var role domain.Role
	err = executor.QueryRowContext(ctx, query, args...).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetRole - scan role: %v", ErrScanRow, err)
	}
	return role, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("profiles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Profile
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Phone,
		&p.Email,
		&p.Role,
		&p.Rating,
		&p.ReviewCount,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan profile: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
