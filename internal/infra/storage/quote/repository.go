package quote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/psqlbuilder"
)

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, q *domain.CustomQuote) (*domain.CustomQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("custom_quotes").
		Columns(
			"profile_id",
			"name",
			"phone",
			"email",
			"equipment_type",
			"project_description",
			"location",
			"duration",
			"budget_range",
			"status",
		).
		Values(
			q.ProfileID,
			q.Name,
			q.Phone,
			q.Email,
			q.EquipmentType,
			q.ProjectDescription,
			q.Location,
			q.Duration,
			q.BudgetRange,
			q.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&q.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	q.CreatedAt = createdAt.Time
	return q, nil
}
