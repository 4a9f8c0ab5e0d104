package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
	"github.com/heavyrent/rental-service/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"recipient_id",
	"title",
	"message",
	"type",
	"data",
	"read",
	"created_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data := n.Data
	if data == nil {
		data = map[string]string{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeData, err)
	}

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("recipient_id", "title", "message", "type", "data").
		Values(n.RecipientID, n.Title, n.Message, n.Type, payload).
		Suffix("RETURNING id, read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.Read, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	n.CreatedAt = createdAt.Time
	return n, nil
}

// List returns the recipient's inbox newest first, and the total count before pagination.
func (r *Repository) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{"recipient_id": recipientID}
	if unreadOnly {
		where["read"] = false
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}
	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var payload []byte
		var createdAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &payload, &n.Read, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan notification: %v", ErrScanRow, err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("%w: List - decode data: %v", ErrScanRow, err)
			}
		}
		n.CreatedAt = createdAt.Time
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return items, total, nil
}

// MarkRead flags a notification as read. Notifications of other recipients are reported as not found.
func (r *Repository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
