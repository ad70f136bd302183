package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/psqlbuilder"
)

// Repository репозиторий уведомлений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "business_id", "booking_id", "type", "title", "message").
		Values(n.UserID, n.BusinessID, n.BookingID, n.Type, n.Title, n.Message).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return n, nil
}

// ListByUser уведомления пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "user_id", "business_id", "booking_id", "type", "title", "message", "is_read", "read_at", "created_at",
	).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	if unreadOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_read": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var businessID, bookingID sql.NullInt64
		var readAt sql.NullTime

		err := rows.Scan(&n.ID, &n.UserID, &businessID, &bookingID, &n.Type, &n.Title, &n.Message, &n.IsRead, &readAt, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %w", ErrScanRow, err)
		}

		if businessID.Valid {
			n.BusinessID = &businessID.Int64
		}
		if bookingID.Valid {
			n.BookingID = &bookingID.Int64
		}
		if readAt.Valid {
			n.ReadAt = &readAt.Time
		}
		result = append(result, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CountUnread число непрочитанных уведомлений
func (r *Repository) CountUnread(ctx context.Context, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUnread - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnread - scan row: %w", ErrScanRow, err)
	}

	return count, nil
}

// MarkRead отмечает уведомление прочитанным. Чужое уведомление считается ненайденным.
func (r *Repository) MarkRead(ctx context.Context, id, userID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Set("read_at", squirrel.Expr("COALESCE(read_at, ?)", at)).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead отмечает прочитанными все уведомления пользователя
func (r *Repository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Set("read_at", at).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - build update query: %w", ErrBuildQuery, err)
	}

	return r.exec(ctx, "MarkAllRead", query, args)
}

// DeleteRead удаляет прочитанные уведомления пользователя
func (r *Repository) DeleteRead(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psqlbuilder.Delete("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRead - build delete query: %w", ErrBuildQuery, err)
	}

	return r.exec(ctx, "DeleteRead", query, args)
}

func (r *Repository) exec(ctx context.Context, op, query string, args []interface{}) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}
