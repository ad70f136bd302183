package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/psqlbuilder"
)

// Repository репозиторий компаний (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает компанию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"slug",
		"category",
		"city",
		"is_active",
		"accepts_online_bookings",
		"auto_confirm_bookings",
		"subscription_tier",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var b domain.Business
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.Slug,
		&b.Category,
		&b.City,
		&b.IsActive,
		&b.AcceptsOnlineBookings,
		&b.AutoConfirmBookings,
		&b.SubscriptionTier,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %w", ErrScanRow, err)
	}

	return &b, nil
}
