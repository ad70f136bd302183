package customer

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

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("customer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)

// Repository статистика клиентов (customer_profiles)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID статистика клиента; при отсутствии записи возвращает нули
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.CustomerStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "total_bookings", "total_spent").
		From("customer_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	var stats domain.CustomerStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.UserID, &stats.TotalBookings, &stats.TotalSpent)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.CustomerStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan row: %w", ErrScanRow, err)
	}

	return &stats, nil
}

// IncrementBookings total_bookings + 1 (запись создается при первом обращении)
func (r *Repository) IncrementBookings(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_profiles").
		Columns("user_id", "total_bookings", "total_spent").
		Values(userID, 1, 0).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"total_bookings = customer_profiles.total_bookings + 1, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBookings - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementBookings - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// AddSpent total_spent += delta, не уходит ниже нуля
func (r *Repository) AddSpent(ctx context.Context, userID int64, delta float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_profiles").
		Columns("user_id", "total_bookings", "total_spent").
		Values(userID, 0, squirrel.Expr("GREATEST(?::numeric, 0)", delta)).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET "+
			"total_spent = GREATEST(customer_profiles.total_spent + ?::numeric, 0), updated_at = NOW()", delta).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddSpent - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddSpent - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}
