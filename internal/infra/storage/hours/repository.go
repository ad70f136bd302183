package hours

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

// Repository репозиторий часов работы компаний
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndWeekday часы работы на день недели
func (r *Repository) GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectHours().
		Where(squirrel.Eq{"business_id": businessID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - build select query: %w", ErrBuildQuery, err)
	}

	h, err := scanHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - scan hours: %w", ErrScanRow, err)
	}

	return h, nil
}

// ListByBusiness все записи часов работы компании по дням недели
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectHours().
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		h, err := scanHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или заменяет часы работы на день недели
func (r *Repository) Upsert(ctx context.Context, h *domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns("business_id", "weekday", "opening_time", "closing_time", "is_closed").
		Values(h.BusinessID, int(h.Weekday), h.OpeningTime, h.ClosingTime, h.IsClosed).
		Suffix("ON CONFLICT (business_id, weekday) DO UPDATE SET " +
			"opening_time = EXCLUDED.opening_time, " +
			"closing_time = EXCLUDED.closing_time, " +
			"is_closed = EXCLUDED.is_closed " +
			"RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

func selectHours() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "business_id", "weekday", "opening_time", "closing_time", "is_closed").
		From("business_hours")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHours(row rowScanner) (*domain.BusinessHours, error) {
	var h domain.BusinessHours
	var weekday int
	err := row.Scan(&h.ID, &h.BusinessID, &weekday, &h.OpeningTime, &h.ClosingTime, &h.IsClosed)
	if err != nil {
		return nil, err
	}
	h.Weekday = domain.Weekday(weekday)
	return &h, nil
}
