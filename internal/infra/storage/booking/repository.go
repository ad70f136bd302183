package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/pgerrors"
	"github.com/rings-s/booking/pkg/psqlbuilder"
	"github.com/rings-s/booking/pkg/types"
)

var bookingColumns = []string{
	"id",
	"business_id",
	"service_id",
	"customer_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"total_price",
	"notes",
	"is_paid",
	"payment_method",
	"service_name",
	"business_name",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Нарушение уникального индекса активных броней возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"business_id",
			"service_id",
			"customer_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"total_price",
			"notes",
			"is_paid",
			"payment_method",
			"service_name",
			"business_name",
		).
		Values(
			booking.BusinessID,
			booking.ServiceID,
			booking.CustomerID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.TotalPrice,
			booking.Notes,
			booking.IsPaid,
			booking.PaymentMethod,
			booking.ServiceName,
			booking.BusinessName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID. В транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListForDate брони компании на дату с фильтром по статусам и услуге.
// В транзакции выбранные строки блокируются (FOR UPDATE).
func (r *Repository) ListForDate(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID}).
		Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC")

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.ExcludingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer брони клиента.
// upcoming: активные с датой не раньше today, по возрастанию;
// history: все остальные, по убыванию.
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, scope domain.BookingScope, today time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID})

	upcoming := squirrel.And{
		squirrel.GtOrEq{"booking_date": today.Format(domain.DateFormat)},
		squirrel.Eq{"status": statusStrings(domain.OccupyingStatuses)},
	}

	switch scope {
	case domain.ScopeUpcoming:
		selectBuilder = selectBuilder.Where(upcoming).OrderBy("booking_date ASC, start_time ASC")
	case domain.ScopeHistory:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Lt{"booking_date": today.Format(domain.DateFormat)},
			squirrel.NotEq{"status": statusStrings(domain.OccupyingStatuses)},
		}).OrderBy("booking_date DESC, start_time DESC")
	default:
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByBusinessWithFilter брони компании с фильтрацией по услуге, периоду и статусу
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID}).
		OrderBy("booking_date DESC, start_time DESC")

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Reschedule переносит бронь на другую дату и время
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", date.Format(domain.DateFormat)).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Reschedule", query, args)
}

// CountCreatedSince число броней компании, созданных начиная с since (для лимитов тарифа)
func (r *Repository) CountCreatedSince(ctx context.Context, businessID int64, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCreatedSince - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCreatedSince - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Summary агрегаты по броням компании за период [from, to]
func (r *Repository) Summary(ctx context.Context, businessID int64, from, to time.Time) (*domain.BookingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	revenueStatuses := statusStrings(domain.RevenueStatuses)
	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'confirmed')",
		"COUNT(DISTINCT customer_id)",
	).
		Column(squirrel.Expr(
			"COALESCE(SUM(total_price) FILTER (WHERE is_paid AND status IN (?, ?)), 0)",
			revenueStatuses[0], revenueStatuses[1],
		)).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build select query: %w", ErrBuildQuery, err)
	}

	var summary domain.BookingSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.Bookings,
		&summary.Confirmed,
		&summary.Customers,
		&summary.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - scan row: %w", ErrScanRow, err)
	}

	return &summary, nil
}

// DailyCounts количество броней по дням и статусам за период [from, to]
func (r *Repository) DailyCounts(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_date",
		"COUNT(*) FILTER (WHERE status = 'confirmed')",
		"COUNT(*) FILTER (WHERE status = 'pending')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)}).
		GroupBy("booking_date").
		OrderBy("booking_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DailyCounts - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DailyCounts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.DailyCount, 0)
	for rows.Next() {
		var c domain.DailyCount
		if err := rows.Scan(&c.Date, &c.Confirmed, &c.Pending, &c.Cancelled, &c.Total); err != nil {
			return nil, fmt.Errorf("%w: DailyCounts - scan row: %w", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DailyCounts - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
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
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.CustomerID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TotalPrice,
		&booking.Notes,
		&booking.IsPaid,
		&booking.PaymentMethod,
		&booking.ServiceName,
		&booking.BusinessName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
