package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"business_id",
	"customer_id",
	"booking_id",
	"rating",
	"comment",
	"is_verified",
	"is_featured",
	"business_response",
	"response_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("business_id", "customer_id", "booking_id", "rating", "comment", "is_verified").
		Values(review.BusinessID, review.CustomerID, review.BookingID, review.Rating, review.Comment, review.IsVerified).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	return review, nil
}

// ExistsForBooking есть ли уже отзыв по брони
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan row: %w", ErrScanRow, err)
	}

	return exists, nil
}

// ListByBusiness отзывы компании с рейтингом не ниже minRating; избранные первыми
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, minRating int) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"rating": minRating}).
		OrderBy("is_featured DESC", "created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return reviews, nil
}

// Respond сохраняет ответ компании на отзыв
func (r *Repository) Respond(ctx context.Context, id int64, response string, at time.Time) error {
	query, args, err := psqlbuilder.Update("reviews").
		Set("business_response", response).
		Set("response_date", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Respond - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Respond", query, args)
}

// SetFeatured помечает отзыв избранным
func (r *Repository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	query, args, err := psqlbuilder.Update("reviews").
		Set("is_featured", featured).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetFeatured - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "SetFeatured", query, args)
}

// AverageRating средний рейтинг всех отзывов компании; 0 если отзывов нет
func (r *Repository) AverageRating(ctx context.Context, businessID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(AVG(rating), 0)::float8").
		From("reviews").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AverageRating - build select query: %w", ErrBuildQuery, err)
	}

	var avg float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("%w: AverageRating - scan row: %w", ErrScanRow, err)
	}

	return avg, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var bookingID sql.NullInt64
	var response sql.NullString
	var responseDate sql.NullTime

	err := row.Scan(
		&review.ID,
		&review.BusinessID,
		&review.CustomerID,
		&bookingID,
		&review.Rating,
		&review.Comment,
		&review.IsVerified,
		&review.IsFeatured,
		&response,
		&responseDate,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingID.Valid {
		review.BookingID = &bookingID.Int64
	}
	if response.Valid {
		review.BusinessResponse = &response.String
	}
	if responseDate.Valid {
		review.ResponseDate = &responseDate.Time
	}

	return &review, nil
}
