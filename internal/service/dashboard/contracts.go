package dashboard

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// BookingStats агрегаты броней компании
type BookingStats interface {
	Summary(ctx context.Context, businessID int64, from, to time.Time) (*domain.BookingSummary, error)
	DailyCounts(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyCount, error)
}

// RatingStats средний рейтинг отзывов
type RatingStats interface {
	AverageRating(ctx context.Context, businessID int64) (float64, error)
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
