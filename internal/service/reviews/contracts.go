package reviews

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByBusiness(ctx context.Context, businessID int64, minRating int) ([]*domain.Review, error)
	Respond(ctx context.Context, id int64, response string, at time.Time) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// OutboxRepository очередь исходящих событий
type OutboxRepository interface {
	Enqueue(ctx context.Context, eventType, aggregateID string, payload interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
