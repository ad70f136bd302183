package create_booking

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountCreatedSince(ctx context.Context, businessID int64, since time.Time) (int, error)
}

// CustomerRepository статистика клиентов
type CustomerRepository interface {
	IncrementBookings(ctx context.Context, userID int64) error
}

// Validator проверка заявки на бронирование
type Validator interface {
	ValidateAndPrepare(ctx context.Context, c availability.Candidate) (*availability.Prepared, error)
}

// UserDirectory имена пользователей для уведомлений
type UserDirectory interface {
	DisplayName(ctx context.Context, userID int64) string
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated(status string)
	IncBookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
