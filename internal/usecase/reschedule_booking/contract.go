package reschedule_booking

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Validator проверка заявки на бронирование
type Validator interface {
	ValidateAndPrepare(ctx context.Context, c availability.Candidate) (*availability.Prepared, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
