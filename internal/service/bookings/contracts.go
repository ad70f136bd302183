package bookings

import (
	"context"
	"io"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, customerID int64, scope domain.BookingScope, today time.Time) ([]*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// CustomerRepository статистика клиентов
type CustomerRepository interface {
	AddSpent(ctx context.Context, userID int64, delta float64) error
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// OutboxRepository очередь исходящих событий
type OutboxRepository interface {
	Enqueue(ctx context.Context, eventType, aggregateID string, payload interface{}) error
}

// Exporter выгрузка броней в файл
type Exporter interface {
	WriteBookings(w io.Writer, sheet string, bookings []*domain.Booking) error
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
