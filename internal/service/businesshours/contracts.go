package businesshours

import (
	"context"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
)

// HoursRepository интерфейс репозитория часов работы
type HoursRepository interface {
	Upsert(ctx context.Context, hours *domain.BusinessHours) error
}

// WeekResolver часы работы на неделю, отсутствующие дни закрыты
type WeekResolver interface {
	Week(ctx context.Context, businessID int64) ([7]availability.Interval, error)
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
