package get_available_dates

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// DateScanner поиск дат со свободными слотами
type DateScanner interface {
	AvailableDates(ctx context.Context, business *domain.Business, service *domain.Service, startDate time.Time, horizonDays int) ([]domain.AvailableDate, error)
}

// Metrics счетчики запросов доступности
type Metrics interface {
	IncAvailabilityQuery(kind string)
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
