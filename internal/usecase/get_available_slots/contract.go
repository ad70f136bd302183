package get_available_slots

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

// SlotGenerator генератор слотов на дату
type SlotGenerator interface {
	GenerateSlots(ctx context.Context, business *domain.Business, service *domain.Service, date time.Time) ([]domain.Slot, error)
}

// Metrics счетчики запросов доступности
type Metrics interface {
	IncAvailabilityQuery(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
