package availability

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// BusinessRepository возвращает ошибку, оборачивающую domain.ErrNotFound, если компании нет
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository возвращает ошибку, оборачивающую domain.ErrNotFound, если услуги нет
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// HoursRepository источник часов работы
type HoursRepository interface {
	GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) (*domain.BusinessHours, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BusinessHours, error)
}

// BookingLister выборка броней компании на дату
type BookingLister interface {
	ListForDate(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider текущее время в заданном часовом поясе
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
