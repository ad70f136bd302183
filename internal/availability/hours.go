package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/types"
)

// Interval часы работы в конкретный день
type Interval struct {
	Open   types.TimeString
	Close  types.TimeString
	Closed bool
}

// IsEmpty закрыто или открытие не раньше закрытия (вырожденный интервал)
func (i Interval) IsEmpty() bool {
	return i.Closed || !i.Open.IsBefore(i.Close)
}

// Contains returns true if [start, end] lies within the interval
func (i Interval) Contains(start, end types.TimeString) bool {
	if i.Closed {
		return false
	}
	return !start.IsBefore(i.Open) && !end.IsAfter(i.Close)
}

// HoursResolver сопоставляет (компания, день недели) интервалу работы
type HoursResolver struct {
	repo HoursRepository
}

func NewHoursResolver(repo HoursRepository) *HoursResolver {
	return &HoursResolver{repo: repo}
}

// HoursFor возвращает часы работы. Отсутствие записи или is_closed - закрыто.
func (r *HoursResolver) HoursFor(ctx context.Context, businessID int64, weekday domain.Weekday) (Interval, error) {
	hours, err := r.repo.GetByBusinessAndWeekday(ctx, businessID, weekday)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Interval{Closed: true}, nil
		}
		return Interval{}, fmt.Errorf("%w: get business hours: %w", ErrInternal, err)
	}
	return resolve(hours), nil
}

// Week возвращает часы работы на все дни недели одним запросом
func (r *HoursResolver) Week(ctx context.Context, businessID int64) ([7]Interval, error) {
	var week [7]Interval
	for i := range week {
		week[i] = Interval{Closed: true}
	}

	rows, err := r.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return week, fmt.Errorf("%w: list business hours: %w", ErrInternal, err)
	}

	for _, h := range rows {
		if h.Weekday.IsValid() {
			week[h.Weekday] = resolve(h)
		}
	}
	return week, nil
}

func resolve(h *domain.BusinessHours) Interval {
	if h == nil || h.IsClosed || h.OpeningTime.IsZero() || h.ClosingTime.IsZero() {
		return Interval{Closed: true}
	}
	return Interval{Open: h.OpeningTime, Close: h.ClosingTime}
}
