package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/types"
)

// Generator строит сетку слотов услуги на дату
type Generator struct {
	hours        *HoursResolver
	bookings     BookingLister
	timeProvider TimeProvider
	leadTime     time.Duration
}

// NewGenerator leadTime <= 0 заменяется значением по умолчанию
func NewGenerator(hours *HoursResolver, bookings BookingLister, timeProvider TimeProvider, leadTime time.Duration) *Generator {
	if leadTime <= 0 {
		leadTime = domain.DefaultLeadTimeMinutes * time.Minute
	}
	return &Generator{
		hours:        hours,
		bookings:     bookings,
		timeProvider: timeProvider,
		leadTime:     leadTime,
	}
}

// GenerateSlots возвращает слоты в порядке возрастания времени начала.
// Слоты без свободных мест тоже возвращаются (AvailableSpots = 0).
func (g *Generator) GenerateSlots(ctx context.Context, business *domain.Business, service *domain.Service, date time.Time) ([]domain.Slot, error) {
	now := g.timeProvider.Now()
	day := dayOf(date, now.Location())
	if day.Before(dayOf(now, now.Location())) {
		return []domain.Slot{}, nil
	}

	interval, err := g.hours.HoursFor(ctx, business.ID, domain.WeekdayOf(day))
	if err != nil {
		return nil, err
	}

	return g.slotsWithin(ctx, business, service, day, interval, now)
}

// slotsWithin генерация при уже известных часах работы
func (g *Generator) slotsWithin(ctx context.Context, business *domain.Business, service *domain.Service, day time.Time, interval Interval, now time.Time) ([]domain.Slot, error) {
	if interval.IsEmpty() || service.DurationMinutes <= 0 || service.Stride() <= 0 {
		return []domain.Slot{}, nil
	}

	serviceID := service.ID
	bookings, err := g.bookings.ListForDate(ctx, domain.BookingListFilter{
		BusinessID: business.ID,
		Date:       day,
		Statuses:   domain.OccupyingStatuses,
		ServiceID:  &serviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrInternal, err)
	}

	return buildSlots(day, interval, service, now, g.leadTime, bookings), nil
}

func buildSlots(day time.Time, interval Interval, service *domain.Service, now time.Time, leadTime time.Duration, bookings []*domain.Booking) []domain.Slot {
	slots := []domain.Slot{}

	openAt, err := interval.Open.On(day)
	if err != nil {
		return slots
	}
	closeAt, err := interval.Close.On(day)
	if err != nil {
		return slots
	}

	duration := service.Duration()
	stride := service.Stride()
	cursor := openAt

	// Сегодня: первая точка сетки не раньше now + leadTime
	if sameDay(day, now) {
		earliest := now.Add(leadTime)
		if earliest.After(cursor) {
			steps := (earliest.Sub(cursor) + stride - 1) / stride
			cursor = cursor.Add(steps * stride)
		}
	}

	for !cursor.Add(duration).After(closeAt) {
		start := types.NewTimeString(cursor)
		end := types.NewTimeString(cursor.Add(duration))

		taken := 0
		for _, b := range bookings {
			if b.ServiceID == service.ID && b.OccupiesTime() && b.Overlaps(start, end) {
				taken++
			}
		}

		spots := service.MaxBookingsPerSlot - taken
		if spots < 0 {
			spots = 0
		}

		slots = append(slots, domain.Slot{
			StartTime:      start,
			EndTime:        end,
			AvailableSpots: spots,
		})
		cursor = cursor.Add(stride)
	}

	return slots
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
