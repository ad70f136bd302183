package availability

import (
	"context"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// Scanner ищет даты, на которые есть хотя бы один слот
type Scanner struct {
	generator *Generator
}

func NewScanner(generator *Generator) *Scanner {
	return &Scanner{generator: generator}
}

// AvailableDates проходит по дням от startDate до startDate+horizonDays включительно.
// Закрытые дни и дни без слотов пропускаются. horizonDays <= 0 заменяется значением по умолчанию.
func (s *Scanner) AvailableDates(ctx context.Context, business *domain.Business, service *domain.Service, startDate time.Time, horizonDays int) ([]domain.AvailableDate, error) {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	if horizonDays > domain.MaxHorizonDays {
		horizonDays = domain.MaxHorizonDays
	}

	now := s.generator.timeProvider.Now()
	loc := now.Location()
	today := dayOf(now, loc)
	start := dayOf(startDate, loc)

	week, err := s.generator.hours.Week(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	dates := []domain.AvailableDate{}
	for i := 0; i <= horizonDays; i++ {
		day := start.AddDate(0, 0, i)
		if day.Before(today) {
			continue
		}

		weekday := domain.WeekdayOf(day)
		interval := week[weekday]
		if interval.IsEmpty() {
			continue
		}

		slots, err := s.generator.slotsWithin(ctx, business, service, day, interval, now)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}

		dates = append(dates, domain.AvailableDate{
			Date:       day,
			Weekday:    weekday,
			SlotsCount: len(slots),
		})
	}

	return dates, nil
}
