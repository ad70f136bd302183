package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/types"
)

// Candidate заявка на бронирование или перенос
type Candidate struct {
	BusinessID         int64
	ServiceID          int64
	Date               time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	ExcludingBookingID *int64
}

// Prepared проверенная заявка с загруженными сущностями
type Prepared struct {
	Business        *domain.Business
	Service         *domain.Service
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// Validator проверяет заявку перед записью брони
type Validator struct {
	businesses   BusinessRepository
	services     ServiceRepository
	hours        *HoursResolver
	bookings     BookingLister
	timeProvider TimeProvider
	tolerance    int
}

// NewValidator toleranceMinutes < 0 заменяется значением по умолчанию
func NewValidator(
	businesses BusinessRepository,
	services ServiceRepository,
	hours *HoursResolver,
	bookings BookingLister,
	timeProvider TimeProvider,
	toleranceMinutes int,
) *Validator {
	if toleranceMinutes < 0 {
		toleranceMinutes = domain.DurationToleranceMinutes
	}
	return &Validator{
		businesses:   businesses,
		services:     services,
		hours:        hours,
		bookings:     bookings,
		timeProvider: timeProvider,
		tolerance:    toleranceMinutes,
	}
}

// ValidateAndPrepare выполняет проверки по порядку и возвращает первый отказ.
// Ошибки хранилища оборачиваются в ErrInternal.
func (v *Validator) ValidateAndPrepare(ctx context.Context, c Candidate) (*Prepared, error) {
	// 1. Компания и услуга
	business, err := v.businesses.GetByID(ctx, c.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("%w: get business: %w", ErrInternal, err)
	}

	service, err := v.services.GetByID(ctx, c.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("%w: get service: %w", ErrInternal, err)
	}

	if !business.IsActive || !service.IsActive || !service.BelongsTo(business.ID) {
		return nil, ErrInvalidReference
	}

	// 2. Время начала не в прошлом
	now := v.timeProvider.Now()
	day := dayOf(c.Date, now.Location())

	startMinutes, err := c.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %w", ErrInvalidCandidate, err)
	}
	endMinutes, err := c.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %w", ErrInvalidCandidate, err)
	}

	startAt := day.Add(time.Duration(startMinutes) * time.Minute)
	if !startAt.After(now) {
		return nil, ErrInThePast
	}

	// 3. Длительность положительна
	duration := endMinutes - startMinutes
	if duration <= 0 {
		return nil, ErrNonPositiveDuration
	}

	// 4. Длительность совпадает с услугой
	if abs(duration-service.DurationMinutes) > v.tolerance {
		return nil, fmt.Errorf("%w: got %d minutes, service takes %d", ErrDurationMismatch, duration, service.DurationMinutes)
	}

	// 5. Часы работы
	interval, err := v.hours.HoursFor(ctx, business.ID, domain.WeekdayOf(day))
	if err != nil {
		return nil, err
	}
	if interval.Closed {
		return nil, ErrBusinessClosed
	}
	if !interval.Contains(c.StartTime, c.EndTime) {
		return nil, ErrOutsideBusinessHours
	}

	// 6. Пересечение с любой активной бронью компании
	bookings, err := v.bookings.ListForDate(ctx, domain.BookingListFilter{
		BusinessID:  business.ID,
		Date:        day,
		Statuses:    domain.OccupyingStatuses,
		ExcludingID: c.ExcludingBookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrInternal, err)
	}

	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if c.ExcludingBookingID != nil && b.ID == *c.ExcludingBookingID {
			continue
		}
		if b.OccupiesTime() && b.Overlaps(c.StartTime, c.EndTime) {
			active = append(active, b)
		}
	}
	if len(active) > 0 {
		return nil, ErrTimeConflict
	}

	// 7. Вместимость слота услуги
	sameService := 0
	for _, b := range active {
		if b.ServiceID == service.ID {
			sameService++
		}
	}
	if sameService >= service.MaxBookingsPerSlot {
		return nil, ErrSlotFullyBooked
	}

	return &Prepared{
		Business:        business,
		Service:         service,
		Date:            day,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationMinutes: duration,
	}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
