package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/types"
)

// BookingRepository брони в памяти. Повторяет уникальный индекс
// (business_id, service_id, booking_date, start_time) для активных броней.
type BookingRepository struct {
	s *Store
}

// Add сохраняет бронь без проверок (для подготовки данных)
func (r *BookingRepository) Add(b *domain.Booking) *domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.ID == 0 {
		b.ID = r.s.nextID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
		b.UpdatedAt = b.CreatedAt
	}
	r.s.data.bookings[b.ID] = *b
	return b
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	if r.slotTakenLocked(booking, 0) {
		return nil, ErrSlotTaken
	}

	booking.ID = r.s.nextID()
	booking.CreatedAt = r.s.now()
	booking.UpdatedAt = booking.CreatedAt
	r.s.data.bookings[booking.ID] = *booking

	created := *booking
	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) ListForDate(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if b.BusinessID != filter.BusinessID || !sameDate(b.BookingDate, filter.Date) {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.ExcludingID != nil && b.ID == *filter.ExcludingID {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, b.Status) {
			continue
		}
		b := b
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.IsBefore(result[j].StartTime) })
	return result, nil
}

func (r *BookingRepository) GetByCustomer(ctx context.Context, customerID int64, scope domain.BookingScope, today time.Time) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}

	day := dateOnly(today)
	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if b.CustomerID != customerID {
			continue
		}
		upcoming := !dateOnly(b.BookingDate).Before(day) && b.OccupiesTime()
		switch scope {
		case domain.ScopeUpcoming:
			if !upcoming {
				continue
			}
		case domain.ScopeHistory:
			if upcoming {
				continue
			}
		}
		b := b
		result = append(result, &b)
	}

	if scope == domain.ScopeUpcoming {
		sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	} else {
		sort.Slice(result, func(i, j int) bool { return less(result[j], result[i]) })
	}
	return result, nil
}

func (r *BookingRepository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.StartDate != nil && dateOnly(b.BookingDate).Before(dateOnly(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && dateOnly(b.BookingDate).After(dateOnly(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		b := b
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool { return less(result[j], result[i]) })
	return result, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	b, ok := r.s.data.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = r.s.now()
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) Reschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	b, ok := r.s.data.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}

	b.BookingDate = date
	b.StartTime = start
	b.EndTime = end
	if r.slotTakenLocked(&b, id) {
		return ErrSlotTaken
	}

	b.UpdatedAt = r.s.now()
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) CountCreatedSince(ctx context.Context, businessID int64, since time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return 0, err
	}
	count := 0
	for _, b := range r.s.data.bookings {
		if b.BusinessID == businessID && !b.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) Summary(ctx context.Context, businessID int64, from, to time.Time) (*domain.BookingSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}

	summary := &domain.BookingSummary{}
	customers := make(map[int64]struct{})
	for _, b := range r.s.data.bookings {
		if b.BusinessID != businessID || !inRange(b.BookingDate, from, to) {
			continue
		}
		summary.Bookings++
		customers[b.CustomerID] = struct{}{}
		if b.Status == domain.StatusConfirmed {
			summary.Confirmed++
		}
		if b.IsPaid && hasStatus(domain.RevenueStatuses, b.Status) {
			summary.Revenue += b.TotalPrice
		}
	}
	summary.Customers = len(customers)
	return summary, nil
}

func (r *BookingRepository) DailyCounts(ctx context.Context, businessID int64, from, to time.Time) ([]domain.DailyCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*domain.DailyCount)
	for _, b := range r.s.data.bookings {
		if b.BusinessID != businessID || !inRange(b.BookingDate, from, to) {
			continue
		}
		day := dateOnly(b.BookingDate)
		c, ok := byDay[day]
		if !ok {
			c = &domain.DailyCount{Date: day}
			byDay[day] = c
		}
		c.Total++
		switch b.Status {
		case domain.StatusConfirmed:
			c.Confirmed++
		case domain.StatusPending:
			c.Pending++
		case domain.StatusCancelled:
			c.Cancelled++
		}
	}

	result := make([]domain.DailyCount, 0, len(byDay))
	for _, c := range byDay {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// slotTakenLocked проверка уникального индекса; exceptID исключает саму бронь
func (r *BookingRepository) slotTakenLocked(b *domain.Booking, exceptID int64) bool {
	if !b.OccupiesTime() {
		return false
	}
	for _, other := range r.s.data.bookings {
		if other.ID == exceptID || !other.OccupiesTime() {
			continue
		}
		if other.BusinessID == b.BusinessID &&
			other.ServiceID == b.ServiceID &&
			sameDate(other.BookingDate, b.BookingDate) &&
			other.StartTime == b.StartTime {
			return true
		}
	}
	return false
}

func hasStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func inRange(date, from, to time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(from)) && !d.After(dateOnly(to))
}

func less(a, b *domain.Booking) bool {
	if !sameDate(a.BookingDate, b.BookingDate) {
		return dateOnly(a.BookingDate).Before(dateOnly(b.BookingDate))
	}
	return a.StartTime.IsBefore(b.StartTime)
}
