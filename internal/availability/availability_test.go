package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/pkg/ptr"
	"github.com/rings-s/booking/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// 2025-03-10 понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	clock     *fixedClock
	business  *domain.Business
	service   *domain.Service
	generator *availability.Generator
	scanner   *availability.Scanner
	validator *availability.Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}

	business := store.Businesses().Add(&domain.Business{
		OwnerID:               100,
		Name:                  "Barber",
		IsActive:              true,
		AcceptsOnlineBookings: true,
	})
	service := store.Services().Add(&domain.Service{
		BusinessID:         business.ID,
		Name:               "Haircut",
		Price:              25,
		DurationMinutes:    60,
		BufferTimeMinutes:  15,
		MaxBookingsPerSlot: 1,
		IsActive:           true,
	})

	hours := availability.NewHoursResolver(store.Hours())
	generator := availability.NewGenerator(hours, store.Bookings(), clock, time.Hour)

	return &fixture{
		store:     store,
		clock:     clock,
		business:  business,
		service:   service,
		generator: generator,
		scanner:   availability.NewScanner(generator),
		validator: availability.NewValidator(store.Businesses(), store.Services(), hours, store.Bookings(), clock, domain.DurationToleranceMinutes),
	}
}

func (f *fixture) setHours(t *testing.T, weekday domain.Weekday, open, close string) {
	t.Helper()
	require.NoError(t, f.store.Hours().Upsert(context.Background(), &domain.BusinessHours{
		BusinessID:  f.business.ID,
		Weekday:     weekday,
		OpeningTime: types.MustTimeString(open),
		ClosingTime: types.MustTimeString(close),
	}))
}

func (f *fixture) addBooking(serviceID int64, date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return f.store.Bookings().Add(&domain.Booking{
		BusinessID:  f.business.ID,
		ServiceID:   serviceID,
		CustomerID:  7,
		BookingDate: date,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		Status:      status,
	})
}

func starts(slots []domain.Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestHoursResolver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resolver := availability.NewHoursResolver(f.store.Hours())

	f.setHours(t, domain.Monday, "09:00", "17:00")
	require.NoError(t, f.store.Hours().Upsert(ctx, &domain.BusinessHours{
		BusinessID:  f.business.ID,
		Weekday:     domain.Sunday,
		OpeningTime: types.MustTimeString("10:00"),
		ClosingTime: types.MustTimeString("14:00"),
		IsClosed:    true,
	}))

	t.Run("open day", func(t *testing.T) {
		interval, err := resolver.HoursFor(ctx, f.business.ID, domain.Monday)
		require.NoError(t, err)
		assert.False(t, interval.Closed)
		assert.Equal(t, types.TimeString("09:00"), interval.Open)
		assert.Equal(t, types.TimeString("17:00"), interval.Close)
	})

	t.Run("missing row is closed", func(t *testing.T) {
		interval, err := resolver.HoursFor(ctx, f.business.ID, domain.Tuesday)
		require.NoError(t, err)
		assert.True(t, interval.Closed)
	})

	t.Run("is_closed overrides times", func(t *testing.T) {
		interval, err := resolver.HoursFor(ctx, f.business.ID, domain.Sunday)
		require.NoError(t, err)
		assert.True(t, interval.Closed)
	})

	t.Run("week", func(t *testing.T) {
		week, err := resolver.Week(ctx, f.business.ID)
		require.NoError(t, err)
		assert.False(t, week[domain.Monday].Closed)
		assert.True(t, week[domain.Tuesday].Closed)
		assert.True(t, week[domain.Sunday].Closed)
	})

	t.Run("store failure", func(t *testing.T) {
		f.store.FailWith(errors.New("connection refused"))
		defer f.store.FailWith(nil)

		_, err := resolver.HoursFor(ctx, f.business.ID, domain.Monday)
		assert.ErrorIs(t, err, availability.ErrInternal)
	})
}

func TestGenerateSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("stride includes buffer", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "10:00", AvailableSpots: 1}, slots[0])
		assert.Equal(t, domain.Slot{StartTime: "10:15", EndTime: "11:15", AvailableSpots: 1}, slots[1])
	})

	t.Run("capacity decremented by overlapping active bookings", func(t *testing.T) {
		f := newFixture(t)
		f.service.MaxBookingsPerSlot = 3
		f.store.Services().Add(f.service)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.addBooking(f.service.ID, monday, "09:00", "10:00", domain.StatusConfirmed)
		f.addBooking(f.service.ID, monday, "09:30", "10:30", domain.StatusPending)
		f.addBooking(f.service.ID, monday, "09:00", "10:00", domain.StatusCancelled)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 1, slots[0].AvailableSpots)
		// 10:15-11:15 пересекается с 09:30-10:30
		assert.Equal(t, 2, slots[1].AvailableSpots)
	})

	t.Run("touching bookings do not overlap", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.addBooking(f.service.ID, monday, "10:00", "10:15", domain.StatusConfirmed)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 1, slots[0].AvailableSpots)
		assert.Equal(t, 1, slots[1].AvailableSpots)
	})

	t.Run("full slots are still listed", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.addBooking(f.service.ID, monday, "09:00", "10:00", domain.StatusConfirmed)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 0, slots[0].AvailableSpots)
		assert.True(t, slots[0].IsFull())
	})

	t.Run("other service bookings do not reduce capacity", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.addBooking(f.service.ID+1000, monday, "09:00", "10:00", domain.StatusConfirmed)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Equal(t, 1, slots[0].AvailableSpots)
	})

	t.Run("closed day", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("degenerate interval", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "12:00", "09:00")

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.clock.now = time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("today respects lead time on the stride grid", func(t *testing.T) {
		f := newFixture(t)
		f.service.DurationMinutes = 30
		f.service.BufferTimeMinutes = 0
		f.store.Services().Add(f.service)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.clock.now = time.Date(2025, 3, 10, 9, 20, 0, 0, time.UTC)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Equal(t, []string{"10:30", "11:00", "11:30"}, starts(slots))
	})

	t.Run("today exactly on grid point", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "13:00")
		f.clock.now = time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Equal(t, []string{"10:15", "11:30"}, starts(slots))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.store.FailWith(errors.New("timeout"))

		_, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		assert.ErrorIs(t, err, availability.ErrInternal)
		_, isRejection := availability.ReasonOf(err)
		assert.False(t, isRejection)
	})
}

func TestAvailableDates(t *testing.T) {
	ctx := context.Background()

	t.Run("skips closed and empty days", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.setHours(t, domain.Wednesday, "09:00", "09:30") // короче услуги

		f.setHours(t, domain.Friday, "10:00", "11:00")

		dates, err := f.scanner.AvailableDates(ctx, f.business, f.service, monday, 7)
		require.NoError(t, err)
		require.Len(t, dates, 3)

		assert.Equal(t, monday, dates[0].Date)
		assert.Equal(t, domain.Monday, dates[0].Weekday)
		assert.Equal(t, 2, dates[0].SlotsCount)

		assert.Equal(t, monday.AddDate(0, 0, 4), dates[1].Date)
		assert.Equal(t, "Friday", dates[1].Weekday.String())
		assert.Equal(t, 1, dates[1].SlotsCount)

		// горизонт включительно: следующий понедельник попадает
		assert.Equal(t, monday.AddDate(0, 0, 7), dates[2].Date)
	})

	t.Run("count matches generator", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")
		f.addBooking(f.service.ID, monday, "09:00", "10:00", domain.StatusConfirmed)

		dates, err := f.scanner.AvailableDates(ctx, f.business, f.service, monday, 0)
		require.NoError(t, err)
		require.NotEmpty(t, dates)

		slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
		require.NoError(t, err)
		assert.Equal(t, len(slots), dates[0].SlotsCount)

		// горизонт по умолчанию 90 дней: 13 понедельников включая стартовый
		assert.Len(t, dates, 13)
	})

	t.Run("always closed", func(t *testing.T) {
		f := newFixture(t)

		dates, err := f.scanner.AvailableDates(ctx, f.business, f.service, monday, 30)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("past start skips elapsed days", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "12:00")
		f.clock.now = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)

		dates, err := f.scanner.AvailableDates(ctx, f.business, f.service, monday, 7)
		require.NoError(t, err)
		require.Len(t, dates, 1)
		assert.Equal(t, monday.AddDate(0, 0, 7), dates[0].Date)
	})
}

func TestValidateAndPrepare(t *testing.T) {
	ctx := context.Background()

	candidate := func(f *fixture, start, end string) availability.Candidate {
		return availability.Candidate{
			BusinessID: f.business.ID,
			ServiceID:  f.service.ID,
			Date:       monday,
			StartTime:  types.MustTimeString(start),
			EndTime:    types.MustTimeString(end),
		}
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")

		prepared, err := f.validator.ValidateAndPrepare(ctx, candidate(f, "10:00", "11:00"))
		require.NoError(t, err)
		assert.Equal(t, f.business.ID, prepared.Business.ID)
		assert.Equal(t, f.service.ID, prepared.Service.ID)
		assert.Equal(t, 60, prepared.DurationMinutes)
		assert.Equal(t, monday, prepared.Date)
	})

	t.Run("duration within tolerance", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")

		_, err := f.validator.ValidateAndPrepare(ctx, candidate(f, "10:00", "11:05"))
		assert.NoError(t, err)
	})

	tests := []struct {
		name   string
		setup  func(f *fixture) availability.Candidate
		want   error
		reason string
	}{
		{
			name: "unknown business",
			setup: func(f *fixture) availability.Candidate {
				c := candidate(f, "10:00", "11:00")
				c.BusinessID = 9999
				return c
			},
			want:   availability.ErrInvalidReference,
			reason: "invalid_reference",
		},
		{
			name: "inactive business",
			setup: func(f *fixture) availability.Candidate {
				f.business.IsActive = false
				f.store.Businesses().Add(f.business)
				return candidate(f, "10:00", "11:00")
			},
			want:   availability.ErrInvalidReference,
			reason: "invalid_reference",
		},
		{
			name: "service of another business",
			setup: func(f *fixture) availability.Candidate {
				other := f.store.Businesses().Add(&domain.Business{Name: "Other", IsActive: true})
				c := candidate(f, "10:00", "11:00")
				c.BusinessID = other.ID
				return c
			},
			want:   availability.ErrInvalidReference,
			reason: "invalid_reference",
		},
		{
			name: "inactive service",
			setup: func(f *fixture) availability.Candidate {
				f.service.IsActive = false
				f.store.Services().Add(f.service)
				return candidate(f, "10:00", "11:00")
			},
			want:   availability.ErrInvalidReference,
			reason: "invalid_reference",
		},
		{
			name: "in the past",
			setup: func(f *fixture) availability.Candidate {
				f.clock.now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
				return candidate(f, "10:00", "11:00")
			},
			want:   availability.ErrInThePast,
			reason: "in_the_past",
		},
		{
			name: "end before start",
			setup: func(f *fixture) availability.Candidate {
				return candidate(f, "11:00", "10:00")
			},
			want:   availability.ErrNonPositiveDuration,
			reason: "non_positive_duration",
		},
		{
			name: "duration mismatch",
			setup: func(f *fixture) availability.Candidate {
				return candidate(f, "10:00", "10:30")
			},
			want:   availability.ErrDurationMismatch,
			reason: "duration_mismatch",
		},
		{
			name: "closed day",
			setup: func(f *fixture) availability.Candidate {
				c := candidate(f, "10:00", "11:00")
				c.Date = monday.AddDate(0, 0, 1)
				return c
			},
			want:   availability.ErrBusinessClosed,
			reason: "business_closed",
		},
		{
			name: "outside business hours",
			setup: func(f *fixture) availability.Candidate {
				return candidate(f, "16:30", "17:30")
			},
			want:   availability.ErrOutsideBusinessHours,
			reason: "outside_business_hours",
		},
		{
			name: "conflict with another service",
			setup: func(f *fixture) availability.Candidate {
				f.addBooking(f.service.ID+1000, monday, "10:30", "11:30", domain.StatusPending)
				return candidate(f, "10:00", "11:00")
			},
			want:   availability.ErrTimeConflict,
			reason: "time_conflict",
		},
		{
			name: "zero capacity service",
			setup: func(f *fixture) availability.Candidate {
				f.service.MaxBookingsPerSlot = 0
				f.store.Services().Add(f.service)
				return candidate(f, "10:00", "11:00")
			},
			want:   availability.ErrSlotFullyBooked,
			reason: "slot_fully_booked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.setHours(t, domain.Monday, "09:00", "17:00")

			_, err := f.validator.ValidateAndPrepare(ctx, tt.setup(f))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			reason, ok := availability.ReasonOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}

	t.Run("cancelled bookings do not conflict", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")
		f.addBooking(f.service.ID, monday, "10:00", "11:00", domain.StatusCancelled)
		f.addBooking(f.service.ID, monday, "10:00", "11:00", domain.StatusNoShow)

		_, err := f.validator.ValidateAndPrepare(ctx, candidate(f, "10:00", "11:00"))
		assert.NoError(t, err)
	})

	t.Run("excluded booking does not conflict with itself", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")
		existing := f.addBooking(f.service.ID, monday, "10:00", "11:00", domain.StatusConfirmed)

		c := candidate(f, "10:30", "11:30")
		_, err := f.validator.ValidateAndPrepare(ctx, c)
		assert.ErrorIs(t, err, availability.ErrTimeConflict)

		c.ExcludingBookingID = ptr.Ptr(existing.ID)
		_, err = f.validator.ValidateAndPrepare(ctx, c)
		assert.NoError(t, err)
	})

	t.Run("store failure is not a rejection", func(t *testing.T) {
		f := newFixture(t)
		f.setHours(t, domain.Monday, "09:00", "17:00")
		f.store.FailWith(errors.New("connection reset"))

		_, err := f.validator.ValidateAndPrepare(ctx, candidate(f, "10:00", "11:00"))
		assert.ErrorIs(t, err, availability.ErrInternal)
		_, isRejection := availability.ReasonOf(err)
		assert.False(t, isRejection)
	})
}

func TestGeneratedSlotsPassValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.service.MaxBookingsPerSlot = 2
	f.store.Services().Add(f.service)
	f.setHours(t, domain.Monday, "08:00", "18:00")

	slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		require.Positive(t, slot.AvailableSpots)
		_, err := f.validator.ValidateAndPrepare(ctx, availability.Candidate{
			BusinessID: f.business.ID,
			ServiceID:  f.service.ID,
			Date:       monday,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
		})
		assert.NoError(t, err, "slot %s", slot.StartTime)
	}
}

// Вместимость считается по услуге, а конфликт по всей компании:
// слот другой услуги показывается свободным, но бронь отклоняется.
func TestSlotAdvertisedButRejectedAcrossServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setHours(t, domain.Monday, "09:00", "12:00")

	other := f.store.Services().Add(&domain.Service{
		BusinessID:         f.business.ID,
		Name:               "Beard trim",
		DurationMinutes:    60,
		MaxBookingsPerSlot: 1,
		IsActive:           true,
	})
	f.addBooking(other.ID, monday, "09:00", "10:00", domain.StatusConfirmed)

	slots, err := f.generator.GenerateSlots(ctx, f.business, f.service, monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, 1, slots[0].AvailableSpots)

	_, err = f.validator.ValidateAndPrepare(ctx, availability.Candidate{
		BusinessID: f.business.ID,
		ServiceID:  f.service.ID,
		Date:       monday,
		StartTime:  slots[0].StartTime,
		EndTime:    slots[0].EndTime,
	})
	assert.ErrorIs(t, err, availability.ErrTimeConflict)
}
