package get_available_dates_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/internal/usecase/get_available_dates"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/metrics"
	"github.com/rings-s/booking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestExecute(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	business := store.Businesses().Add(&domain.Business{Name: "Clinic", IsActive: true})
	service := store.Services().Add(&domain.Service{
		BusinessID:         business.ID,
		DurationMinutes:    30,
		MaxBookingsPerSlot: 1,
		IsActive:           true,
	})
	for _, wd := range []domain.Weekday{domain.Tuesday, domain.Thursday} {
		require.NoError(t, store.Hours().Upsert(ctx, &domain.BusinessHours{
			BusinessID:  business.ID,
			Weekday:     wd,
			OpeningTime: types.MustTimeString("10:00"),
			ClosingTime: types.MustTimeString("11:00"),
		}))
	}

	// воскресенье 2025-03-09
	clock := fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	generator := availability.NewGenerator(availability.NewHoursResolver(store.Hours()), store.Bookings(), clock, time.Hour)
	var m *metrics.Metrics
	uc := get_available_dates.NewUseCase(store.Businesses(), store.Services(), availability.NewScanner(generator), m, clock, logger.NewNop(), 90, 365)

	resp, err := uc.Execute(ctx, &get_available_dates.Request{
		BusinessID: business.ID,
		ServiceID:  service.ID,
		DaysAhead:  7,
	})
	require.NoError(t, err)
	require.Len(t, resp.Dates, 2)
	assert.Equal(t, "Tuesday", resp.Dates[0].Weekday)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
	assert.Equal(t, 2, resp.Dates[0].SlotsCount)
	assert.Equal(t, "Thursday", resp.Dates[1].Weekday)

	t.Run("default horizon", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &get_available_dates.Request{BusinessID: business.ID, ServiceID: service.ID})
		require.NoError(t, err)
		assert.Equal(t, 90, resp.DaysAhead)
		assert.NotEmpty(t, resp.Dates)
	})

	t.Run("horizon out of range", func(t *testing.T) {
		for _, days := range []int{-1, 366} {
			_, err := uc.Execute(ctx, &get_available_dates.Request{BusinessID: business.ID, ServiceID: service.ID, DaysAhead: days})
			assert.ErrorIs(t, err, get_available_dates.ErrInvalidInput)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := uc.Execute(ctx, &get_available_dates.Request{BusinessID: business.ID, ServiceID: 404})
		assert.ErrorIs(t, err, get_available_dates.ErrServiceNotFound)
	})
}
