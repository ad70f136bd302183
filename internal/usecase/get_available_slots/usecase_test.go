package get_available_slots_test

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
	"github.com/rings-s/booking/internal/usecase/get_available_slots"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/metrics"
	"github.com/rings-s/booking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func setup(t *testing.T) (*get_available_slots.UseCase, *memory.Store, *domain.Business, *domain.Service) {
	t.Helper()

	store := memory.NewStore()
	business := store.Businesses().Add(&domain.Business{Name: "Studio", IsActive: true})
	service := store.Services().Add(&domain.Service{
		BusinessID:         business.ID,
		Name:               "Massage",
		DurationMinutes:    60,
		BufferTimeMinutes:  15,
		MaxBookingsPerSlot: 2,
		IsActive:           true,
	})
	require.NoError(t, store.Hours().Upsert(context.Background(), &domain.BusinessHours{
		BusinessID:  business.ID,
		Weekday:     domain.Monday,
		OpeningTime: types.MustTimeString("09:00"),
		ClosingTime: types.MustTimeString("12:00"),
	}))

	clock := fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	generator := availability.NewGenerator(availability.NewHoursResolver(store.Hours()), store.Bookings(), clock, time.Hour)

	var m *metrics.Metrics
	uc := get_available_slots.NewUseCase(store.Businesses(), store.Services(), generator, m, logger.NewNop())
	return uc, store, business, service
}

func TestExecute(t *testing.T) {
	uc, store, business, service := setup(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	store.Bookings().Add(&domain.Booking{
		BusinessID:  business.ID,
		ServiceID:   service.ID,
		BookingDate: monday,
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      domain.StatusConfirmed,
	})

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: business.ID,
		ServiceID:  service.ID,
		Date:       monday,
	})
	require.NoError(t, err)
	assert.Equal(t, business.ID, resp.BusinessID)
	assert.Equal(t, []get_available_slots.Slot{
		{StartTime: "09:00", EndTime: "10:00", AvailableSpots: 1},
		{StartTime: "10:15", EndTime: "11:15", AvailableSpots: 2},
	}, resp.Slots)
}

func TestExecuteErrors(t *testing.T) {
	uc, store, business, service := setup(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	other := store.Businesses().Add(&domain.Business{Name: "Other", IsActive: true})
	inactive := store.Businesses().Add(&domain.Business{Name: "Closed down"})

	tests := []struct {
		name string
		req  *get_available_slots.Request
		want error
	}{
		{"missing business id", &get_available_slots.Request{ServiceID: service.ID, Date: monday}, get_available_slots.ErrInvalidInput},
		{"missing date", &get_available_slots.Request{BusinessID: business.ID, ServiceID: service.ID}, get_available_slots.ErrInvalidInput},
		{"unknown business", &get_available_slots.Request{BusinessID: 999, ServiceID: service.ID, Date: monday}, get_available_slots.ErrBusinessNotFound},
		{"inactive business", &get_available_slots.Request{BusinessID: inactive.ID, ServiceID: service.ID, Date: monday}, get_available_slots.ErrBusinessNotFound},
		{"unknown service", &get_available_slots.Request{BusinessID: business.ID, ServiceID: 999, Date: monday}, get_available_slots.ErrServiceNotFound},
		{"foreign service", &get_available_slots.Request{BusinessID: other.ID, ServiceID: service.ID, Date: monday}, get_available_slots.ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		store.FailWith(errors.New("boom"))
		defer store.FailWith(nil)

		_, err := uc.Execute(context.Background(), &get_available_slots.Request{BusinessID: business.ID, ServiceID: service.ID, Date: monday})
		assert.ErrorIs(t, err, get_available_slots.ErrInternal)
	})
}

func TestExecuteClosedDay(t *testing.T) {
	uc, _, business, service := setup(t)

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: business.ID,
		ServiceID:  service.ID,
		Date:       time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}
