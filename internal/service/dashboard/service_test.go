package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const ownerID = 100

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 0.0, percentChange(5, 0))
	assert.Equal(t, 0.0, percentChange(0, 0))
	assert.Equal(t, 50.0, percentChange(150, 100))
	assert.Equal(t, -33.3, percentChange(2, 3))
}

func TestStatsAndChart(t *testing.T) {
	store := memory.NewStore()
	// 2025-03-31: текущая неделя 25..31 марта, предыдущая 18..24 марта
	clock := fixedClock{now: time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)}
	store.SetClock(clock.Now)

	business := store.Businesses().Add(&domain.Business{OwnerID: ownerID, IsActive: true})
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	add := func(d int, customer int64, status domain.BookingStatus, paid bool) {
		store.Bookings().Add(&domain.Booking{
			BusinessID:  business.ID,
			CustomerID:  customer,
			BookingDate: day(d),
			Status:      status,
			TotalPrice:  100,
			IsPaid:      paid,
		})
	}

	add(31, 1, domain.StatusConfirmed, true)
	add(30, 2, domain.StatusCompleted, true)
	add(30, 2, domain.StatusPending, false)
	add(26, 3, domain.StatusCancelled, true)
	add(20, 1, domain.StatusConfirmed, true)

	// Отзывы вне окна тоже входят в средний рейтинг
	store.SetClock(func() time.Time { return day(1) })
	_, err := store.Reviews().Create(context.Background(), &domain.Review{BusinessID: business.ID, CustomerID: 1, Rating: 5})
	require.NoError(t, err)
	store.SetClock(clock.Now)
	_, err = store.Reviews().Create(context.Background(), &domain.Review{BusinessID: business.ID, CustomerID: 2, Rating: 4})
	require.NoError(t, err)
	_, err = store.Reviews().Create(context.Background(), &domain.Review{BusinessID: business.ID, CustomerID: 3, Rating: 4})
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Reviews(), store.Businesses(), clock, logger.NewNop())
	ctx := context.Background()

	stats, err := svc.Stats(ctx, business.ID, ownerID, "week")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-25", stats.From)
	assert.Equal(t, "2025-03-31", stats.To)
	assert.Equal(t, 200.0, stats.Revenue.Value)
	assert.Equal(t, 100.0, stats.Revenue.Previous)
	assert.Equal(t, 100.0, stats.Revenue.Change)
	assert.Equal(t, 4.0, stats.Bookings.Value)
	assert.Equal(t, 300.0, stats.Bookings.Change)
	assert.Equal(t, 1.0, stats.Confirmed.Value)
	assert.Equal(t, 0.0, stats.Confirmed.Change)
	assert.Equal(t, 3.0, stats.Customers.Value)
	assert.Equal(t, 4.3, stats.AverageRating.Value)
	assert.Equal(t, 0.0, stats.AverageRating.Change)

	empty := store.Businesses().Add(&domain.Business{OwnerID: ownerID, IsActive: true})
	store.Bookings().Add(&domain.Booking{BusinessID: empty.ID, CustomerID: 9, BookingDate: day(31), Status: domain.StatusConfirmed, TotalPrice: 40, IsPaid: true})
	fresh, err := svc.Stats(ctx, empty.ID, ownerID, "week")
	require.NoError(t, err)
	assert.Equal(t, 40.0, fresh.Revenue.Value)
	assert.Equal(t, 0.0, fresh.Revenue.Change)

	chart, err := svc.ChartData(ctx, business.ID, ownerID, "week")
	require.NoError(t, err)
	require.Len(t, chart.Points, 7)
	assert.Equal(t, "2025-03-25", chart.Points[0].Date)
	assert.Equal(t, 0, chart.Points[0].Total)
	assert.Equal(t, 1, chart.Points[1].Cancelled)
	assert.Equal(t, 2, chart.Points[5].Total)
	assert.Equal(t, 1, chart.Points[5].Pending)

	month, err := svc.ChartData(ctx, business.ID, ownerID, "")
	require.NoError(t, err)
	assert.Equal(t, "month", month.Period)
	assert.Len(t, month.Points, 30)

	_, err = svc.Stats(ctx, business.ID, ownerID, "decade")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Stats(ctx, business.ID, 1, "week")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ChartData(ctx, 404, ownerID, "week")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
