package bookings_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/export"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/internal/service/bookings"
	"github.com/rings-s/booking/internal/service/bookings/models"
	"github.com/rings-s/booking/internal/service/notifications"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const (
	ownerID    = 100
	customerID = 7
	strangerID = 55
)

type fixture struct {
	store    *memory.Store
	svc      *bookings.Service
	business *domain.Business
	today    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	store.SetClock(clock.Now)

	notifier := notifications.NewService(store.Notifications(), store.Outbox(), store.TxManager(), clock, logger.NewNop())
	svc := bookings.NewService(
		store.Bookings(),
		store.Businesses(),
		store.Customers(),
		store.Outbox(),
		notifier,
		export.NewXLSXExporter(),
		store.TxManager(),
		clock,
		logger.NewNop(),
	)

	return &fixture{
		store:    store,
		svc:      svc,
		business: store.Businesses().Add(&domain.Business{OwnerID: ownerID, Name: "Studio", IsActive: true}),
		today:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) add(status domain.BookingStatus, daysFromToday int, paid bool) *domain.Booking {
	return f.store.Bookings().Add(&domain.Booking{
		BusinessID:   f.business.ID,
		ServiceID:    1,
		CustomerID:   customerID,
		BookingDate:  f.today.AddDate(0, 0, daysFromToday),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       status,
		TotalPrice:   40,
		IsPaid:       paid,
		ServiceName:  "Haircut",
		BusinessName: "Studio",
	})
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	b := f.add(domain.StatusPending, 1, false)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, b.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.BookingDate)

	_, err = f.svc.GetByID(ctx, b.ID, ownerID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, strangerID)
	assert.ErrorIs(t, err, bookings.ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 999, customerID)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestGetCustomerBookings(t *testing.T) {
	f := newFixture(t)
	f.add(domain.StatusConfirmed, 2, false)
	f.add(domain.StatusCompleted, -3, true)
	ctx := context.Background()

	upcoming, err := f.svc.GetCustomerBookings(ctx, customerID, "upcoming")
	require.NoError(t, err)
	assert.Equal(t, 1, upcoming.Count)
	assert.Equal(t, "confirmed", upcoming.Bookings[0].Status)

	history, err := f.svc.GetCustomerBookings(ctx, customerID, "history")
	require.NoError(t, err)
	assert.Equal(t, 1, history.Count)
	assert.Equal(t, "completed", history.Bookings[0].Status)

	all, err := f.svc.GetCustomerBookings(ctx, customerID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Count)

	_, err = f.svc.GetCustomerBookings(ctx, customerID, "someday")
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestGetBusinessBookings(t *testing.T) {
	f := newFixture(t)
	f.add(domain.StatusConfirmed, 1, false)
	f.add(domain.StatusPending, 1, false)
	ctx := context.Background()

	resp, err := f.svc.GetBusinessBookings(ctx, &models.GetBusinessBookingsRequest{
		UserID:     ownerID,
		BusinessID: f.business.ID,
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	_, err = f.svc.GetBusinessBookings(ctx, &models.GetBusinessBookingsRequest{UserID: customerID, BusinessID: f.business.ID})
	assert.ErrorIs(t, err, bookings.ErrAccessDenied)

	_, err = f.svc.GetBusinessBookings(ctx, &models.GetBusinessBookingsRequest{UserID: ownerID, BusinessID: f.business.ID, Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	_, err = f.svc.GetBusinessBookings(ctx, &models.GetBusinessBookingsRequest{UserID: ownerID, BusinessID: 404})
	assert.ErrorIs(t, err, bookings.ErrBusinessNotFound)
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm then complete", func(t *testing.T) {
		f := newFixture(t)
		b := f.add(domain.StatusPending, 1, true)

		_, err := f.svc.Confirm(ctx, b.ID, customerID)
		assert.ErrorIs(t, err, bookings.ErrAccessDenied)

		resp, err := f.svc.Confirm(ctx, b.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)

		_, err = f.svc.Confirm(ctx, b.ID, ownerID)
		assert.ErrorIs(t, err, bookings.ErrInvalidTransition)

		resp, err = f.svc.Complete(ctx, b.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)

		stats, err := f.store.Customers().GetByUserID(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, 40.0, stats.TotalSpent)

		inbox, err := f.store.Notifications().ListByUser(ctx, customerID, false)
		require.NoError(t, err)
		types := make([]domain.NotificationType, 0, len(inbox))
		for _, n := range inbox {
			types = append(types, n.Type)
		}
		assert.ElementsMatch(t, []domain.NotificationType{
			domain.NotificationBookingConfirmed,
			domain.NotificationGeneral,
			domain.NotificationReviewRequest,
		}, types)

		var statusEvents int
		for _, e := range f.store.Outbox().Events() {
			if e.EventType == domain.EventBookingStatusChanged {
				statusEvents++
			}
		}
		assert.Equal(t, 2, statusEvents)

		_, err = f.svc.Cancel(ctx, b.ID, customerID)
		assert.ErrorIs(t, err, bookings.ErrInvalidTransition)
	})

	t.Run("customer cancels paid booking", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Customers().AddSpent(ctx, customerID, 100))
		b := f.add(domain.StatusConfirmed, 1, true)

		resp, err := f.svc.Cancel(ctx, b.ID, customerID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)

		stats, err := f.store.Customers().GetByUserID(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, 60.0, stats.TotalSpent)

		ownerInbox, err := f.store.Notifications().ListByUser(ctx, ownerID, false)
		require.NoError(t, err)
		assert.Len(t, ownerInbox, 1)

		events := f.store.Outbox().Events()
		assert.JSONEq(t, `{
			"booking_id": `+itoa(b.ID)+`,
			"business_id": `+itoa(f.business.ID)+`,
			"service_id": 1,
			"customer_id": 7,
			"date": "2025-03-10",
			"start_time": "10:00",
			"end_time": "11:00",
			"status": "cancelled",
			"previous_status": "confirmed"
		}`, string(events[len(events)-1].Payload))
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)
		b := f.add(domain.StatusPending, 1, false)

		_, err := f.svc.Cancel(ctx, b.ID, strangerID)
		assert.ErrorIs(t, err, bookings.ErrAccessDenied)
	})

	t.Run("update status dispatch", func(t *testing.T) {
		f := newFixture(t)
		b := f.add(domain.StatusConfirmed, 1, false)

		_, err := f.svc.UpdateStatus(ctx, b.ID, ownerID, "pending")
		assert.ErrorIs(t, err, bookings.ErrInvalidTransition)

		_, err = f.svc.UpdateStatus(ctx, b.ID, ownerID, "unknown")
		assert.ErrorIs(t, err, bookings.ErrInvalidInput)

		resp, err := f.svc.UpdateStatus(ctx, b.ID, ownerID, "no_show")
		require.NoError(t, err)
		assert.Equal(t, "no_show", resp.Status)
	})
}

func TestExportBusinessBookings(t *testing.T) {
	f := newFixture(t)
	f.add(domain.StatusConfirmed, 1, false)
	ctx := context.Background()

	var buf bytes.Buffer
	err := f.svc.ExportBusinessBookings(ctx, &models.ExportRequest{
		UserID:     ownerID,
		BusinessID: f.business.ID,
		From:       f.today,
		To:         f.today.AddDate(0, 0, 7),
	}, &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())

	err = f.svc.ExportBusinessBookings(ctx, &models.ExportRequest{
		UserID:     ownerID,
		BusinessID: f.business.ID,
		From:       f.today,
		To:         f.today.AddDate(0, 0, -1),
	}, &buf)
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
