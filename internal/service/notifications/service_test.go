package notifications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/internal/service/notifications"
	"github.com/rings-s/booking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newService(store *memory.Store) *notifications.Service {
	clock := fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	return notifications.NewService(store.Notifications(), store.Outbox(), store.TxManager(), clock, logger.NewNop())
}

func TestNotify(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	n := &domain.Notification{UserID: 7, Title: "Booking confirmed", Type: domain.NotificationBookingConfirmed}
	require.NoError(t, svc.Notify(ctx, n))
	assert.NotZero(t, n.ID)

	events := store.Outbox().Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventNotificationCreated, events[0].EventType)
	assert.JSONEq(t,
		`{"notification_id":1,"user_id":7,"type":"booking_confirmed","title":"Booking confirmed","message":""}`,
		string(events[0].Payload))

	t.Run("default type", func(t *testing.T) {
		n := &domain.Notification{UserID: 7, Title: "Hello"}
		require.NoError(t, svc.Notify(ctx, n))
		assert.Equal(t, domain.NotificationGeneral, n.Type)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, svc.Notify(ctx, &domain.Notification{Title: "x"}), notifications.ErrInvalidInput)
	})

	t.Run("failure rolls back", func(t *testing.T) {
		store.FailWith(errors.New("boom"))
		err := svc.Notify(ctx, &domain.Notification{UserID: 7, Title: "lost"})
		store.FailWith(nil)

		assert.ErrorIs(t, err, notifications.ErrInternal)
		assert.Len(t, store.Outbox().Events(), 2)
	})
}

func TestReadFlow(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	first := &domain.Notification{UserID: 1, Title: "first"}
	require.NoError(t, svc.Notify(ctx, first))
	require.NoError(t, svc.Notify(ctx, &domain.Notification{UserID: 1, Title: "second"}))
	require.NoError(t, svc.Notify(ctx, &domain.Notification{UserID: 2, Title: "foreign"}))

	list, err := svc.List(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkRead(ctx, first.ID, 1))
	require.NoError(t, svc.MarkRead(ctx, first.ID, 1))
	assert.ErrorIs(t, svc.MarkRead(ctx, first.ID, 2), notifications.ErrNotificationNotFound)

	unread, err := svc.List(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "second", unread.Notifications[0].Title)
	assert.Equal(t, 1, unread.UnreadCount)

	all, err := svc.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.Affected)

	cleared, err := svc.ClearRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared.Affected)

	list, err = svc.List(ctx, 1, false)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)

	other, err := svc.List(ctx, 2, false)
	require.NoError(t, err)
	assert.Len(t, other.Notifications, 1)
}
