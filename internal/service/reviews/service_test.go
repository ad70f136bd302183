package reviews_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/internal/service/notifications"
	"github.com/rings-s/booking/internal/service/reviews"
	"github.com/rings-s/booking/internal/service/reviews/models"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const (
	ownerID    = 100
	customerID = 7
)

func setup(t *testing.T) (*reviews.Service, *memory.Store, *domain.Business) {
	t.Helper()

	store := memory.NewStore()
	clock := fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)}
	store.SetClock(clock.Now)

	notifier := notifications.NewService(store.Notifications(), store.Outbox(), store.TxManager(), clock, logger.NewNop())
	svc := reviews.NewService(
		store.Reviews(),
		store.Bookings(),
		store.Businesses(),
		store.Outbox(),
		notifier,
		store.TxManager(),
		clock,
		logger.NewNop(),
	)
	business := store.Businesses().Add(&domain.Business{OwnerID: ownerID, Name: "Studio", IsActive: true})
	return svc, store, business
}

func TestCreate(t *testing.T) {
	svc, store, business := setup(t)
	ctx := context.Background()

	completed := store.Bookings().Add(&domain.Booking{BusinessID: business.ID, CustomerID: customerID, Status: domain.StatusCompleted})
	pending := store.Bookings().Add(&domain.Booking{BusinessID: business.ID, CustomerID: customerID, Status: domain.StatusPending})
	foreign := store.Bookings().Add(&domain.Booking{BusinessID: business.ID, CustomerID: 8, Status: domain.StatusCompleted})

	verified, err := svc.Create(ctx, &models.CreateReviewRequest{
		UserID: customerID, BusinessID: business.ID, BookingID: ptr.Ptr(completed.ID), Rating: 5, Comment: " Great ",
	})
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, "Great", verified.Comment)

	unverified, err := svc.Create(ctx, &models.CreateReviewRequest{
		UserID: customerID, BusinessID: business.ID, BookingID: ptr.Ptr(pending.ID), Rating: 3,
	})
	require.NoError(t, err)
	assert.False(t, unverified.IsVerified)

	anonymous, err := svc.Create(ctx, &models.CreateReviewRequest{UserID: customerID, BusinessID: business.ID, Rating: 4})
	require.NoError(t, err)
	assert.False(t, anonymous.IsVerified)

	_, err = svc.Create(ctx, &models.CreateReviewRequest{
		UserID: customerID, BusinessID: business.ID, BookingID: ptr.Ptr(completed.ID), Rating: 1,
	})
	assert.ErrorIs(t, err, reviews.ErrAlreadyReviewed)

	_, err = svc.Create(ctx, &models.CreateReviewRequest{
		UserID: customerID, BusinessID: business.ID, BookingID: ptr.Ptr(foreign.ID), Rating: 1,
	})
	assert.ErrorIs(t, err, reviews.ErrInvalidInput)

	for _, rating := range []int{0, 6} {
		_, err = svc.Create(ctx, &models.CreateReviewRequest{UserID: customerID, BusinessID: business.ID, Rating: rating})
		assert.ErrorIs(t, err, reviews.ErrInvalidInput)
	}

	_, err = svc.Create(ctx, &models.CreateReviewRequest{UserID: customerID, BusinessID: business.ID, Rating: 5, Comment: strings.Repeat("a", 2001)})
	assert.ErrorIs(t, err, reviews.ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateReviewRequest{UserID: customerID, BusinessID: 404, Rating: 5})
	assert.ErrorIs(t, err, reviews.ErrBusinessNotFound)

	ownerInbox, err := store.Notifications().ListByUser(ctx, ownerID, false)
	require.NoError(t, err)
	assert.Len(t, ownerInbox, 3)

	var reviewEvents int
	for _, e := range store.Outbox().Events() {
		if e.EventType == domain.EventReviewCreated {
			reviewEvents++
		}
	}
	assert.Equal(t, 3, reviewEvents)
}

func TestListRespondFeature(t *testing.T) {
	svc, store, business := setup(t)
	ctx := context.Background()

	low, err := svc.Create(ctx, &models.CreateReviewRequest{UserID: customerID, BusinessID: business.ID, Rating: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateReviewRequest{UserID: 8, BusinessID: business.ID, Rating: 5})
	require.NoError(t, err)

	list, err := svc.ListByBusiness(ctx, business.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 3.5, list.AverageRating)

	high, err := svc.ListByBusiness(ctx, business.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, high.Count)

	_, err = svc.ListByBusiness(ctx, business.ID, 9)
	assert.ErrorIs(t, err, reviews.ErrInvalidInput)

	featured, err := svc.MarkFeatured(ctx, low.ID, ownerID, true)
	require.NoError(t, err)
	assert.True(t, featured.IsFeatured)

	list, err = svc.ListByBusiness(ctx, business.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, low.ID, list.Reviews[0].ID)

	_, err = svc.MarkFeatured(ctx, low.ID, customerID, true)
	assert.ErrorIs(t, err, reviews.ErrAccessDenied)

	responded, err := svc.Respond(ctx, low.ID, ownerID, "Sorry, we will do better")
	require.NoError(t, err)
	require.NotNil(t, responded.BusinessResponse)
	assert.Equal(t, "Sorry, we will do better", *responded.BusinessResponse)

	inbox, err := store.Notifications().ListByUser(ctx, customerID, false)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	_, err = svc.Respond(ctx, low.ID, ownerID, "   ")
	assert.ErrorIs(t, err, reviews.ErrInvalidInput)

	_, err = svc.Respond(ctx, 999, ownerID, "hi")
	assert.ErrorIs(t, err, reviews.ErrReviewNotFound)
}
