package create_booking_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
	bookingstorage "github.com/rings-s/booking/internal/infra/storage/booking"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	"github.com/rings-s/booking/internal/service/notifications"
	"github.com/rings-s/booking/internal/usecase/create_booking"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/ptr"
	"github.com/rings-s/booking/pkg/txmanager"
	"github.com/rings-s/booking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type users map[int64]string

func (u users) DisplayName(_ context.Context, id int64) string {
	if name, ok := u[id]; ok {
		return name
	}
	return "Customer"
}

type recordingMetrics struct {
	created  map[string]int
	rejected map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{created: map[string]int{}, rejected: map[string]int{}}
}

func (m *recordingMetrics) IncBookingCreated(status string)  { m.created[status]++ }
func (m *recordingMetrics) IncBookingRejected(reason string) { m.rejected[reason]++ }

type fixture struct {
	store    *memory.Store
	clock    fixedClock
	metrics  *recordingMetrics
	business *domain.Business
	service  *domain.Service
	monday   time.Time
}

const ownerID = 100

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   memory.NewStore(),
		clock:   fixedClock{now: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)},
		metrics: newRecordingMetrics(),
		monday:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	f.store.SetClock(f.clock.Now)

	f.business = f.store.Businesses().Add(&domain.Business{
		OwnerID:               ownerID,
		Name:                  "Studio",
		IsActive:              true,
		AcceptsOnlineBookings: true,
	})
	f.service = f.store.Services().Add(&domain.Service{
		BusinessID:         f.business.ID,
		Name:               "Massage",
		Price:              50,
		DurationMinutes:    60,
		MaxBookingsPerSlot: 1,
		IsActive:           true,
	})
	require.NoError(t, f.store.Hours().Upsert(context.Background(), &domain.BusinessHours{
		BusinessID:  f.business.ID,
		Weekday:     domain.Monday,
		OpeningTime: types.MustTimeString("09:00"),
		ClosingTime: types.MustTimeString("18:00"),
	}))

	return f
}

func (f *fixture) useCase(validator create_booking.Validator) *create_booking.UseCase {
	if validator == nil {
		validator = availability.NewValidator(
			f.store.Businesses(),
			f.store.Services(),
			availability.NewHoursResolver(f.store.Hours()),
			f.store.Bookings(),
			f.clock,
			domain.DurationToleranceMinutes,
		)
	}
	notifier := notifications.NewService(f.store.Notifications(), f.store.Outbox(), f.store.TxManager(), f.clock, logger.NewNop())

	return create_booking.NewUseCase(
		f.store.Bookings(),
		f.store.Customers(),
		f.store.Outbox(),
		validator,
		users{7: "Anna Smith"},
		notifier,
		f.store.TxManager(),
		f.metrics,
		f.clock,
		logger.NewNop(),
	)
}

func (f *fixture) request(start, end string) *create_booking.Request {
	return &create_booking.Request{
		CustomerID: 7,
		BusinessID: f.business.ID,
		ServiceID:  f.service.ID,
		Date:       f.monday,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
		Notes:      ptr.Ptr("first visit"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.useCase(nil).Execute(ctx, f.request("10:00", "11:00"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 50.0, resp.TotalPrice)
	assert.Equal(t, "Massage", resp.ServiceName)
	assert.Equal(t, "Studio", resp.BusinessName)
	assert.Equal(t, "first visit", *resp.Notes)
	assert.Equal(t, 1, f.metrics.created["pending"])

	stats, err := f.store.Customers().GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBookings)

	ownerInbox, err := f.store.Notifications().ListByUser(ctx, ownerID, false)
	require.NoError(t, err)
	require.Len(t, ownerInbox, 1)
	assert.Equal(t, "Anna Smith booked Massage on 2025-03-10 at 10:00", ownerInbox[0].Message)

	customerInbox, err := f.store.Notifications().ListByUser(ctx, 7, false)
	require.NoError(t, err)
	require.Len(t, customerInbox, 1)
	assert.Equal(t, domain.NotificationGeneral, customerInbox[0].Type)

	events := f.store.Outbox().Events()
	require.Len(t, events, 3)
	last := events[2]
	assert.Equal(t, domain.EventBookingCreated, last.EventType)
	assert.JSONEq(t, `{
		"booking_id": `+itoa(resp.ID)+`,
		"business_id": `+itoa(f.business.ID)+`,
		"service_id": `+itoa(f.service.ID)+`,
		"customer_id": 7,
		"date": "2025-03-10",
		"start_time": "10:00",
		"end_time": "11:00",
		"status": "pending"
	}`, string(last.Payload))
}

func TestExecute_AutoConfirm(t *testing.T) {
	f := newFixture(t)
	f.business.AutoConfirmBookings = true
	f.store.Businesses().Add(f.business)

	resp, err := f.useCase(nil).Execute(context.Background(), f.request("10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	inbox, err := f.store.Notifications().ListByUser(context.Background(), 7, false)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotificationBookingConfirmed, inbox[0].Type)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("time conflict rolls back", func(t *testing.T) {
		f := newFixture(t)
		uc := f.useCase(nil)

		_, err := uc.Execute(context.Background(), f.request("10:00", "11:00"))
		require.NoError(t, err)
		eventsBefore := len(f.store.Outbox().Events())

		_, err = uc.Execute(context.Background(), f.request("10:30", "11:30"))
		assert.ErrorIs(t, err, availability.ErrTimeConflict)
		assert.Equal(t, 1, f.metrics.rejected["time_conflict"])
		assert.Len(t, f.store.Outbox().Events(), eventsBefore)

		stats, err := f.store.Customers().GetByUserID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalBookings)
	})

	t.Run("outside business hours", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase(nil).Execute(context.Background(), f.request("17:30", "18:30"))
		reason, ok := availability.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, "outside_business_hours", reason)
	})

	t.Run("online booking disabled", func(t *testing.T) {
		f := newFixture(t)
		f.business.AcceptsOnlineBookings = false
		f.store.Businesses().Add(f.business)

		_, err := f.useCase(nil).Execute(context.Background(), f.request("10:00", "11:00"))
		assert.ErrorIs(t, err, create_booking.ErrOnlineBookingDisabled)
		assert.Equal(t, 1, f.metrics.rejected["online_booking_disabled"])
	})

	t.Run("monthly limit", func(t *testing.T) {
		f := newFixture(t)
		limit := domain.LimitsForTier(domain.TierFree).MaxMonthlyBookings
		for i := 0; i < limit; i++ {
			f.store.Bookings().Add(&domain.Booking{
				BusinessID:  f.business.ID,
				ServiceID:   f.service.ID,
				BookingDate: f.monday.AddDate(0, 0, 1),
				StartTime:   "09:00",
				EndTime:     "10:00",
				Status:      domain.StatusCancelled,
			})
		}

		_, err := f.useCase(nil).Execute(context.Background(), f.request("10:00", "11:00"))
		assert.ErrorIs(t, err, create_booking.ErrMonthlyLimitReached)
	})

	t.Run("pro tier is unlimited", func(t *testing.T) {
		f := newFixture(t)
		f.business.SubscriptionTier = domain.TierPro
		f.store.Businesses().Add(f.business)
		for i := 0; i < 60; i++ {
			f.store.Bookings().Add(&domain.Booking{BusinessID: f.business.ID, Status: domain.StatusCancelled, BookingDate: f.monday})
		}

		_, err := f.useCase(nil).Execute(context.Background(), f.request("10:00", "11:00"))
		assert.NoError(t, err)
	})

	t.Run("lost race on the unique slot", func(t *testing.T) {
		f := newFixture(t)
		f.store.Bookings().Add(&domain.Booking{
			BusinessID:  f.business.ID,
			ServiceID:   f.service.ID,
			BookingDate: f.monday,
			StartTime:   "10:00",
			EndTime:     "11:00",
			Status:      domain.StatusPending,
		})

		_, err := f.useCase(passingValidator{f}).Execute(context.Background(), f.request("10:00", "11:00"))
		assert.ErrorIs(t, err, create_booking.ErrSlotTaken)
		assert.Equal(t, 1, f.metrics.rejected["slot_taken"])
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		req := f.request("10:00", "11:00")
		req.EndTime = "25:99"

		_, err := f.useCase(nil).Execute(context.Background(), req)
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailWith(errors.New("connection reset"))

		_, err := f.useCase(nil).Execute(context.Background(), f.request("10:00", "11:00"))
		assert.ErrorIs(t, err, create_booking.ErrInternal)
		assert.Equal(t, 1, f.metrics.rejected["internal"])
	})
}

// conflictingBookings первые failures вставок падают с конфликтом сериализации
type conflictingBookings struct {
	*memory.BookingRepository
	failures int
	attempts int
}

func (r *conflictingBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.attempts++
	if r.failures > 0 {
		r.failures--
		pqErr := &pq.Error{Code: pq.ErrorCode(pgerrcode.SerializationFailure)}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingstorage.ErrExecQuery, pqErr)
	}
	return r.BookingRepository.Create(ctx, b)
}

type pgTx struct{ dbmetrics.DBExecutor }

func (pgTx) Commit() error   { return nil }
func (pgTx) Rollback() error { return nil }

type pgBeginner struct{ begun int }

func (b *pgBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return pgTx{}, nil
}

func TestExecute_RetriesStatementSerializationFailure(t *testing.T) {
	f := newFixture(t)
	bookings := &conflictingBookings{BookingRepository: f.store.Bookings(), failures: 1}
	db := &pgBeginner{}

	validator := availability.NewValidator(
		f.store.Businesses(),
		f.store.Services(),
		availability.NewHoursResolver(f.store.Hours()),
		f.store.Bookings(),
		f.clock,
		domain.DurationToleranceMinutes,
	)
	notifier := notifications.NewService(f.store.Notifications(), f.store.Outbox(), f.store.TxManager(), f.clock, logger.NewNop())
	uc := create_booking.NewUseCase(
		bookings,
		f.store.Customers(),
		f.store.Outbox(),
		validator,
		users{},
		notifier,
		txmanager.NewTransactionManager(db),
		f.metrics,
		f.clock,
		logger.NewNop(),
	)

	resp, err := uc.Execute(context.Background(), f.request("10:00", "11:00"))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, 2, bookings.attempts)
	assert.Equal(t, 2, db.begun)
	assert.Zero(t, f.metrics.rejected["internal"])

	stats, err := f.store.Customers().GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBookings)
}

// passingValidator пропускает проверки, чтобы дойти до уникального индекса
type passingValidator struct{ f *fixture }

func (v passingValidator) ValidateAndPrepare(_ context.Context, c availability.Candidate) (*availability.Prepared, error) {
	return &availability.Prepared{
		Business:        v.f.business,
		Service:         v.f.service,
		Date:            c.Date,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationMinutes: v.f.service.DurationMinutes,
	}, nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
