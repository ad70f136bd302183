package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/config"
	bookingRepo "github.com/rings-s/booking/internal/infra/storage/booking"
	businessRepo "github.com/rings-s/booking/internal/infra/storage/business"
	customerRepo "github.com/rings-s/booking/internal/infra/storage/customer"
	hoursRepo "github.com/rings-s/booking/internal/infra/storage/hours"
	"github.com/rings-s/booking/internal/infra/storage/memory"
	notificationRepo "github.com/rings-s/booking/internal/infra/storage/notification"
	outboxRepo "github.com/rings-s/booking/internal/infra/storage/outbox"
	reviewRepo "github.com/rings-s/booking/internal/infra/storage/review"
	serviceRepo "github.com/rings-s/booking/internal/infra/storage/service"
	"github.com/rings-s/booking/internal/infra/outbox"
	bookingsService "github.com/rings-s/booking/internal/service/bookings"
	businessHoursService "github.com/rings-s/booking/internal/service/businesshours"
	dashboardService "github.com/rings-s/booking/internal/service/dashboard"
	notificationsService "github.com/rings-s/booking/internal/service/notifications"
	reviewsService "github.com/rings-s/booking/internal/service/reviews"
	createBookingUC "github.com/rings-s/booking/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/rings-s/booking/internal/usecase/reschedule_booking"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/metrics"
	"github.com/rings-s/booking/pkg/simpletxmanager"
	"github.com/rings-s/booking/pkg/txmanager"
)

// Интерфейсы хранилища, общие для Postgres и in-memory реализаций

type bookingStore interface {
	availability.BookingLister
	createBookingUC.BookingRepository
	rescheduleBookingUC.BookingRepository
	bookingsService.BookingRepository
	dashboardService.BookingStats
	reviewsService.BookingRepository
}

type hoursStore interface {
	availability.HoursRepository
	businessHoursService.HoursRepository
}

type customerStore interface {
	createBookingUC.CustomerRepository
	bookingsService.CustomerRepository
}

type reviewStore interface {
	reviewsService.ReviewRepository
	dashboardService.RatingStats
}

type outboxStore interface {
	outbox.Store
	createBookingUC.OutboxRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	bookings      bookingStore
	businesses    availability.BusinessRepository
	services      availability.ServiceRepository
	hours         hoursStore
	customers     customerStore
	reviews       reviewStore
	notifications notificationsService.NotificationRepository
	outbox        outboxStore
	tx            txManager

	close func()
}

// openStorage подключает Postgres или создает хранилище в памяти
func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.NewStore()
		return &storage{
			bookings:      store.Bookings(),
			businesses:    store.Businesses(),
			services:      store.Services(),
			hours:         store.Hours(),
			customers:     store.Customers(),
			reviews:       store.Reviews(),
			notifications: store.Notifications(),
			outbox:        store.Outbox(),
			tx:            store.TxManager(),
			close:         func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		executor dbmetrics.DBExecutor = db
		tx       txManager
	)
	stopPoolStats := make(chan struct{})

	if cfg.Metrics.Enabled {
		wrapped := dbmetrics.WrapWithDefault(db, m, stopPoolStats)
		executor = wrapped
		tx = txmanager.NewTransactionManager(wrapped)
		log.Info("Database metrics collection started")
	} else {
		tx = simpletxmanager.NewTransactionManager(db)
	}

	return &storage{
		bookings:      bookingRepo.NewRepository(executor),
		businesses:    businessRepo.NewRepository(executor),
		services:      serviceRepo.NewRepository(executor),
		hours:         hoursRepo.NewRepository(executor),
		customers:     customerRepo.NewRepository(executor),
		reviews:       reviewRepo.NewRepository(executor),
		notifications: notificationRepo.NewRepository(executor),
		outbox:        outboxRepo.NewRepository(executor),
		tx:            tx,
		close: func() {
			close(stopPoolStats)
			db.Close()
		},
	}, nil
}
