package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/rings-s/booking/internal/api/handlers/cancel_booking"
	clearReadNotificationsHandler "github.com/rings-s/booking/internal/api/handlers/clear_read_notifications"
	createBookingHandler "github.com/rings-s/booking/internal/api/handlers/create_booking"
	createReviewHandler "github.com/rings-s/booking/internal/api/handlers/create_review"
	exportBusinessBookingsHandler "github.com/rings-s/booking/internal/api/handlers/export_business_bookings"
	featureReviewHandler "github.com/rings-s/booking/internal/api/handlers/feature_review"
	getAvailableDatesHandler "github.com/rings-s/booking/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/rings-s/booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/rings-s/booking/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/rings-s/booking/internal/api/handlers/get_business_bookings"
	getBusinessChartHandler "github.com/rings-s/booking/internal/api/handlers/get_business_chart"
	getBusinessHoursHandler "github.com/rings-s/booking/internal/api/handlers/get_business_hours"
	getBusinessStatsHandler "github.com/rings-s/booking/internal/api/handlers/get_business_stats"
	getUserBookingsHandler "github.com/rings-s/booking/internal/api/handlers/get_user_bookings"
	listNotificationsHandler "github.com/rings-s/booking/internal/api/handlers/list_notifications"
	listReviewsHandler "github.com/rings-s/booking/internal/api/handlers/list_reviews"
	readAllNotificationsHandler "github.com/rings-s/booking/internal/api/handlers/read_all_notifications"
	readNotificationHandler "github.com/rings-s/booking/internal/api/handlers/read_notification"
	rescheduleBookingHandler "github.com/rings-s/booking/internal/api/handlers/reschedule_booking"
	respondReviewHandler "github.com/rings-s/booking/internal/api/handlers/respond_review"
	updateBookingStatusHandler "github.com/rings-s/booking/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/rings-s/booking/internal/api/handlers/update_business_hours"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/config"
	"github.com/rings-s/booking/internal/infra/export"
	"github.com/rings-s/booking/internal/infra/outbox"
	userServiceClient "github.com/rings-s/booking/internal/integrations/userservice"
	bookingsService "github.com/rings-s/booking/internal/service/bookings"
	businessHoursService "github.com/rings-s/booking/internal/service/businesshours"
	dashboardService "github.com/rings-s/booking/internal/service/dashboard"
	notificationsService "github.com/rings-s/booking/internal/service/notifications"
	reviewsService "github.com/rings-s/booking/internal/service/reviews"
	createBookingUC "github.com/rings-s/booking/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/rings-s/booking/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/rings-s/booking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/rings-s/booking/internal/usecase/reschedule_booking"
	"github.com/rings-s/booking/pkg/logger"
	"github.com/rings-s/booking/pkg/metrics"
	"github.com/rings-s/booking/pkg/ratelimit"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking service...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	store, err := openStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open storage (driver=%s): %v", cfg.Database.Driver, err)
	}
	defer store.close()

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	timeProvider := &availability.RealTimeProvider{Location: location}

	// Redis: общий лимитер запросов и кэш профилей пользователей
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, continuing without it: %v", cfg.Redis.Addr, err)
			rdb = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancel()
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	if rdb != nil {
		userClient.UseRedisCache(rdb, time.Duration(cfg.UserService.CacheTTL)*time.Second)
	}
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Ядро доступности
	hoursResolver := availability.NewHoursResolver(store.hours)
	generator := availability.NewGenerator(hoursResolver, store.bookings, timeProvider, cfg.Booking.LeadTime())
	scanner := availability.NewScanner(generator)
	validator := availability.NewValidator(
		store.businesses,
		store.services,
		hoursResolver,
		store.bookings,
		timeProvider,
		cfg.Booking.ToleranceMinutes,
	)

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(store.notifications, store.outbox, store.tx, timeProvider, log)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.businesses,
		store.customers,
		store.outbox,
		notificationSvc,
		export.NewXLSXExporter(),
		store.tx,
		timeProvider,
		log,
	)
	hoursSvc := businessHoursService.NewService(store.hours, hoursResolver, store.businesses, store.tx, log)
	reviewSvc := reviewsService.NewService(
		store.reviews,
		store.bookings,
		store.businesses,
		store.outbox,
		notificationSvc,
		store.tx,
		timeProvider,
		log,
	)
	dashboardSvc := dashboardService.NewService(store.bookings, store.reviews, store.businesses, timeProvider, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.businesses,
		store.services,
		generator,
		metricsCollector,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		store.businesses,
		store.services,
		scanner,
		metricsCollector,
		timeProvider,
		log,
		cfg.Booking.DefaultHorizonDays,
		cfg.Booking.MaxHorizonDays,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.customers,
		store.outbox,
		validator,
		userClient,
		notificationSvc,
		store.tx,
		metricsCollector,
		timeProvider,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		store.bookings,
		store.businesses,
		store.outbox,
		validator,
		notificationSvc,
		store.tx,
		log,
	)

	// Публикация outbox в Kafka
	publisher := outbox.NewPublisher(
		store.outbox,
		outbox.NewWriter(cfg.Kafka.Brokers),
		store.tx,
		log,
		outbox.Config{
			PollEvery:   time.Duration(cfg.Kafka.PollEvery) * time.Millisecond,
			BatchSize:   cfg.Kafka.BatchSize,
			TopicPrefix: cfg.Kafka.TopicPrefix,
			ClaimRows:   cfg.Database.Driver == config.StorageDriverPostgres,
		},
	)
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		publisher.Run(publisherCtx)
	}()

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	exportBusinessBookings := exportBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	getBusinessStats := getBusinessStatsHandler.NewHandler(dashboardSvc, log)
	getBusinessChart := getBusinessChartHandler.NewHandler(dashboardSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	listReviews := listReviewsHandler.NewHandler(reviewSvc, log)
	respondReview := respondReviewHandler.NewHandler(reviewSvc, log)
	featureReview := featureReviewHandler.NewHandler(reviewSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, log)
	readNotification := readNotificationHandler.NewHandler(notificationSvc, log)
	readAllNotifications := readAllNotificationsHandler.NewHandler(notificationSvc, log)
	clearReadNotifications := clearReadNotificationsHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.Window) * time.Second
		var limiter middleware.Limiter
		if rdb != nil {
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Limit, window, "booking:rl")
			log.Info("Rate limit: redis, %d requests per %s", cfg.RateLimit.Limit, window)
		} else {
			limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.Limit, window, cfg.RateLimit.Burst)
			log.Info("Rate limit: in-process, %d requests per %s", cfg.RateLimit.Limit, window)
		}
		api.Use(middleware.RateLimit(limiter, log))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/hours", getBusinessHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/reviews", listReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// --- Управление компанией (для владельца) ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/bookings/export", exportBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/stats", getBusinessStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/stats/chart", getBusinessChart.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}/respond", respondReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}/feature", featureReview.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", readAllNotifications.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/read", clearReadNotifications.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/notifications/{notificationId}/read", readNotification.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopPublisher()
	wg.Wait()

	log.Info("Server stopped gracefully")
}
