package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса. Методы безопасны для nil-получателя,
// поэтому выключенные метрики можно передавать как nil.
type Metrics struct {
	serviceName string

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries  *prometheus.CounterVec
	dbDuration *prometheus.HistogramVec
	dbOpen     *prometheus.GaugeVec
	dbInUse    *prometheus.GaugeVec
	dbIdle     *prometheus.GaugeVec
	dbWait     *prometheus.GaugeVec

	bookingsCreated  *prometheus.CounterVec
	bookingsRejected *prometheus.CounterVec
	slotsServed      *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"service", "method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries.",
		}, []string{"service", "operation", "status"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Open connections in the pool.",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Connections currently in use.",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Idle connections in the pool.",
		}, []string{"service"}),
		dbWait: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for.",
		}, []string{"service"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings created by initial status.",
		}, []string{"service", "status"}),
		bookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_rejected_total",
			Help: "Booking attempts rejected by validation reason.",
		}, []string{"service", "reason"}),
		slotsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_queries_total",
			Help: "Availability queries served by kind.",
		}, []string{"service", "kind"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbDuration, m.dbOpen, m.dbInUse, m.dbIdle, m.dbWait,
		m.bookingsCreated, m.bookingsRejected, m.slotsServed,
	)

	return m
}

// ObserveHTTPRequest записывает HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveQuery записывает выполнение запроса к БД
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(m.serviceName, operation, status).Inc()
	m.dbDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetPoolStats публикует статистику пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpen.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
	m.dbWait.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
}

func (m *Metrics) IncBookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) IncBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

func (m *Metrics) IncAvailabilityQuery(kind string) {
	if m == nil {
		return
	}
	m.slotsServed.WithLabelValues(m.serviceName, kind).Inc()
}
