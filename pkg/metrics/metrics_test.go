package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "booking")

	m.IncBookingCreated("confirmed")
	m.IncBookingCreated("confirmed")
	m.IncBookingRejected("time_conflict")
	m.ObserveQuery("select", time.Millisecond, nil)
	m.ObserveQuery("insert", time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("GET", "/api/v1/bookings", 200, 10*time.Millisecond)
	m.SetPoolStats(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("booking", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsRejected.WithLabelValues("booking", "time_conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("booking", "insert", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("booking", "GET", "/api/v1/bookings", "200")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.dbOpen.WithLabelValues("booking")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("pending")
		m.IncBookingRejected("in_the_past")
		m.IncAvailabilityQuery("slots")
		m.ObserveQuery("select", time.Second, nil)
		m.ObserveHTTPRequest("POST", "/", 500, time.Second)
		m.SetPoolStats(sql.DBStats{})
	})
}
