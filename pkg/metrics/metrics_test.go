package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "reservation-service")

	m.IncReservationTransition("pending", "confirmed", "success")
	m.IncReservationTransition("pending", "confirmed", "success")
	m.IncCacheInvalidation("success")
	m.IncJobPoll("processing")
	m.ObserveHTTPRequest("GET", "/api/v1/reservations/{reservationId}", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationTransitions.WithLabelValues("pending", "confirmed", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobPolls.WithLabelValues("processing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/reservations/{reservationId}", "200")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservationTransition("pending", "confirmed", "success")
		m.IncCacheInvalidation("error")
		m.IncJobPoll("failed")
		m.ObserveDBQuery("query", time.Second)
	})
}
