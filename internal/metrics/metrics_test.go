package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_Independent(t *testing.T) {
	a := NewMetrics("flightbooking")
	b := NewMetrics("flightbooking")

	a.BookingsCreated.Inc()
	a.SeatsBooked.Add(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.BookingsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(a.SeatsBooked))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BookingsCreated))
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := NewMetrics("flightbooking")
	m.PaymentsProcessed.WithLabelValues("card").Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `flightbooking_payments_processed_total{method="card"} 1`)
}
