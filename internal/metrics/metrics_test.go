package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/booking", http.MethodPost, "409"))
	ObserveHTTP("/booking", http.MethodPost, http.StatusConflict, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/booking", http.MethodPost, "409")))

	IncBooking("created")
	AddBooking("purged", 3)
	assert.GreaterOrEqual(t, testutil.ToFloat64(bookingEvents.WithLabelValues("purged")), 3.0)

	assert.NotPanics(t, func() {
		IncCache("hit")
		ObserveHTTP("", http.MethodGet, http.StatusNotFound, time.Millisecond)
	})
}
