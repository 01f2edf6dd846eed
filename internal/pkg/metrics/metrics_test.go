//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_LifecycleCounters(t *testing.T) {
	r := metrics.NewRecorder()

	r.RequestCreated()
	r.RequestCreated()
	r.RequestRejected("conflict")
	r.TransitionApplied(rental.EventAccept, rental.StatusPending, rental.StatusAccepted)
	r.TransitionRejected(rental.EventAccept, "invalid_transition")
	r.SweepCompleted(2, 1, 0)

	expected := `
# HELP closet_rental_rental_requests_created_total Rental requests accepted into the pending state.
# TYPE closet_rental_rental_requests_created_total counter
closet_rental_rental_requests_created_total 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"closet_rental_rental_requests_created_total"))

	n, err := testutil.GatherAndCount(r.Registry(), "closet_rental_rental_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expectedSweep := `
# HELP closet_rental_sweep_transitions_total Scheduler-driven transitions, by outcome.
# TYPE closet_rental_sweep_transitions_total counter
closet_rental_sweep_transitions_total{outcome="activated"} 2
closet_rental_sweep_transitions_total{outcome="completed"} 1
closet_rental_sweep_transitions_total{outcome="failed"} 0
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expectedSweep),
		"closet_rental_sweep_transitions_total"))
}

func TestRecorder_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := metrics.NewRecorder()

	engine := gin.New()
	engine.Use(r.Middleware())
	engine.GET("/api/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	engine.GET("/metrics", gin.WrapH(r.Handler()))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `closet_rental_http_requests_total{code="204",method="GET",route="/api/items/:id"} 1`)
}
