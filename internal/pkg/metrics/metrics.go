package metrics

import (
	"net/http"
	"strconv"
	"time"

	"closet-rental/internal/domain/rental"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "closet_rental"

// Recorder owns a private registry so tests can create as many as they like.
type Recorder struct {
	registry *prometheus.Registry

	requestsCreated     prometheus.Counter
	requestsRejected    *prometheus.CounterVec
	transitionsApplied  *prometheus.CounterVec
	transitionsRejected *prometheus.CounterVec
	sweepTransitions    *prometheus.CounterVec
	sweepRuns           prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_requests_created_total",
			Help:      "Rental requests accepted into the pending state.",
		}),
		requestsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_requests_rejected_total",
			Help:      "Rental requests refused, by reason.",
		}, []string{"reason"}),
		transitionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_transitions_total",
			Help:      "Lifecycle transitions that changed a rental.",
		}, []string{"event", "from", "to"}),
		transitionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_transitions_rejected_total",
			Help:      "Lifecycle transitions refused, by event and reason.",
		}, []string{"event", "reason"}),
		sweepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_transitions_total",
			Help:      "Scheduler-driven transitions, by outcome.",
		}, []string{"outcome"}),
		sweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Completed scheduler sweeps.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestsCreated,
		r.requestsRejected,
		r.transitionsApplied,
		r.transitionsRejected,
		r.sweepTransitions,
		r.sweepRuns,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

func (r *Recorder) RequestCreated() { r.requestsCreated.Inc() }

func (r *Recorder) RequestRejected(reason string) {
	r.requestsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) TransitionApplied(event rental.Event, from, to rental.Status) {
	r.transitionsApplied.WithLabelValues(event.String(), from.String(), to.String()).Inc()
}

func (r *Recorder) TransitionRejected(event rental.Event, reason string) {
	r.transitionsRejected.WithLabelValues(event.String(), reason).Inc()
}

func (r *Recorder) SweepCompleted(activated, completed, failed int) {
	r.sweepRuns.Inc()
	r.sweepTransitions.WithLabelValues("activated").Add(float64(activated))
	r.sweepTransitions.WithLabelValues("completed").Add(float64(completed))
	r.sweepTransitions.WithLabelValues("failed").Add(float64(failed))
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the matched route template.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
