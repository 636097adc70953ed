package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's Prometheus collectors
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNamespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{LabelMethod, LabelPath},
	)

	refreshRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "results",
			Name:      "refresh_total",
			Help:      "Total number of hit recalculation passes.",
		},
		[]string{LabelResult},
	)

	refreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricNamespace,
			Subsystem: "results",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of hit recalculation passes including winner detection.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	combinationsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "results",
			Name:      "combinations_updated_total",
			Help:      "Total number of combinations whose hit count changed.",
		},
	)

	winnersDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "winners",
			Name:      "detected_total",
			Help:      "Total number of winner records created.",
		},
	)

	winnerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "winners",
			Name:      "persist_failures_total",
			Help:      "Total number of winner records that could not be persisted.",
		},
	)

	gamesAutoClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "games",
			Name:      "auto_closed_total",
			Help:      "Total number of games closed by winner detection.",
		},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of domain events published.",
		},
		[]string{LabelEventType, LabelResult},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "notifier",
			Name:      "notifications_total",
			Help:      "Total number of winner announcements sent.",
		},
		[]string{LabelResult},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		refreshRuns,
		refreshDuration,
		combinationsUpdated,
		winnersDetected,
		winnerFailures,
		gamesAutoClosed,
		eventsPublished,
		notifications,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records request counts and durations. Paths are
// labelled with the matched route template to bound cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordRefresh records one recalculation pass
func RecordRefresh(result string, duration time.Duration, changed, newWinners, failed int, autoClosed bool) {
	refreshRuns.WithLabelValues(result).Inc()
	refreshDuration.Observe(duration.Seconds())
	combinationsUpdated.Add(float64(changed))
	winnersDetected.Add(float64(newWinners))
	winnerFailures.Add(float64(failed))
	if autoClosed {
		gamesAutoClosed.Inc()
	}
}

// RecordEventPublished records a publish attempt of a domain event
func RecordEventPublished(eventType string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	eventsPublished.WithLabelValues(eventType, result).Inc()
}

// RecordNotification records a winner announcement attempt
func RecordNotification(err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	notifications.WithLabelValues(result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
