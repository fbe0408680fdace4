package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

const namespace = "visapath"

// Metrics is nil-safe: every recorder is a no-op on a nil receiver so callers
// never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	assessments        *prometheus.CounterVec
	assessmentCache    *prometheus.CounterVec
	assessmentDuration prometheus.Histogram

	suggestionsGenerated *prometheus.CounterVec
	passFailures         *prometheus.CounterVec
	suggestionsPruned    prometheus.Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics { return instance }

// Init builds the process-wide metrics once. enabled=false leaves Current nil.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(prometheus.NewRegistry())
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

// NewMetrics registers every collector on reg. Tests pass a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_inflight_requests",
			Help:      "In-flight API requests.",
		}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessment requests by outcome (computed|cached|failed).",
		}, []string{"outcome"}),
		assessmentCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_cache_total",
			Help:      "Assessment cache lookups by layer (redis|db) and result (hit|miss).",
		}, []string{"layer", "result"}),
		assessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Time to load, score and persist one assessment.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		suggestionsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_generated_total",
			Help:      "Suggestion drafts persisted by suggestion type.",
		}, []string{"type"}),
		passFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_pass_failures_total",
			Help:      "Suggestion passes that failed and were skipped.",
		}, []string{"pass"}),
		suggestionsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_pruned_total",
			Help:      "Stale suggestions deleted during generation.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.assessments,
		m.assessmentCache,
		m.assessmentDuration,
		m.suggestionsGenerated,
		m.passFailures,
		m.suggestionsPruned,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncInflight() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) DecInflight() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeFailed   = "failed"
)

func (m *Metrics) ObserveAssessment(outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(outcome).Inc()
	if outcome == OutcomeComputed {
		m.assessmentDuration.Observe(dur.Seconds())
	}
}

func (m *Metrics) AssessmentCache(layer string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.assessmentCache.WithLabelValues(layer, result).Inc()
}

func (m *Metrics) SuggestionsGenerated(suggestionType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.suggestionsGenerated.WithLabelValues(suggestionType).Add(float64(n))
}

func (m *Metrics) SuggestionPassFailed(pass string) {
	if m == nil {
		return
	}
	m.passFailures.WithLabelValues(pass).Inc()
}

func (m *Metrics) SuggestionsPruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.suggestionsPruned.Add(float64(n))
}
