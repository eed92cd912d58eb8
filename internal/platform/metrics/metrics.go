package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters, gauges and histograms for the tutor service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       prometheus.Counter
	errorsTotal         prometheus.Counter
	invocationsTotal    *prometheus.CounterVec
	classificationTotal *prometheus.CounterVec
	stageDuration       *prometheus.HistogramVec
	llmCallsTotal       *prometheus.CounterVec
	mediaFailuresTotal  prometheus.Counter
	storedArtifacts     prometheus.Gauge
}

// New creates and registers Prometheus metrics for the service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutor_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutor_http_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	invocationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_pipeline_invocations_total",
		Help: "Pipeline invocations by outcome (completed, rejected, canceled, fatal)",
	}, []string{"outcome"})
	classificationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_classifications_total",
		Help: "Classifier outcomes by classification",
	}, []string{"classification"})
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_stage_duration_seconds",
		Help:    "Wall-clock time spent in each pipeline stage",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"stage"})
	llmCallsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_llm_calls_total",
		Help: "LLM completion calls by stage and result",
	}, []string{"stage", "result"})
	mediaFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutor_media_failures_total",
		Help: "Invocations whose media stage had at least one failed sub-task",
	})
	storedArtifacts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tutor_stored_artifacts",
		Help: "Number of rendered artifacts currently held in the artifact store",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		invocationsTotal,
		classificationTotal,
		stageDuration,
		llmCallsTotal,
		mediaFailuresTotal,
		storedArtifacts,
	)

	return &Metrics{
		registry:            registry,
		requestsTotal:       requestsTotal,
		errorsTotal:         errorsTotal,
		invocationsTotal:    invocationsTotal,
		classificationTotal: classificationTotal,
		stageDuration:       stageDuration,
		llmCallsTotal:       llmCallsTotal,
		mediaFailuresTotal:  mediaFailuresTotal,
		storedArtifacts:     storedArtifacts,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	if m == nil {
		return
	}
	m.errorsTotal.Inc()
}

// IncInvocation counts one pipeline invocation with the given outcome label.
func (m *Metrics) IncInvocation(outcome string) {
	if m == nil {
		return
	}
	m.invocationsTotal.WithLabelValues(outcome).Inc()
}

// IncClassification counts one classifier outcome.
func (m *Metrics) IncClassification(classification string) {
	if m == nil {
		return
	}
	m.classificationTotal.WithLabelValues(classification).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveLLMCall counts one completion call; err decides the result label.
func (m *Metrics) ObserveLLMCall(stage string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.llmCallsTotal.WithLabelValues(stage, result).Inc()
}

// IncMediaFailures increments the media failure counter.
func (m *Metrics) IncMediaFailures() {
	if m == nil {
		return
	}
	m.mediaFailuresTotal.Inc()
}

// SetStoredArtifacts sets the stored artifacts gauge.
func (m *Metrics) SetStoredArtifacts(n int) {
	if m == nil {
		return
	}
	m.storedArtifacts.Set(float64(n))
}

// Registry exposes the underlying registry, for gathering values directly or
// registering extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. stored artifacts).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
