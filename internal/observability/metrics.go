package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for call sessions and AI generation.
// Labels stay low-cardinality: no user, interview or request ids.
type Metrics struct {
	CallsStarted      *prometheus.CounterVec
	CallsFinished     *prometheus.CounterVec
	CallsActive       prometheus.Gauge
	TranscriptEntries *prometheus.CounterVec
	FeedbackGenerated *prometheus.CounterVec
	InterviewsCreated *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWithRegistry(reg, reg)
}

// NewMetricsWithRegistry registers all collectors on reg and serves them from gatherer.
func NewMetricsWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		CallsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockly_call_sessions_started_total",
			Help: "Total number of voice call sessions started, by mode.",
		}, []string{"mode"}),
		CallsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockly_call_sessions_finished_total",
			Help: "Total number of voice call sessions finished, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		CallsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mockly_call_sessions_active",
			Help: "Current number of call sessions between start and finish.",
		}),
		TranscriptEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockly_call_transcript_entries_total",
			Help: "Total number of final transcript entries recorded, by speaker.",
		}, []string{"speaker"}),
		FeedbackGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockly_feedback_generations_total",
			Help: "Total number of feedback generation attempts, by result.",
		}, []string{"result"}),
		InterviewsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockly_interview_generations_total",
			Help: "Total number of interview question generation attempts, by result.",
		}, []string{"result"}),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.CallsStarted,
		m.CallsFinished,
		m.CallsActive,
		m.TranscriptEntries,
		m.FeedbackGenerated,
		m.InterviewsCreated,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
