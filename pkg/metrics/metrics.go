// Package metrics provides Prometheus collectors for the sales assistant.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector. All record methods are safe on a nil *Metrics,
// so components can run without instrumentation.
type Metrics struct {
	PassDuration     *prometheus.HistogramVec
	PassOutcomes     *prometheus.CounterVec
	ScoresTotal      *prometheus.CounterVec
	ShiftsTotal      prometheus.Counter
	StageTransitions *prometheus.CounterVec
	QuestionsTotal   *prometheus.CounterVec
	SummariesTotal   *prometheus.CounterVec
	StoreOperations  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PassDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookseller_sentiment_pass_duration_seconds",
				Help:    "Duration of individual sentiment scoring passes",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10},
			},
			[]string{"pass"},
		),
		PassOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_sentiment_pass_outcomes_total",
				Help: "Sentiment pass results by outcome (ok, absent, error, timeout)",
			},
			[]string{"pass", "outcome"},
		),
		ScoresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_sentiment_scores_total",
				Help: "Sentiment scores produced by label",
			},
			[]string{"label"},
		),
		ShiftsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bookseller_sentiment_shifts_total",
				Help: "Sentiment shifts detected",
			},
		),
		StageTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_stage_transitions_total",
				Help: "Conversation stage changes",
			},
			[]string{"from", "to"},
		),
		QuestionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_questions_total",
				Help: "Next questions produced by source (generated, template, fallback)",
			},
			[]string{"stage", "source"},
		),
		SummariesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_call_summaries_total",
				Help: "Call summaries generated by outcome",
			},
			[]string{"outcome"},
		),
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookseller_store_operations_total",
				Help: "Store operations by store, operation and status",
			},
			[]string{"store", "operation", "status"},
		),
	}
}

func (m *Metrics) RecordPass(pass, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.PassDuration.WithLabelValues(pass).Observe(d.Seconds())
	m.PassOutcomes.WithLabelValues(pass, outcome).Inc()
}

func (m *Metrics) RecordScore(label string) {
	if m == nil {
		return
	}
	m.ScoresTotal.WithLabelValues(label).Inc()
}

// RecordShifts counts shifts that ended on the latest score.
func (m *Metrics) RecordShifts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ShiftsTotal.Add(float64(n))
}

func (m *Metrics) RecordStage(from, to string) {
	if m == nil || from == to {
		return
	}
	m.StageTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) RecordQuestion(stage, source string) {
	if m == nil {
		return
	}
	m.QuestionsTotal.WithLabelValues(stage, source).Inc()
}

func (m *Metrics) RecordSummary(outcome string) {
	if m == nil {
		return
	}
	m.SummariesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordStore(store, op string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StoreOperations.WithLabelValues(store, op, status).Inc()
}
