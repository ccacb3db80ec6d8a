// Package monitoring provides Prometheus metrics for the generation
// pipeline and HTTP surface.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GenerationMetrics implements the generation pipeline's Metrics interface
// with Prometheus counters.
type GenerationMetrics struct {
	modelCalls  prometheus.Counter
	repairs     prometheus.Counter
	generations *prometheus.CounterVec
}

// NewGenerationMetrics registers and returns the pipeline metrics.
func NewGenerationMetrics() *GenerationMetrics {
	return &GenerationMetrics{
		modelCalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "generation_model_calls_total",
			Help: "Total number of LLM model calls issued by the pipeline",
		}),
		repairs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "generation_repair_attempts_total",
			Help: "Total number of malformed-output repair attempts",
		}),
		generations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of generation requests by outcome",
		}, []string{"outcome"}),
	}
}

// ModelCall counts one outbound LLM call.
func (m *GenerationMetrics) ModelCall() {
	m.modelCalls.Inc()
}

// RepairAttempt counts one repair pass.
func (m *GenerationMetrics) RepairAttempt() {
	m.repairs.Inc()
}

// GenerationSucceeded counts a run that produced a valid recipe.
func (m *GenerationMetrics) GenerationSucceeded() {
	m.generations.WithLabelValues("succeeded").Inc()
}

// GenerationFailed counts a run that exhausted its call budget.
func (m *GenerationMetrics) GenerationFailed() {
	m.generations.WithLabelValues("failed").Inc()
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
