package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	stageDuration   *prom.HistogramVec
	runDuration     *prom.HistogramVec
	installDuration prom.Histogram
	stageResults    *prom.CounterVec
	runOutcome      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}, []string{"tool"})
		pr.installDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "install_duration_seconds",
			Help:      "Duration of npm dependency installs",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "outcome"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "run_outcomes_total",
			Help:      "Generation run outcomes by tool and final status",
		}, []string{"tool", "outcome"})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.installDuration, pr.stageResults, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(tool string, d time.Duration) {
	p.runDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveInstallDuration(d time.Duration) {
	p.installDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, outcome OutcomeLabel) {
	p.stageResults.WithLabelValues(stage, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(tool string, outcome OutcomeLabel) {
	p.runOutcome.WithLabelValues(tool, string(outcome)).Inc()
}
