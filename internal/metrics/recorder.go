package metrics

import "time"

// OutcomeLabel enumerates run result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeWarning  OutcomeLabel = "warning"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for generation runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc. The NoopRecorder allows
// optional injection.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(tool string, d time.Duration)
	ObserveInstallDuration(d time.Duration)
	IncStageResult(stage string, outcome OutcomeLabel)
	IncRunOutcome(tool string, outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)   {}
func (NoopRecorder) ObserveInstallDuration(time.Duration)       {}
func (NoopRecorder) IncStageResult(string, OutcomeLabel)        {}
func (NoopRecorder) IncRunOutcome(string, OutcomeLabel)         {}
