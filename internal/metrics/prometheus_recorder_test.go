package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("generate", 150*time.Millisecond)
	pr.ObserveRunDuration("jsdoc", 500*time.Millisecond)
	pr.ObserveInstallDuration(2 * time.Second)
	pr.IncStageResult("generate", OutcomeSuccess)
	pr.IncRunOutcome("jsdoc", OutcomeSuccess)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("generate", time.Second)
	r.ObserveRunDuration("doxygen", time.Second)
	r.ObserveInstallDuration(time.Second)
	r.IncStageResult("generate", OutcomeFailed)
	r.IncRunOutcome("doxygen", OutcomeCanceled)
}
