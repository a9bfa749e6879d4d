// Package history records generation runs: what tool ran, for which
// environment, against which source commit, and how it went.
package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the final state of a generation run.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusFailed  RunStatus = "failed"
)

// Run describes one generation run.
type Run struct {
	ID          string    `json:"id"`
	Tool        string    `json:"tool"`
	Environment string    `json:"environment"`
	Commit      string    `json:"commit,omitempty"`
	Status      RunStatus `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	Duration    int64     `json:"duration_ms"`
	LogPath     string    `json:"log_path,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// NewRun starts a run record with a fresh id.
func NewRun(tool, environment string) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Tool:        tool,
		Environment: environment,
		StartedAt:   time.Now().UTC(),
	}
}

// Finish stamps the outcome onto the run.
func (r *Run) Finish(status RunStatus, logPath string, err error) {
	r.Status = status
	r.LogPath = logPath
	r.Duration = time.Since(r.StartedAt).Milliseconds()
	if err != nil {
		r.Error = err.Error()
	}
}

// ToJSON serializes the run for event payloads and report rendering.
func (r *Run) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}
