// Package toolchain prepares and invokes the selected external documentation
// generator. It owns dependency installation, per-tool argument construction
// and the timestamped run log.
package toolchain

import (
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docgen/internal/platform"
)

// Runner drives external tool invocations for one run.
type Runner struct {
	detection *platform.Detection
	sourceDir string
	outputDir string
	logDir    string

	now func() time.Time
}

// NewRunner creates a runner for the detected tool.
func NewRunner(detection *platform.Detection, sourceDir, outputDir, logDir string) *Runner {
	return &Runner{
		detection: detection,
		sourceDir: sourceDir,
		outputDir: outputDir,
		logDir:    logDir,
		now:       time.Now,
	}
}

// Tool returns the selected generator.
func (r *Runner) Tool() platform.Tool { return r.detection.Tool }

// LogFilePath derives the run log file name from the clock at generation time.
func (r *Runner) LogFilePath() string {
	timestamp := r.now().Format("20060102-150405")
	return filepath.Join(r.logDir, "docgen-"+string(r.detection.Tool)+"-"+timestamp+".log")
}

// sourcePath resolves a conventional file name against the source directory.
func (r *Runner) sourcePath(name string) string {
	return filepath.Join(r.sourceDir, name)
}

// sourceFileExists reports whether a conventional file is present.
func (r *Runner) sourceFileExists(name string) bool {
	info, err := os.Stat(r.sourcePath(name))
	return err == nil && !info.IsDir()
}
