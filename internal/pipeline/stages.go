package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docgen/internal/history"
	"git.home.luguber.info/inful/docgen/internal/logfields"
	"git.home.luguber.info/inful/docgen/internal/platform"
	"git.home.luguber.info/inful/docgen/internal/report"
	"git.home.luguber.info/inful/docgen/internal/toolchain"
	"git.home.luguber.info/inful/docgen/internal/workspace"
)

// Stage is a discrete unit of work in the run.
type Stage func(ctx context.Context, state *RunState) error

// StageName is a strongly-typed identifier for a pipeline stage.
type StageName string

// Canonical stage names.
const (
	StagePlatform    StageName = "platform"
	StageEnvironment StageName = "environment"
	StageDirectories StageName = "directories"
	StageInstall     StageName = "install"
	StageGenerate    StageName = "generate"
	StagePostProcess StageName = "post_process"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

func stageDefs() []StageDef {
	return []StageDef{
		{StagePlatform, stagePlatform},
		{StageEnvironment, stageEnvironment},
		{StageDirectories, stageDirectories},
		{StageInstall, stageInstall},
		{StageGenerate, stageGenerate},
		{StagePostProcess, stagePostProcess},
	}
}

// stagePlatform verifies the OS and selects the documentation tool.
// Missing auxiliary runtimes are warnings emitted inline; the stage only
// fails when the OS is unsupported or no tool is installed.
func stagePlatform(_ context.Context, state *RunState) error {
	if err := platform.CheckOS(); err != nil {
		return err
	}

	detection, err := platform.DetectTool()
	if err != nil {
		return err
	}
	state.Detection = detection
	state.Record.Tool = string(detection.Tool)

	for _, name := range platform.MissingRuntimes() {
		slog.Warn("Auxiliary runtime not found", slog.String("runtime", name))
	}
	return nil
}

// stageEnvironment loads the per-environment file and derived variables.
func stageEnvironment(_ context.Context, state *RunState) error {
	return state.Settings.LoadEnvironment()
}

// stageDirectories ensures the fixed working directories exist and prepares
// the toolchain runner over them.
func stageDirectories(_ context.Context, state *RunState) error {
	s := state.Settings
	state.Workspace = workspace.NewManager(s.RequiredDirs(), s.TempDir, s.StaticDir, s.OutputDir)
	if err := state.Workspace.EnsureDirectories(); err != nil {
		return err
	}
	state.Runner = toolchain.NewRunner(state.Detection, s.SourceDir, s.OutputDir, s.LogDir)
	return nil
}

// stageInstall installs npm dependencies when the selected tool needs them.
func stageInstall(ctx context.Context, state *RunState) error {
	need, err := state.Runner.NeedsInstall()
	if err != nil {
		return err
	}
	if !need {
		return nil
	}

	start := time.Now()
	if err := state.Runner.InstallDependencies(ctx); err != nil {
		return err
	}
	state.Recorder.ObserveInstallDuration(time.Since(start))
	slog.Debug("Install finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// stageGenerate invokes the external documentation tool.
func stageGenerate(ctx context.Context, state *RunState) error {
	logPath, err := state.Runner.Generate(ctx)
	state.LogPath = logPath
	state.Record.Commit = history.SourceCommit(state.Settings.SourceDir)
	return err
}

// stagePostProcess copies static assets, cleans temp space and writes the
// build report. Every failure here is a warning; the first one is surfaced
// so the stage result reflects it.
func stagePostProcess(_ context.Context, state *RunState) error {
	var first error
	keep := func(err error) {
		if err == nil {
			return
		}
		slog.Warn("Post-processing step failed", logfields.Error(err))
		if first == nil {
			first = err
		}
	}

	keep(state.Workspace.CopyStaticAssets())
	keep(state.Workspace.CleanTemp())

	// The record is finalized after the stages return; report a snapshot of
	// what is known now.
	snapshot := *state.Record
	snapshot.Status = history.StatusSuccess
	snapshot.LogPath = state.LogPath
	snapshot.Duration = time.Since(snapshot.StartedAt).Milliseconds()
	keep(report.Write(state.Settings.OutputDir, &snapshot))
	return first
}
