// Package pipeline runs the linear documentation generation sequence:
// platform checks, environment loading, directory setup, dependency install,
// tool invocation and post-processing.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docgen/internal/config"
	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/events"
	"git.home.luguber.info/inful/docgen/internal/history"
	"git.home.luguber.info/inful/docgen/internal/logfields"
	"git.home.luguber.info/inful/docgen/internal/metrics"
	"git.home.luguber.info/inful/docgen/internal/platform"
	"git.home.luguber.info/inful/docgen/internal/toolchain"
	"git.home.luguber.info/inful/docgen/internal/workspace"
)

// Pipeline wires one generation run.
type Pipeline struct {
	settings  *config.Settings
	recorder  metrics.Recorder
	store     *history.Store    // nil when history is disabled
	publisher *events.Publisher // nil when events are not configured
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithStore injects the run history store.
func WithStore(s *history.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithPublisher injects the run event publisher.
func WithPublisher(pub *events.Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// New creates a pipeline for the given settings.
func New(settings *config.Settings, opts ...Option) *Pipeline {
	p := &Pipeline{settings: settings, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunState carries mutable state across stages.
type RunState struct {
	Settings  *config.Settings
	Recorder  metrics.Recorder
	Detection *platform.Detection
	Workspace *workspace.Manager
	Runner    *toolchain.Runner
	Record    *history.Run
	LogPath   string
	Warnings  []error
}

// Execute runs all stages in order. The first fatal error stops the run;
// warning-class failures are collected and logged. The run record is always
// returned, also on failure.
func (p *Pipeline) Execute(ctx context.Context) (*history.Run, error) {
	start := time.Now()
	state := &RunState{
		Settings: p.settings,
		Recorder: p.recorder,
		Record:   history.NewRun("", p.settings.Environment),
	}

	slog.Info("Starting documentation run",
		logfields.RunID(state.Record.ID),
		logfields.Environment(p.settings.Environment))

	err := p.runStages(ctx, state, stageDefs())

	tool := ""
	if state.Detection != nil {
		tool = string(state.Detection.Tool)
	}
	status := history.StatusSuccess
	outcome := metrics.OutcomeSuccess
	if err != nil {
		status = history.StatusFailed
		outcome = metrics.OutcomeFailed
		if ctx.Err() != nil {
			outcome = metrics.OutcomeCanceled
		}
	} else if len(state.Warnings) > 0 {
		outcome = metrics.OutcomeWarning
	}
	state.Record.Finish(status, state.LogPath, err)

	p.recorder.ObserveRunDuration(tool, time.Since(start))
	p.recorder.IncRunOutcome(tool, outcome)

	p.persistAndPublish(ctx, state)

	if err != nil {
		slog.Error("Documentation run failed",
			logfields.RunID(state.Record.ID),
			logfields.Error(err))
		return state.Record, err
	}

	slog.Info("Documentation run completed",
		logfields.RunID(state.Record.ID),
		logfields.Tool(tool),
		logfields.DurationMS(float64(state.Record.Duration)),
		slog.Int("warnings", len(state.Warnings)))
	return state.Record, nil
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. Warning-class stage errors are collected and the run
// continues.
func (p *Pipeline) runStages(ctx context.Context, state *RunState, defs []StageDef) error {
	for _, def := range defs {
		select {
		case <-ctx.Done():
			p.recorder.IncStageResult(string(def.Name), metrics.OutcomeCanceled)
			return errors.Wrap(ctx.Err(), errors.CategoryInternal, "run canceled").
				WithContext("stage", string(def.Name))
		default:
		}

		stageStart := time.Now()
		err := def.Fn(ctx, state)
		p.recorder.ObserveStageDuration(string(def.Name), time.Since(stageStart))

		switch {
		case err == nil:
			p.recorder.IncStageResult(string(def.Name), metrics.OutcomeSuccess)
		case errors.IsFatal(err):
			p.recorder.IncStageResult(string(def.Name), metrics.OutcomeFailed)
			return err
		default:
			p.recorder.IncStageResult(string(def.Name), metrics.OutcomeWarning)
			state.Warnings = append(state.Warnings, err)
			slog.Warn("Stage completed with warning",
				logfields.Stage(string(def.Name)),
				logfields.Error(err))
		}
	}
	return nil
}

// persistAndPublish records the run and sends the completion event.
// Both are best-effort. Canceled runs still get recorded, so the run
// context's cancellation must not propagate here.
func (p *Pipeline) persistAndPublish(ctx context.Context, state *RunState) {
	ctx = context.WithoutCancel(ctx)
	if p.store != nil {
		if err := p.store.Record(ctx, state.Record); err != nil {
			slog.Warn("Failed to record run history", logfields.Error(err))
		}
	}
	if err := p.publisher.PublishRunCompleted(state.Record); err != nil {
		slog.Warn("Failed to publish run event", logfields.Error(err))
	}
}
