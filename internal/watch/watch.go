// Package watch keeps regenerating documentation while sources change:
// a debounced fsnotify watcher, an optional fixed-interval schedule and an
// optional Prometheus metrics endpoint. Runs are strictly sequential.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/docgen/internal/config"
	"git.home.luguber.info/inful/docgen/internal/logfields"
)

// RunFunc executes one generation run.
type RunFunc func(ctx context.Context) error

// Service watches sources and triggers generation runs.
type Service struct {
	settings *config.Settings
	run      RunFunc
	registry *prom.Registry

	debounce time.Duration
	interval time.Duration

	trigger chan string // reason, coalesced to one pending run

	ignored []string // absolute directory prefixes excluded from watching
}

// New creates a watch service. registry may be nil when no metrics endpoint
// is configured.
func New(settings *config.Settings, run RunFunc, registry *prom.Registry) (*Service, error) {
	s := &Service{
		settings: settings,
		run:      run,
		registry: registry,
		debounce: time.Duration(settings.Watch.DebounceSec) * time.Second,
		interval: time.Duration(settings.Watch.IntervalMin) * time.Minute,
		trigger:  make(chan string, 1),
	}

	// Never rebuild because of our own writes.
	for _, dir := range []string{settings.OutputDir, settings.LogDir, settings.TempDir} {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve ignored path %s: %w", dir, err)
		}
		s.ignored = append(s.ignored, abs+string(filepath.Separator))
	}
	return s, nil
}

// shouldIgnore filters events originating from run outputs.
func (s *Service) shouldIgnore(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, prefix := range s.ignored {
		if strings.HasPrefix(abs+string(filepath.Separator), prefix) {
			return true
		}
	}
	return false
}

// requestRun coalesces triggers: one pending run at most.
func (s *Service) requestRun(reason string) {
	select {
	case s.trigger <- reason:
	default:
	}
}

// Start performs an initial run and then blocks, rerunning on source changes
// and scheduled ticks until the context is canceled.
func (s *Service) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range s.settings.Watch.Paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		slog.Info("Watching path", logfields.Path(path))
	}

	var scheduler gocron.Scheduler
	if s.interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(s.interval),
			gocron.NewTask(func() { s.requestRun("schedule") }),
			gocron.WithName("scheduled-generate"),
		)
		if err != nil {
			return fmt.Errorf("failed to create scheduled job: %w", err)
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
		slog.Info("Scheduled periodic generation", slog.Duration("interval", s.interval))
	}

	stopMetrics := s.serveMetrics()
	defer stopMetrics()

	// Initial run; watch mode keeps going even when a run fails.
	if err := s.run(ctx); err != nil {
		slog.Error("Initial generation failed", logfields.Error(err))
	}

	debounce := time.NewTimer(s.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watch mode")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if s.shouldIgnore(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Source change detected", logfields.Path(event.Name))
			debounce.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))

		case <-debounce.C:
			s.requestRun("source-change")

		case reason := <-s.trigger:
			slog.Info("Regenerating documentation", slog.String("reason", reason))
			if err := s.run(ctx); err != nil {
				slog.Error("Generation failed", logfields.Error(err))
			}
		}
	}
}

// serveMetrics starts the Prometheus endpoint when configured and returns the
// shutdown function.
func (s *Service) serveMetrics() func() {
	addr := s.settings.Watch.MetricsAddr
	if addr == "" || s.registry == nil {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown failed", logfields.Error(err))
		}
	}
}
