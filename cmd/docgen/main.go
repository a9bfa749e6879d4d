package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docgen/internal/config"
	"git.home.luguber.info/inful/docgen/internal/events"
	"git.home.luguber.info/inful/docgen/internal/history"
	"git.home.luguber.info/inful/docgen/internal/logfields"
	"git.home.luguber.info/inful/docgen/internal/metrics"
	"git.home.luguber.info/inful/docgen/internal/pipeline"
	"git.home.luguber.info/inful/docgen/internal/platform"
	"git.home.luguber.info/inful/docgen/internal/version"
	"git.home.luguber.info/inful/docgen/internal/watch"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docgen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Generate struct {
		Environment string `arg:"" optional:"" default:"development" help:"Target environment name"`
	} `cmd:"" default:"withargs" help:"Run documentation generation once"`

	Watch struct {
		Environment string `arg:"" optional:"" default:"development" help:"Target environment name"`
		MetricsAddr string `help:"Serve Prometheus metrics on this address (e.g. :9090)"`
	} `cmd:"" help:"Regenerate documentation whenever sources change"`

	History struct {
		Limit int `short:"n" default:"20" help:"Number of runs to show"`
	} `cmd:"" help:"Show recent generation runs"`

	Doctor struct{} `cmd:"" help:"Check host prerequisites without generating"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": version.Version})

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "generate", "generate <environment>":
		if err := runGenerate(CLI.Config, CLI.Generate.Environment); err != nil {
			slog.Error("Generation failed", logfields.Error(err))
			os.Exit(1)
		}
	case "watch", "watch <environment>":
		if err := runWatch(CLI.Config, CLI.Watch.Environment, CLI.Watch.MetricsAddr); err != nil {
			slog.Error("Watch failed", logfields.Error(err))
			os.Exit(1)
		}
	case "history":
		if err := runHistory(CLI.Config, CLI.History.Limit); err != nil {
			slog.Error("History failed", logfields.Error(err))
			os.Exit(1)
		}
	case "doctor":
		if err := runDoctor(); err != nil {
			slog.Error("Doctor found problems", logfields.Error(err))
			os.Exit(1)
		}
	}
}

// buildPipeline assembles the supporting services around a run.
func buildPipeline(cfg *config.Settings, recorder metrics.Recorder) (*pipeline.Pipeline, func()) {
	opts := []pipeline.Option{pipeline.WithRecorder(recorder)}
	cleanup := func() {}

	if !cfg.History.Disabled {
		store, err := history.NewStore(historyPath(cfg))
		if err != nil {
			slog.Warn("Run history unavailable", logfields.Error(err))
		} else {
			opts = append(opts, pipeline.WithStore(store))
			cleanup = func() { _ = store.Close() }
		}
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		slog.Warn("Event publishing unavailable", logfields.Error(err))
	} else if publisher != nil {
		opts = append(opts, pipeline.WithPublisher(publisher))
		prev := cleanup
		cleanup = func() { publisher.Close(); prev() }
	}

	return pipeline.New(cfg, opts...), cleanup
}

func historyPath(cfg *config.Settings) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(cfg.LogDir, "docgen.db")
}

func runGenerate(configPath, environment string) error {
	cfg, err := config.Load(configPath, environment)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p, cleanup := buildPipeline(cfg, metrics.NoopRecorder{})
	defer cleanup()

	_, err = p.Execute(ctx)
	return err
}

func runWatch(configPath, environment, metricsAddr string) error {
	cfg, err := config.Load(configPath, environment)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.Watch.MetricsAddr = metricsAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	p, cleanup := buildPipeline(cfg, recorder)
	defer cleanup()

	svc, err := watch.New(cfg, func(ctx context.Context) error {
		_, err := p.Execute(ctx)
		return err
	}, registry)
	if err != nil {
		return err
	}

	slog.Info("Starting watch mode, waiting for shutdown signal...")
	return svc.Start(ctx)
}

func runHistory(configPath string, limit int) error {
	cfg, err := config.Load(configPath, config.DefaultEnvironment)
	if err != nil {
		return err
	}
	if cfg.History.Disabled {
		return fmt.Errorf("run history is disabled in configuration")
	}

	store, err := history.NewStore(historyPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-11s %-12s %-7s %6dms",
			run.StartedAt.Format(time.RFC3339), run.Tool, run.Environment, run.Status, run.Duration)
		if run.Commit != "" {
			line += "  " + run.Commit[:min(12, len(run.Commit))]
		}
		fmt.Println(line)
	}
	return nil
}

func runDoctor() error {
	if err := platform.CheckOS(); err != nil {
		return err
	}
	fmt.Printf("os: ok\n")

	detection, err := platform.DetectTool()
	if err != nil {
		return err
	}
	fmt.Printf("tool: %s (%s)\n", detection.Tool, detection.Path)

	missing := platform.MissingRuntimes()
	if len(missing) == 0 {
		fmt.Printf("runtimes: ok\n")
	} else {
		for _, name := range missing {
			fmt.Printf("runtimes: %s not found (warning)\n", name)
		}
	}
	return nil
}
