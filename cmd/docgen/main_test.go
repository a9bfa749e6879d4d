package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func newTestParser(t *testing.T) *kong.Kong {
	t.Helper()

	// The package-level CLI struct keeps values between parses.
	CLI.Config = ""
	CLI.Verbose = false
	CLI.Generate.Environment = ""
	CLI.Watch.Environment = ""
	CLI.Watch.MetricsAddr = ""
	CLI.History.Limit = 0

	parser, err := kong.New(&CLI, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	return parser
}

func TestParseNoArgsDefaultsToGenerate(t *testing.T) {
	parser := newTestParser(t)

	ctx, err := parser.Parse([]string{})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if ctx.Command() != "generate" {
		t.Errorf("expected generate command, got %q", ctx.Command())
	}
	if CLI.Generate.Environment != "development" {
		t.Errorf("expected development environment, got %q", CLI.Generate.Environment)
	}
	if CLI.Config != "docgen.yaml" {
		t.Errorf("expected default config path, got %q", CLI.Config)
	}
}

func TestParseSingleArgSetsEnvironment(t *testing.T) {
	parser := newTestParser(t)

	ctx, err := parser.Parse([]string{"production"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if ctx.Command() != "generate <environment>" {
		t.Errorf("expected generate <environment>, got %q", ctx.Command())
	}
	if CLI.Generate.Environment != "production" {
		t.Errorf("expected production environment, got %q", CLI.Generate.Environment)
	}
}

func TestParseExcessArgsIsAnError(t *testing.T) {
	parser := newTestParser(t)

	if _, err := parser.Parse([]string{"production", "extra"}); err == nil {
		t.Fatal("expected a usage error for more than one positional argument")
	}
}

func TestParseWatchCommand(t *testing.T) {
	parser := newTestParser(t)

	ctx, err := parser.Parse([]string{"watch", "staging", "--metrics-addr", ":9090"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if ctx.Command() != "watch <environment>" {
		t.Errorf("expected watch <environment>, got %q", ctx.Command())
	}
	if CLI.Watch.Environment != "staging" {
		t.Errorf("expected staging environment, got %q", CLI.Watch.Environment)
	}
	if CLI.Watch.MetricsAddr != ":9090" {
		t.Errorf("expected metrics addr :9090, got %q", CLI.Watch.MetricsAddr)
	}
}

func TestParseHistoryDefaults(t *testing.T) {
	parser := newTestParser(t)

	ctx, err := parser.Parse([]string{"history"})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if ctx.Command() != "history" {
		t.Errorf("expected history command, got %q", ctx.Command())
	}
	if CLI.History.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", CLI.History.Limit)
	}
}
