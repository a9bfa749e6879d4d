package toolchain

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/logfields"
	"git.home.luguber.info/inful/docgen/internal/platform"
)

// Invocation is one external command of a generation run.
type Invocation struct {
	Name string
	Args []string
}

// Invocations builds the fixed command sequence for the selected tool,
// sniffing the conventional config files first. The three-way dispatch is
// closed: every supported tool has exactly one branch here.
func (r *Runner) Invocations() ([]Invocation, error) {
	switch r.detection.Tool {
	case platform.ToolJSDoc:
		return r.jsdocInvocations(), nil
	case platform.ToolSwagger:
		return r.swaggerInvocations()
	case platform.ToolDoxygen:
		return r.doxygenInvocations()
	default:
		return nil, errors.New(errors.CategoryInternal, "unknown tool").
			WithContext("tool", string(r.detection.Tool))
	}
}

// jsdocInvocations prefers a project jsdoc.conf.json over the default
// recursive invocation.
func (r *Runner) jsdocInvocations() []Invocation {
	if r.sourceFileExists("jsdoc.conf.json") {
		slog.Debug("Using jsdoc configuration file", logfields.Path(r.sourcePath("jsdoc.conf.json")))
		return []Invocation{{r.detection.Binary, []string{"-c", "jsdoc.conf.json", "-d", r.outputDir}}}
	}
	return []Invocation{{r.detection.Binary, []string{"-r", r.sourceDir, "-d", r.outputDir}}}
}

// swaggerInvocations bundles then validates the first spec file found.
// swagger.yaml outranks swagger.json.
func (r *Runner) swaggerInvocations() ([]Invocation, error) {
	var spec string
	for _, name := range []string{"swagger.yaml", "swagger.json"} {
		if r.sourceFileExists(name) {
			spec = name
			break
		}
	}
	if spec == "" {
		return nil, errors.New(errors.CategoryGenerate, "no swagger spec found (swagger.yaml or swagger.json)")
	}

	bundled := filepath.Join(r.outputDir, "openapi.json")
	return []Invocation{
		{r.detection.Binary, []string{"bundle", spec, "-o", bundled}},
		{r.detection.Binary, []string{"validate", spec}},
	}, nil
}

func (r *Runner) doxygenInvocations() ([]Invocation, error) {
	if !r.sourceFileExists("Doxyfile") {
		return nil, errors.New(errors.CategoryGenerate, "Doxyfile not found").
			WithContext("path", r.sourcePath("Doxyfile"))
	}
	return []Invocation{{r.detection.Binary, []string{"Doxyfile"}}}, nil
}

// Generate runs the tool invocations sequentially with combined output
// redirected to a timestamped log file. Returns the log path along with any
// failure so callers can point at it.
func (r *Runner) Generate(ctx context.Context) (string, error) {
	invocations, err := r.Invocations()
	if err != nil {
		return "", err
	}

	logPath := r.LogFilePath()
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryFileSystem, "failed to create log file").
			WithContext("path", logPath)
	}
	defer logFile.Close()

	for _, inv := range invocations {
		slog.Info("Running documentation tool",
			logfields.Tool(string(r.detection.Tool)),
			slog.String("command", inv.Name),
			logfields.LogFile(logPath))

		cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
		cmd.Dir = r.sourceDir
		cmd.Stdout = logFile
		cmd.Stderr = logFile
		if err := cmd.Run(); err != nil {
			return logPath, errors.Wrap(err, errors.CategoryGenerate, "documentation generation failed").
				WithContext("tool", string(r.detection.Tool)).
				WithContext("log_file", logPath)
		}
	}

	slog.Info("Documentation generated",
		logfields.Tool(string(r.detection.Tool)),
		logfields.Path(r.outputDir))
	return logPath, nil
}
