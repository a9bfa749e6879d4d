package toolchain

import (
	"context"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/logfields"
	"git.home.luguber.info/inful/docgen/internal/platform"
)

// NeedsInstall reports whether npm dependencies must be installed before
// generation. Only jsdoc and swagger-cli consume a package manifest; doxygen
// never installs. An absent node_modules with a missing package.json is fatal.
func (r *Runner) NeedsInstall() (bool, error) {
	switch r.detection.Tool {
	case platform.ToolJSDoc, platform.ToolSwagger:
	default:
		return false, nil
	}

	if info, err := os.Stat(r.sourcePath("node_modules")); err == nil && info.IsDir() {
		slog.Debug("Dependencies already installed", logfields.Path(r.sourcePath("node_modules")))
		return false, nil
	}

	if !r.sourceFileExists("package.json") {
		return false, errors.New(errors.CategoryInstall, "package.json not found").
			WithContext("tool", string(r.detection.Tool)).
			WithContext("path", r.sourcePath("package.json"))
	}
	return true, nil
}

// InstallDependencies shells out to npm install in the source directory.
func (r *Runner) InstallDependencies(ctx context.Context) error {
	slog.Info("Installing dependencies", logfields.Tool(string(r.detection.Tool)))

	cmd := exec.CommandContext(ctx, "npm", "install")
	cmd.Dir = r.sourceDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.CategoryInstall, "npm install failed")
	}

	slog.Info("Dependencies installed")
	return nil
}
