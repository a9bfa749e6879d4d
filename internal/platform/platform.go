// Package platform performs host checks: operating system support and
// detection of the external documentation toolchain on PATH.
package platform

import (
	"log/slog"
	"os/exec"
	"runtime"

	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/logfields"
)

// Tool identifies one of the supported documentation generators.
type Tool string

const (
	ToolJSDoc   Tool = "jsdoc"
	ToolSwagger Tool = "swagger-cli"
	ToolDoxygen Tool = "doxygen"
)

// toolCandidates is the detection priority order. The first binary found on
// PATH selects the tool for the whole run.
var toolCandidates = []struct {
	tool     Tool
	binaries []string
}{
	{ToolJSDoc, []string{"jsdoc"}},
	{ToolSwagger, []string{"swagger-cli", "swagger"}},
	{ToolDoxygen, []string{"doxygen"}},
}

// auxiliaryRuntimes are helper programs whose absence is a warning, not a failure.
var auxiliaryRuntimes = []string{"node", "npm"}

// Detection is the result of a successful tool probe.
type Detection struct {
	Tool   Tool   // selected generator
	Binary string // binary name that matched (swagger-cli vs swagger)
	Path   string // resolved absolute path
}

// IsSupportedOS reports whether the given GOOS value is supported.
func IsSupportedOS(goos string) bool {
	switch goos {
	case "linux", "darwin", "windows":
		return true
	default:
		return false
	}
}

// CheckOS verifies the current operating system is supported.
func CheckOS() error {
	if !IsSupportedOS(runtime.GOOS) {
		return errors.New(errors.CategoryPlatform, "unsupported operating system").
			WithContext("os", runtime.GOOS)
	}
	slog.Debug("Operating system supported", logfields.OS(runtime.GOOS))
	return nil
}

// DetectTool probes PATH for the supported generators in priority order.
// At most one tool is ever selected; none found is fatal.
func DetectTool() (*Detection, error) {
	for _, candidate := range toolCandidates {
		for _, binary := range candidate.binaries {
			path, err := exec.LookPath(binary)
			if err != nil {
				continue
			}
			slog.Info("Detected documentation tool",
				logfields.Tool(string(candidate.tool)),
				logfields.Path(path))
			return &Detection{Tool: candidate.tool, Binary: binary, Path: path}, nil
		}
	}
	return nil, errors.New(errors.CategoryPlatform,
		"no supported documentation tool found (jsdoc, swagger-cli, doxygen)")
}

// MissingRuntimes returns the auxiliary runtimes absent from PATH.
// Callers log these as warnings and continue.
func MissingRuntimes() []string {
	var missing []string
	for _, name := range auxiliaryRuntimes {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
