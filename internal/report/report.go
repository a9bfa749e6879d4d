// Package report renders a small HTML summary of the latest generation run
// into the output directory.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/history"
	"git.home.luguber.info/inful/docgen/internal/logfields"
)

const reportFileName = "build-report.html"

// Summary composes the markdown run summary.
func Summary(run *history.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Documentation build report\n\n")
	fmt.Fprintf(&b, "- **Run**: `%s`\n", run.ID)
	fmt.Fprintf(&b, "- **Tool**: %s\n", run.Tool)
	fmt.Fprintf(&b, "- **Environment**: %s\n", run.Environment)
	if run.Commit != "" {
		fmt.Fprintf(&b, "- **Source commit**: `%s`\n", run.Commit)
	}
	fmt.Fprintf(&b, "- **Status**: %s\n", run.Status)
	fmt.Fprintf(&b, "- **Started**: %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Duration**: %dms\n", run.Duration)
	if run.LogPath != "" {
		fmt.Fprintf(&b, "- **Log**: `%s`\n", run.LogPath)
	}
	return b.String()
}

// Write renders the run summary to <outputDir>/build-report.html.
// Best-effort: failures are warnings.
func Write(outputDir string, run *history.Run) error {
	md := goldmark.New()
	var html bytes.Buffer
	if err := md.Convert([]byte(Summary(run)), &html); err != nil {
		return errors.WrapWarning(err, errors.CategoryInternal, "failed to render run report")
	}

	target := filepath.Join(outputDir, reportFileName)
	if err := os.WriteFile(target, html.Bytes(), 0o644); err != nil {
		return errors.WrapWarning(err, errors.CategoryFileSystem, "failed to write run report").
			WithContext("path", target)
	}

	slog.Info("Wrote build report", logfields.Path(target))
	return nil
}
