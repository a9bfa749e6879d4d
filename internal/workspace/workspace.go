// Package workspace handles the working directories of a documentation run:
// creation, static-asset copying and temp cleanup.
package workspace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/logfields"
)

// Manager handles workspace directory operations for one run.
type Manager struct {
	dirs      []string
	tempDir   string
	staticDir string
	outputDir string
}

// NewManager creates a workspace manager over the fixed run directories.
func NewManager(dirs []string, tempDir, staticDir, outputDir string) *Manager {
	return &Manager{dirs: dirs, tempDir: tempDir, staticDir: staticDir, outputDir: outputDir}
}

// EnsureDirectories creates every required directory that is missing.
// MkdirAll makes a second run a no-op. Any failure is fatal.
func (m *Manager) EnsureDirectories() error {
	for _, dir := range m.dirs {
		if _, err := os.Stat(dir); err == nil {
			slog.Debug("Directory exists", logfields.Path(dir))
			continue
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, "failed to create directory").
				WithContext("path", dir)
		}
		slog.Info("Created directory", logfields.Path(dir))
	}
	return nil
}

// CopyStaticAssets copies the optional static-assets tree into the output
// directory. Absence of the tree and copy failures are warnings only.
func (m *Manager) CopyStaticAssets() error {
	info, err := os.Stat(m.staticDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No static assets directory", logfields.Path(m.staticDir))
			return nil
		}
		return errors.WrapWarning(err, errors.CategoryFileSystem, "failed to stat static assets")
	}
	if !info.IsDir() {
		return errors.Warning(errors.CategoryFileSystem, "static assets path is not a directory").
			WithContext("path", m.staticDir)
	}

	count := 0
	err = filepath.WalkDir(m.staticDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(m.staticDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(m.outputDir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return errors.WrapWarning(err, errors.CategoryFileSystem, "failed to copy static assets")
	}

	slog.Info("Copied static assets", logfields.Path(m.outputDir), slog.Int("files", count))
	return nil
}

// CleanTemp removes the contents of the temp directory, keeping the
// directory itself. Failures are warnings only.
func (m *Manager) CleanTemp() error {
	entries, err := os.ReadDir(m.tempDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWarning(err, errors.CategoryFileSystem, "failed to read temp directory")
	}

	for _, entry := range entries {
		path := filepath.Join(m.tempDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return errors.WrapWarning(err, errors.CategoryFileSystem, "failed to clean temp directory").
				WithContext("path", path)
		}
	}

	slog.Info("Cleaned temp directory", logfields.Path(m.tempDir), slog.Int("entries", len(entries)))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create parent of %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}
