package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyTool       = "tool"
	KeyEnv        = "environment"
	KeyStage      = "stage"
	KeyOS         = "os"
	KeyPath       = "path"
	KeyLogFile    = "log_file"
	KeySubject    = "subject"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Tool(t string) slog.Attr         { return slog.String(KeyTool, t) }
func Environment(e string) slog.Attr  { return slog.String(KeyEnv, e) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func OS(name string) slog.Attr        { return slog.String(KeyOS, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func LogFile(p string) slog.Attr      { return slog.String(KeyLogFile, p) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
