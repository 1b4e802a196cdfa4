package outline

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record; Enabled is false so nothing gets formatted.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used by outline and the packages built on
// it. The default logger is silent; nil restores it. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: per-trace segment and polygon counts
//   - [slog.LevelWarn]: stitching failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
