package mandel

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/mandel/internal/parallel"
)

// silent drops every record. A render logs one Debug line per row, so
// reporting every level as disabled keeps those lines from being built
// when nobody installed a logger.
type silent struct{}

func (silent) Enabled(context.Context, slog.Level) bool  { return false }
func (silent) Handle(context.Context, slog.Record) error { return nil }
func (silent) WithAttrs([]slog.Attr) slog.Handler        { return silent{} }
func (silent) WithGroup(string) slog.Handler             { return silent{} }

// current is the logger used by Render and its writer. It can be swapped
// while a render is in flight.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(silent{}))
}

// SetLogger routes mandel's log output, including that of the engine
// pool and row barrier, to l. A nil l turns logging off again, which is
// also the state before the first call.
//
// Render logs:
//   - Info when a render starts and finishes, and the output path once
//     RenderFile has committed its bitmap
//   - Debug for every written row and for engine pool start and stop
//   - Warn when a render is aborted or the row barrier is broken
//
// The command-line tool installs a text handler on stderr:
//
//	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(silent{})
	}
	current.Store(l)
	parallel.SetLogger(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return current.Load()
}
