package globe

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled is false so no attributes are built.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent    = slog.New(nopHandler{})
	loggerPtr atomic.Pointer[slog.Logger]
)

func init() {
	loggerPtr.Store(silent)
}

// SetLogger installs the logger shared by the renderer, the surface and the
// hosts. The renderer is silent until SetLogger is called; nil silences it
// again. Safe for concurrent use, including while a globe is rotating.
//
// Messages are prefixed with the emitting package ("globe:", "surface:").
// Per level:
//   - Debug: features skipped for malformed rings (once per load, with the
//     feature id), fetch results discarded after Deactivate, paint failures
//     on the surface, Deactivate itself
//   - Info: the map loaded, with byte, feature and ring counts and the fetch
//     time
//   - Warn: a failed fetch or an undecodable asset, just before the renderer
//     enters StateFailed; a missing label font on the surface
//
// The renderer itself logs nothing per rotation frame; use an Observer for
// per-frame data.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
