// Package logger builds the logharbour logger shared by the user service.
package logger

import (
	"io"
	"os"

	"github.com/remiges-tech/logharbour/logharbour"
)

// New returns a logharbour logger for app writing to w, falling back to
// stderr when w fails. With debug set, debug entries up to Debug2 are
// written too.
func New(app string, w io.Writer, debug bool) *logharbour.Logger {
	if w == nil {
		w = os.Stdout
	}
	lctx := logharbour.NewLoggerContext(logharbour.DefaultPriority)
	if debug {
		lctx.ChangeMinLogPriority(logharbour.Debug2)
	}
	fallbackWriter := logharbour.NewFallbackWriter(w, os.Stderr)
	return logharbour.NewLogger(lctx, app, fallbackWriter)
}

// Discard returns a logger that drops every entry. Tests use it.
func Discard() *logharbour.Logger {
	return logharbour.NewLogger(&logharbour.LoggerContext{}, "test", io.Discard)
}
