// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// stdout stays reserved for progress and results.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"mediagrab/internal/util"
)

// New returns a console logger writing to w at info level, or debug when
// verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !util.IsTerminal(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
