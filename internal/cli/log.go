// Package cli implements the pipegraph command-line interface.
//
// Every editing command follows the same cycle: load the document named by
// --file, apply one pure topology edit, and write the result back (or to
// --output). A failed edit leaves the file untouched.
//
// # Commands
//
//   - init: create an empty document with optional global settings
//   - add source|transform|sink: add a component
//   - link, unlink: connect or disconnect two components
//   - inject before|after: insert a transform next to a component
//   - remove, rename, set: whole-component edits
//   - show, check: print or lint the document
//   - graph: render an SVG or DOT diagram (SVGs are cached)
//   - cache: manage the diagram cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers can log without a CLI receiver.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: leveled, timestamped "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a slow step, such as an SVG render, and logs its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info with the elapsed time in milliseconds,
// e.g. "Rendered SVG (212ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this before every
// subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that never passed through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
