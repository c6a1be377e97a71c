// Package cli implements the gdiff command-line interface.
//
// The commands load two contact maps, run the diff/merge engine and write
// the derivative graphs. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - diff: matrix mode, both diffs plus recoloured references
//   - union: one merged graph with provenance colours
//   - recolor: flat recolour and font resize of a single map
//   - watch: re-run a diff whenever an input changes
//   - inspect: browse the provenance of every node interactively
//   - palette: show the effective palette
//   - config: locate, show or create the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Ambiguous labels tolerated under
// --ambiguity=first are reported here, never by the engine.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gdiff/pkg/graph"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to
// w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Wrote 4 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logWarnings reports every tolerated ambiguity.
func logWarnings(l *log.Logger, warnings []graph.Warning) {
	for _, w := range warnings {
		l.Warn("ambiguous label", "path", w.Path.String(), "matches", w.Matches)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
