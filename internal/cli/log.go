package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stickfigures/pkg/errors"
)

// newLogger returns a logger writing to w at level, with short wall-clock
// timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// loadReport logs the single outcome of loading one data source.
type loadReport struct {
	logger *log.Logger
	source string
	start  time.Time
}

func newLoadReport(l *log.Logger, source string) loadReport {
	return loadReport{logger: l, source: source, start: time.Now()}
}

// loaded logs "Loaded N entities" with the elapsed time.
func (r loadReport) loaded(n int) {
	r.logger.Info("Loaded "+pluralize(n, "entity", "entities"),
		"source", r.source,
		"elapsed", time.Since(r.start).Round(time.Millisecond))
}

// failed logs err at error level. The code is the innermost one, which
// names the actual cause rather than the LOAD_FAILED wrapper.
func (r loadReport) failed(err error) {
	r.logger.Error("Load failed", "source", r.source, "code", errors.RootCode(err), "err", err)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() when a command runs without one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
