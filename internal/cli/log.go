package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hupe1980/cayley"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// graphLogger routes the library's structured logs into l.
func graphLogger(l *log.Logger) *cayley.Logger {
	return cayley.NewLogger(l)
}

// progress logs completion of an operation together with its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "search finished (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
