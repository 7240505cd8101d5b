package runner

import (
	"fmt"
	"io"
)

// Logger is the sink one invocation reports through: one log line per
// diagnostic, errors on their own channel, and a dump channel for
// structured values.
type Logger interface {
	Logf(format string, args ...any)
	Errorf(format string, args ...any)
	Dump(v any)
}

// StdLogger writes log/dump lines to Out and errors to Err.
type StdLogger struct {
	Out io.Writer
	Err io.Writer
}

func (l *StdLogger) Logf(format string, args ...any) {
	fmt.Fprintf(l.Out, format+"\n", args...)
}

func (l *StdLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.Err, format+"\n", args...)
}

func (l *StdLogger) Dump(v any) {
	fmt.Fprintf(l.Out, "%+v\n", v)
}

// Discard returns a logger that drops everything.
func Discard() *StdLogger {
	return &StdLogger{Out: io.Discard, Err: io.Discard}
}
