// Package logger provides the small structured logger threaded through the
// index builder pipeline, in place of ambient log.Printf calls.
package logger

import (
	"fmt"
	"io"
	"log"
)

// Logger wraps the standard library logger with a settable prefix and an
// optional hook, so callers (CLI entry points, tests) can observe log lines
// without scraping stdout.
type Logger struct {
	onLog  func(format string, a ...any)
	logger *log.Logger
	prefix string
}

// New constructs a Logger that discards output until SetOutput is called.
func New() *Logger {
	logger := log.New(io.Discard, "", log.Default().Flags())

	return &Logger{
		onLog:  func(format string, a ...any) {},
		logger: logger,
		prefix: "",
	}
}

// SetPrefix sets the prefix prepended to every log line, e.g. the component
// name ("phash", "builder", "eh").
func (l *Logger) SetPrefix(prefix string) {
	l.logger.SetPrefix(prefix)
	l.prefix = fmt.Sprintf("%s: ", prefix)
}

func (l *Logger) GetPrefix() string {
	return l.logger.Prefix()
}

func (l *Logger) Writer() io.Writer {
	return l.logger.Writer()
}

func (l *Logger) SetOutput(writer io.Writer) {
	l.logger.SetOutput(writer)
}

// SetOnLog installs a hook invoked with every formatted log line, in
// addition to the underlying log.Logger write.
func (l *Logger) SetOnLog(hook func(format string, a ...any)) {
	l.onLog = hook
}

func (l *Logger) Log(format string, a ...any) {
	newFmt := fmt.Sprintf("%s%s", l.prefix, format)
	if l.onLog != nil {
		l.onLog(newFmt, a...)
	}
	newFmt += "\n"
	l.logger.Printf(newFmt, a...)
}

// Warn is a Log variant prefixed with a diagnostic marker, used for
// non-fatal conditions such as an unmapped MangaDex language code or a
// failed wiki lookup.
func (l *Logger) Warn(format string, a ...any) {
	l.Log("warning: "+format, a...)
}
