// Package log provides leveled diagnostic logging for copycheck. User-facing
// report output goes to stdout directly; this logger is for diagnostics.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = NewLogger()

// Logger wraps a logrus logger with the formatting used across the app.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// NewLogger creates a logger with the standard text layout.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.InfoLevel)

	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// SetDebug toggles debug-level output on the package logger.
func SetDebug(debug bool) {
	std.SetDebug(debug)
}

// SetDebug toggles debug-level output.
func (lg *Logger) SetDebug(debug bool) {
	if debug {
		lg.l.SetLevel(logrus.DebugLevel)
	} else {
		lg.l.SetLevel(logrus.InfoLevel)
	}
}

// Info logs a message at info level
func (lg *Logger) Info(msg string) { lg.l.Info(msg) }

// Infof logs a formatted message at info level
func (lg *Logger) Infof(format string, args ...interface{}) { lg.l.Infof(format, args...) }

// Warn logs a message at warning level
func (lg *Logger) Warn(msg string) { lg.l.Warn(msg) }

// Warnf logs a formatted message at warning level
func (lg *Logger) Warnf(format string, args ...interface{}) { lg.l.Warnf(format, args...) }

// Error logs a message at error level
func (lg *Logger) Error(msg string) { lg.l.Error(msg) }

// Errorf logs a formatted message at error level
func (lg *Logger) Errorf(format string, args ...interface{}) { lg.l.Errorf(format, args...) }

// Debug logs a message at debug level
func (lg *Logger) Debug(msg string) { lg.l.Debug(msg) }

// Debugf logs a formatted message at debug level
func (lg *Logger) Debugf(format string, args ...interface{}) { lg.l.Debugf(format, args...) }

// WithField returns an entry with one structured field attached.
func (lg *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return lg.l.WithField(key, value)
}

// Package-level helpers delegating to the default logger

func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }
func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }

// lineFormatter renders entries as "[timestamp] LEVEL: message".
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if entry.Level == logrus.WarnLevel {
		level = "WARN"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		level,
		entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
