// Package logging provides the structured logger shared by fridamanager's
// components.
//
// Components accept the Logger interface and default to a no-op
// implementation, so library code stays silent unless the CLI wires in a
// real logger backed by charmbracelet/log.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// EnvDebug enables debug logging when set to any non-empty value.
const EnvDebug = "FRIDAMANAGER_DEBUG"

// Logger provides structured logging for fetch and status operations.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &noopLogger{}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// charmLogger adapts a charmbracelet/log logger to the Logger interface.
type charmLogger struct {
	l *log.Logger
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}

// Options configures a logger created by New.
type Options struct {
	// Verbose enables debug-level output.
	Verbose bool
	// Prefix is prepended to every line (default: "fridamanager").
	Prefix string
}

// New creates a Logger writing to w.
// Debug output is enabled by opts.Verbose or the FRIDAMANAGER_DEBUG variable.
func New(w io.Writer, opts Options) Logger {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "fridamanager"
	}

	l := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: false,
	})

	if opts.Verbose || os.Getenv(EnvDebug) != "" {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}

	return &charmLogger{l: l}
}
