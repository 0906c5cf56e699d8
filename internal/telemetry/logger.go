// Package telemetry is the run's ambient logging and metrics surface:
// a zerolog logger and a small set of prometheus collectors, neither
// gated behind spec.md's feature Non-goals (spec.md §9 observability
// note).
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the logger's output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Debug  bool
	Format Format
	Output io.Writer
}

// Logger wraps zerolog with the event taxonomy of spec.md §7:
// malformed-record/invalid-ip log at Debug, invariant-violation at
// Warn without aborting, io-error/configuration-error at Error before
// the process exits non-zero.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger builds a Logger per cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	if cfg.Debug {
		zl = zl.Level(zerolog.DebugLevel)
	} else {
		zl = zl.Level(zerolog.InfoLevel)
	}
	return &Logger{zl: zl}
}

// MalformedRecord logs a skipped input line at Debug.
func (l *Logger) MalformedRecord(line string, err error) {
	l.zl.Debug().Str("line", line).Err(err).Msg("malformed record, skipping")
}

// InvariantViolation logs at Warn and never aborts the run.
func (l *Logger) InvariantViolation(invariant string, err error) {
	l.zl.Warn().Str("invariant", invariant).Err(err).Msg("invariant violation")
}

// IOError logs at Error; the caller controls the exit path.
func (l *Logger) IOError(err error) {
	l.zl.Error().Err(err).Msg("io error")
}

// ConfigurationError logs at Error; the caller controls the exit path.
func (l *Logger) ConfigurationError(err error) {
	l.zl.Error().Err(err).Msg("configuration error")
}

// Info logs an informational message with optional key/value pairs.
func (l *Logger) Info(msg string, kv ...interface{}) {
	event := l.zl.Info()
	addFields(event, kv...)
	event.Msg(msg)
}

func addFields(event *zerolog.Event, kv ...interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		event.Interface(key, kv[i+1])
	}
}
