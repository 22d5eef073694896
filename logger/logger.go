// Package logger provides structured logging for the connector
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level      string // trace, debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// ParseLevel maps a level name to a zerolog level. Unknown names are info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "mongo-remoteagent").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}
	return zlog
}

// Nop returns a disabled logger
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ForRepository returns a logger for operations against one repository
func ForRepository(l zerolog.Logger, target, mode string) zerolog.Logger {
	return l.With().
		Str("component", "repository").
		Str("target", target).
		Str("mode", mode).
		Logger()
}

// ForOperation returns a logger for a single connector operation
func ForOperation(l zerolog.Logger, operation string) zerolog.Logger {
	return l.With().
		Str("operation", operation).
		Logger()
}

// LogOperation logs a completed operation with structured fields
func LogOperation(l zerolog.Logger, operation, docID string, duration time.Duration, err error) {
	event := l.Debug()
	if err != nil {
		event = l.Error().Err(err)
	}
	event.
		Str("operation", operation).
		Str("doc_id", docID).
		Dur("duration_ms", duration).
		Msg("Operation completed")
}
