// Package log provides structured logging for the hostprobe CLI.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	logger = zerolog.New(output).
		With().
		Timestamp().
		Logger()

	// Probe commands print facts on stdout; only warnings reach stderr by default.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if level, err := zerolog.ParseLevel(lvl); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}
}

// SetOutput sets the logger output destination
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel sets the global log level
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Logger returns the underlying logger for callers that build their own events.
func Logger() *zerolog.Logger {
	return &logger
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// ErrorWithErr logs an error with the error object
func ErrorWithErr(err error, msg string) {
	logger.Error().Err(err).Msg(msg)
}

// FactFailed records a fact that could not be determined.
func FactFailed(fact string, err error) {
	logger.Warn().Str("fact", fact).Err(err).Msg("fact unavailable")
}

// WithFields returns an info event carrying the given fields
func WithFields(fields map[string]interface{}) *zerolog.Event {
	return logger.Info().Fields(fields)
}
