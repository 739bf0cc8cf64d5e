package util

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnv selects the component logger level.
const LogLevelEnv = "HOSTPROBE_LOG_LEVEL"

var defaultLogger *zap.Logger

func init() {
	defaultLogger = NewLogger("hostprobe")
}

// NewLogger creates a console logger on stderr with the specified name.
// The probe's stdout carries reports, so logs never go there.
func NewLogger(name string) *zap.Logger {
	config := zap.Config{
		Level:    zap.NewAtomicLevelAt(parseLevel(os.Getenv(LogLevelEnv))),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named(name)
}

// parseLevel defaults to warn so probe commands stay quiet.
func parseLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.WarnLevel
	}
}

// GetLogger returns the default logger
func GetLogger() *zap.Logger {
	return defaultLogger
}

// Component returns the default logger named for a subsystem.
func Component(name string) *zap.Logger {
	return defaultLogger.Named(name)
}
