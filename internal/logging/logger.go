// Package logging provides the structured logger used by ksecret. Logging is
// off unless a log file is configured: standard output carries the secret
// value and standard error carries the single error line, so diagnostics go
// to a rotated file instead.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/klog/v2"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	// FormatText outputs human-readable text logs
	FormatText LogFormat = "text"
	// FormatJSON outputs structured JSON logs
	FormatJSON LogFormat = "json"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath string
	Level    slog.Level
	Format   LogFormat
	// MaxSizeMB and MaxBackups control rotation; zero picks the defaults
	MaxSizeMB  int
	MaxBackups int
}

var (
	globalLogger *slog.Logger
	noopLogger   = slog.New(slog.NewTextHandler(io.Discard, nil))
	writer       *lumberjack.Logger
)

// Init sets up the global logger. With an empty FilePath logging stays
// disabled.
func Init(config Config) error {
	if err := Shutdown(); err != nil {
		return err
	}

	if config.FilePath == "" {
		globalLogger = noopLogger
		return nil
	}

	if config.MaxSizeMB == 0 {
		config.MaxSizeMB = defaultMaxSizeMB
	}
	if config.MaxBackups == 0 {
		config.MaxBackups = defaultMaxBackups
	}

	writer = &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	globalLogger = slog.New(handler).With("app", "ksecret")

	// client-go logs through klog; send it to the same file
	klog.SetSlogLogger(globalLogger.With("source", "client-go"))

	return nil
}

// Get returns the global logger, a no-op one when logging is disabled
func Get() *slog.Logger {
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

// IsEnabled reports whether a log file is configured
func IsEnabled() bool {
	return Get() != noopLogger
}

// Debug logs a debug message using the global logger
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message using the global logger
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the global logger
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// ParseLevel converts a string to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to LogFormat, defaulting to text
func ParseFormat(format string) LogFormat {
	if format == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// Shutdown closes the log file, if any, and disables logging
func Shutdown() error {
	globalLogger = nil
	if writer == nil {
		return nil
	}
	klog.ClearLogger()
	err := writer.Close()
	writer = nil
	return err
}
