// zaplogger_logger.go
// Ref: https://betterstack.com/community/guides/logging/go/zap/#logging-errors-with-zap
package logger

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultLogger is an implementation of the Logger interface using Uber's zap logging library.
// The logLevel field controls the verbosity of the logs that this logger will produce.
type defaultLogger struct {
	logger   *zap.Logger
	logLevel LogLevel
}

// Logger interface with structured logging capabilities at various levels.
type Logger interface {
	GetLogLevel() LogLevel
	SetLevel(level LogLevel)
	With(fields ...zapcore.Field) Logger
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field) error
	Sync() error

	LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration)
	LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string)
}

// NewLogger wraps an existing zap logger. It is mostly useful in tests, where an
// observer core or zap.NewNop() stands in for the real output.
func NewLogger(zl *zap.Logger, level LogLevel) Logger {
	return &defaultLogger{logger: zl, logLevel: level}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &defaultLogger{logger: zap.NewNop(), logLevel: LogLevelNone}
}

// GetLogLevel returns the current logging level of the logger.
func (d *defaultLogger) GetLogLevel() LogLevel {
	return d.logLevel
}

// SetLevel updates the logging level of the logger.
func (d *defaultLogger) SetLevel(level LogLevel) {
	d.logLevel = level
}

// With adds contextual key-value pairs to the logger, returning a new logger instance with the context.
func (d *defaultLogger) With(fields ...zapcore.Field) Logger {
	return &defaultLogger{
		logger:   d.logger.With(fields...),
		logLevel: d.logLevel,
	}
}

// Debug logs a message at the Debug level.
func (d *defaultLogger) Debug(msg string, fields ...zapcore.Field) {
	if d.logLevel <= LogLevelDebug {
		d.logger.Debug(msg, fields...)
	}
}

// Info logs a message at the Info level.
func (d *defaultLogger) Info(msg string, fields ...zapcore.Field) {
	if d.logLevel <= LogLevelInfo {
		d.logger.Info(msg, fields...)
	}
}

// Warn logs a message at the Warn level.
func (d *defaultLogger) Warn(msg string, fields ...zapcore.Field) {
	if d.logLevel <= LogLevelWarn {
		d.logger.Warn(msg, fields...)
	}
}

// Error logs a message at the Error level and returns an error carrying the same message,
// so call sites can log and return in one statement.
func (d *defaultLogger) Error(msg string, fields ...zapcore.Field) error {
	if d.logLevel <= LogLevelError {
		d.logger.Error(msg, fields...)
	}
	return errors.New(msg)
}

// Sync flushes any buffered log entries.
func (d *defaultLogger) Sync() error {
	return d.logger.Sync()
}
