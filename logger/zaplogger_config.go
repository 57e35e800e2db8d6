// zaplogger_config.go
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogOutputJSON    = "json"
	LogOutputConsole = "console"
)

// BuildLogger creates and returns a new zap logger instance wrapped in the Logger interface.
// Output goes to stderr unless logFilePath is set, in which case entries are appended to that
// file instead (the terminal UI owns the screen while it runs). The function panics if the logger
// cannot be initialized.
func BuildLogger(logLevel LogLevel, encoding string, logConsoleSeparator string, logFilePath string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()

	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"
	encoderCfg.CallerKey = "caller"
	encoderCfg.FunctionKey = "func"
	encoderCfg.StacktraceKey = "stacktrace"
	encoderCfg.LineEnding = zapcore.DefaultLineEnding
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder
	encoderCfg.EncodeName = zapcore.FullNameEncoder

	if encoding == LogOutputConsole {
		encoderCfg.ConsoleSeparator = logConsoleSeparator
		if logFilePath == "" {
			// Colors only make sense on a terminal.
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	} else {
		encoding = LogOutputJSON
	}

	// stdout carries command output, so console logging goes to stderr.
	outputPaths := []string{"stderr"}
	if logFilePath != "" {
		outputPaths = []string{logFilePath}
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(convertToZapLevel(logLevel)),
		Development:       false,
		Encoding:          encoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		Sampling:          nil,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger := zap.Must(config.Build())

	wrappedCore := &customCore{logger.Core()}
	wrappedLogger := zap.New(wrappedCore)

	return &defaultLogger{
		logger:   wrappedLogger,
		logLevel: logLevel,
	}
}
