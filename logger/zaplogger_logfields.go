// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestEnd logs the completion of an HTTP request, including the HTTP method, URL, status code, and duration.
func (d *defaultLogger) LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelInfo {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		}
		d.logger.Info("HTTP request completed", fields...)
	}
}

// LogError logs an error that occurs during the processing of an HTTP request.
func (d *defaultLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	if d.logLevel <= LogLevelError {
		errorMessage := ""
		if err != nil {
			errorMessage = err.Error()
		}
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.String("status_message", serverStatusMessage),
			zap.String("error_message", errorMessage),
			zap.String("raw_response", rawResponse),
		}
		d.logger.Error("Error during HTTP request", fields...)
	}
}
