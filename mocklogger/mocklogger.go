// mocklogger/mocklogger.go
package mocklogger

import (
	"errors"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a testify mock of logger.Logger. Tests set expectations with On(...)
// using the message and a mock.Anything matcher for the field slice.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
}

// NewMockLogger creates a new instance of MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

var _ logger.Logger = (*MockLogger)(nil)

// GetLogLevel mocks the GetLogLevel method of the Logger interface.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	args := m.Called()
	return args.Get(0).(logger.LogLevel)
}

// SetLevel records the level and the call.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
	m.Called(level)
}

// With returns the same mock so expectations keep applying to derived loggers.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.Called(fields)
	return m
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Error records the call and returns the configured error, or one carrying msg when
// the expectation was set without a return value.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	args := m.Called(msg, fields)
	if len(args) > 0 {
		if err := args.Error(0); err != nil {
			return err
		}
	}
	return errors.New(msg)
}

// Sync mocks the Sync method.
func (m *MockLogger) Sync() error {
	args := m.Called()
	return args.Error(0)
}

// LogRequestEnd mocks the LogRequestEnd method.
func (m *MockLogger) LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration) {
	m.Called(event, method, url, statusCode, duration)
}

// LogError mocks the LogError method.
func (m *MockLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	m.Called(event, method, url, statusCode, serverStatusMessage, err, rawResponse)
}
