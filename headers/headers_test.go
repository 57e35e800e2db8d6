// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSetAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://graph.microsoft.com/v1.0/users", nil)
	headerHandler := NewHeaderHandler(req, logger.NewNopLogger())

	headerHandler.SetAuthorization("test-token")
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))

	headerHandler.SetAuthorization("Bearer other-token")
	assert.Equal(t, "Bearer other-token", req.Header.Get("Authorization"))
}

func TestSetRequestHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://graph.microsoft.com/v1.0/users", nil)
	headerHandler := NewHeaderHandler(req, logger.NewNopLogger())

	headerHandler.SetRequestHeaders(map[string]string{
		"authorization": "abc",
		"Accept":        "application/json",
		"X-Empty":       "",
	})
	headerHandler.SetClientRequestID("1234")

	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "1234", req.Header.Get("client-request-id"))
	_, present := req.Header["X-Empty"]
	assert.False(t, present)
}

func TestLogHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://graph.microsoft.com/v1.0/users", nil)
	req.Header.Set("Authorization", "Bearer secret")
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", mock.MatchedBy(func(fields []zap.Field) bool {
		return len(fields) == 1 && fields[0].String == "Authorization: REDACTED"
	})).Once()

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertExpectations(t)
}

func TestLogHeaders_SkippedAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://graph.microsoft.com/v1.0/users", nil)
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelInfo)

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "agent")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/plain")

	assert.Equal(t, "Accept: application/json, text/plain\nUser-Agent: agent", HeadersToString(h))
}

func TestCheckDeprecationHeader(t *testing.T) {
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()

	resp := &http.Response{Header: http.Header{"Deprecation": []string{"Wed, 01 Jan 2025 00:00:00 GMT"}}}
	CheckDeprecationHeader(resp, mockLog)

	CheckDeprecationHeader(&http.Response{Header: http.Header{}}, mockLog)
	mockLog.AssertExpectations(t)
}
