// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-graph-user-search/headers/redact"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req *http.Request // The http.Request for which headers are being managed
	log logger.Logger // The logger to use for logging headers
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request and logger.
func NewHeaderHandler(req *http.Request, log logger.Logger) *HeaderHandler {
	return &HeaderHandler{
		req: req,
		log: log,
	}
}

// SetAuthorization sets the Authorization header for the request.
func (h *HeaderHandler) SetAuthorization(token string) {
	// Ensure the token is prefixed with "Bearer " only once
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetClientRequestID sets the Graph correlation header. Graph echoes it back in
// error bodies so a failed search can be matched to a log line.
func (h *HeaderHandler) SetClientRequestID(requestID string) {
	if requestID != "" {
		h.req.Header.Set("client-request-id", requestID)
	}
}

// SetRequestHeaders applies a set of standard headers, routing Authorization through SetAuthorization.
func (h *HeaderHandler) SetRequestHeaders(standardHeaders map[string]string) {
	for header, value := range standardHeaders {
		if value == "" {
			continue
		}
		if http.CanonicalHeaderKey(header) == "Authorization" {
			h.SetAuthorization(value)
			continue
		}
		h.req.Header.Set(header, value)
	}
}

// LogHeaders writes the current request headers at debug level, redacting credentials
// when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	if h.log.GetLogLevel() > logger.LogLevelDebug {
		return
	}

	redactedHeaders := http.Header{}
	for name, values := range h.req.Header {
		if len(values) > 0 {
			redactedHeaders.Set(name, redact.RedactSensitiveHeaderData(hideSensitiveData, name, values[0]))
		}
	}

	h.log.Debug("HTTP Request Headers", zap.String("headers", HeadersToString(redactedHeaders)))
}

// HeadersToString converts a http.Header to a string for logging, one header per line in
// name order.
func HeadersToString(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader logs a warning when Graph flags the endpoint as deprecated.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader == "" {
		return
	}

	endpoint := ""
	if resp.Request != nil {
		endpoint = resp.Request.URL.String()
	}
	log.Warn("API endpoint is deprecated",
		zap.String("date", deprecationHeader),
		zap.String("endpoint", endpoint),
		zap.String("sunset", resp.Header.Get("Sunset")),
	)
}
