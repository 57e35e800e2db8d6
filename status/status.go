// status.go
// This package provides utility functions for classifying HTTP status codes returned by Microsoft Graph.
package status

import (
	"fmt"
	"net/http"
)

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
// Redirect status codes instruct the client to make a new request to a different URI, as defined in the response's Location header.
//
// - 301 Moved Permanently
// - 302 Found
// - 303 See Other
// - 307 Temporary Redirect
// - 308 Permanent Redirect
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsAuthFailure reports whether Graph rejected the caller's token or permissions. Searches
// that hit this usually mean the User.ReadBasic.All grant has not been approved.
func IsAuthFailure(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

// IsThrottled reports whether Graph asked the caller to slow down.
func IsThrottled(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode == http.StatusServiceUnavailable
}

// TranslateStatusCode provides a short human-readable explanation for the status codes
// Graph is known to return for directory queries.
func TranslateStatusCode(statusCode int) string {
	messages := map[int]string{
		http.StatusBadRequest:          "The request was malformed, usually an invalid $filter or $select expression.",
		http.StatusUnauthorized:        "The access token is missing, expired or issued for a different resource.",
		http.StatusForbidden:           "The caller lacks the permission required to read users.",
		http.StatusNotFound:            "The requested resource or API version does not exist.",
		http.StatusTooManyRequests:     "Too many requests were sent in a short period; the request was throttled.",
		http.StatusInternalServerError: "Microsoft Graph encountered an internal error.",
		http.StatusBadGateway:          "A gateway in front of Microsoft Graph returned an invalid response.",
		http.StatusServiceUnavailable:  "Microsoft Graph is temporarily unavailable.",
		http.StatusGatewayTimeout:      "The request timed out at a gateway in front of Microsoft Graph.",
	}

	if message, exists := messages[statusCode]; exists {
		return message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("Unknown status code: %d", statusCode)
}
