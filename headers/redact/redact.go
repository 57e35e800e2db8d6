// headers/redact/redact.go
package redact

import "net/http"

// sensitiveKeys holds canonical header names whose values never reach the logs in clear text.
var sensitiveKeys = map[string]bool{
	"Accesstoken":         true,
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"Set-Cookie":          true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[http.CanonicalHeaderKey(key)] {
		return "REDACTED"
	}
	return value
}
