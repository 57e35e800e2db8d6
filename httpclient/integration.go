// httpclient/integration.go
package httpclient

import (
	"context"
	"net/http"
)

// APIIntegration supplies what the generic client needs to talk to one API: a bearer token
// for the bound resource, the base URL requests are sent to, and any API-specific headers.
type APIIntegration interface {
	Token(ctx context.Context) (string, error)
	Domain() string
	SetRequestHeaders(req *http.Request)

	// Info
	AuthMethodDescriptor() string
}
