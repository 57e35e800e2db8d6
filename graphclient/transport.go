// graphclient/transport.go
package graphclient

import (
	"net/http"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/concurrency"
	"github.com/deploymenttheory/go-graph-user-search/headers"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/version"
)

// permitTransport holds a concurrency permit for the duration of each round trip and tags the
// request with the permit's ID as client-request-id.
type permitTransport struct {
	next              http.RoundTripper
	permits           *concurrency.ConcurrencyHandler
	logger            logger.Logger
	hideSensitiveData bool
}

func (t *permitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, requestID, err := t.permits.AcquireConcurrencyPermit(req.Context())
	if err != nil {
		return nil, err
	}
	defer t.permits.ReleaseConcurrencyPermit(requestID)

	outgoing := req.Clone(ctx)
	headerHandler := headers.NewHeaderHandler(outgoing, t.logger)
	headerHandler.SetClientRequestID(requestID.String())
	if outgoing.Header.Get("User-Agent") == "" {
		headerHandler.SetUserAgent(version.GetUserAgentHeader())
	}
	headerHandler.LogHeaders(t.hideSensitiveData)

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	resp, err := next.RoundTrip(outgoing)
	if err != nil {
		t.permits.RecordError()
		t.logger.LogError("request_error", outgoing.Method, outgoing.URL.String(), 0, "", err, "")
		return nil, err
	}

	t.logger.LogRequestEnd("request_end", outgoing.Method, outgoing.URL.String(), resp.StatusCode, time.Since(start))
	headers.CheckDeprecationHeader(resp, t.logger)
	if resp.StatusCode >= http.StatusBadRequest {
		t.permits.RecordError()
	}
	return resp, nil
}
