// httpclient/request.go
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/headers"
	"github.com/deploymenttheory/go-graph-user-search/response"
	"github.com/deploymenttheory/go-graph-user-search/status"
	"github.com/deploymenttheory/go-graph-user-search/version"
	"go.uber.org/zap"
)

// DoRequest sends one request to endpoint, a path plus optional query relative to the
// integration's domain, and decodes a successful body into out.
//
// The request is attempted exactly once. Failures to obtain a token, a permit or a response
// are returned as wrapped errors; non-2xx responses are returned as *response.APIError.
// The response body has been fully read and closed when DoRequest returns, so the returned
// *http.Response is only useful for its status and headers.
//
// Example:
//
//	var result UserCollection
//	resp, err := client.DoRequest(ctx, http.MethodGet, "/v1.0/users?$select=displayName", &result)
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, out any) (*http.Response, error) {
	log := c.Logger

	if !IsSafeHTTPMethod(method) {
		return nil, log.Error("HTTP method not supported", zap.String("method", method))
	}

	token, err := c.Integration.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring access token for %s: %w", c.Integration.Domain(), err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	ctx, requestID, err := c.Concurrency.AcquireConcurrencyPermit(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Concurrency.ReleaseConcurrencyPermit(requestID)

	url := strings.TrimRight(c.Integration.Domain(), "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	headerHandler := headers.NewHeaderHandler(req, log)
	headerHandler.SetAccept("application/json")
	headerHandler.SetUserAgent(version.GetUserAgentHeader())
	c.Integration.SetRequestHeaders(req)
	headerHandler.SetAuthorization(token)
	headerHandler.SetClientRequestID(requestID.String())
	headerHandler.LogHeaders(c.config.HideSensitiveData)

	startTime := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.Concurrency.RecordError()
		log.LogError("request_error", method, url, 0, "", err, "")
		return nil, fmt.Errorf("sending %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	log.LogRequestEnd("request_end", method, url, resp.StatusCode, time.Since(startTime))
	headers.CheckDeprecationHeader(resp, log)

	if status.IsSuccess(resp.StatusCode) {
		return resp, response.HandleAPISuccessResponse(resp, out, log)
	}

	if status.IsRedirectStatusCode(resp.StatusCode) {
		log.Warn("Redirect response received", zap.Int("status_code", resp.StatusCode), zap.String("location", resp.Header.Get("Location")))
	}

	c.Concurrency.RecordError()
	return resp, response.HandleAPIErrorResponse(resp, log)
}

// Get is shorthand for DoRequest with the GET method.
func (c *Client) Get(ctx context.Context, endpoint string, out any) (*http.Response, error) {
	return c.DoRequest(ctx, http.MethodGet, endpoint, out)
}
