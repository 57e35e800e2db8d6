// httpclient/timeouts.go
package httpclient

import (
	"net/http"
	"time"
)

// ModifyHttpTimeout changes the overall timeout applied to subsequent requests. Requests
// already in flight keep the timeout they started with.
func (c *Client) ModifyHttpTimeout(newTimeout time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	updated := *c.http
	updated.Timeout = newTimeout
	c.http = &updated
}

// Timeout returns the timeout currently applied to requests.
func (c *Client) Timeout() time.Duration {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.http.Timeout
}

func (c *Client) httpClient() *http.Client {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.http
}
