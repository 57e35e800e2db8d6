// redirecthandler/redirecthandler.go
package redirecthandler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger           logger.Logger
	MaxRedirects     int      // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders []string // Headers removed when a redirect leaves the original host.
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Logger:           log,
		MaxRedirects:     maxRedirects,
		SensitiveHeaders: []string{"Authorization", "Cookie", "Client-Request-Id"},
	}
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect is installed as http.Client.CheckRedirect. req already targets the new
// location; via holds the requests made so far, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("max_redirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	for _, previous := range via {
		if previous.URL.String() == req.URL.String() {
			r.Logger.Warn("Redirect loop detected", zap.String("url", req.URL.String()))
			return &RedirectLoopError{URL: req.URL.String()}
		}
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", req.Method))
		return http.ErrUseLastResponse
	}

	origin := via[0].URL
	if !strings.EqualFold(origin.Host, req.URL.Host) || (origin.Scheme == "https" && req.URL.Scheme != "https") {
		for _, header := range r.SensitiveHeaders {
			req.Header.Del(header)
		}
		r.Logger.Debug("Stripped sensitive headers on cross-host redirect", zap.String("target_host", req.URL.Host))
	}

	r.Logger.Info("Redirecting request",
		zap.String("original_url", via[len(via)-1].URL.String()),
		zap.String("new_url", req.URL.String()),
		zap.Int("redirect_count", len(via)),
	)
	return nil
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// SetupRedirectHandler configures the HTTP client for redirect handling. When followRedirects
// is false redirects are returned to the caller unfollowed.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) error {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return log.Error("Invalid maxRedirects value", zap.Int("max_redirects", maxRedirects))
	}

	NewRedirectHandler(log, maxRedirects).WithRedirectHandling(client)
	log.Debug("Redirect handling enabled", zap.Int("max_redirects", maxRedirects))
	return nil
}
