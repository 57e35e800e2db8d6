// httpclient/client.go
/* The `httpclient` package provides the generic, authenticated HTTP client used for plain REST
calls to Microsoft Graph. Authentication is delegated to an APIIntegration which supplies a bearer
token for one resource. The client bounds concurrent requests, applies an optional client-side
request rate, follows the configured redirect policy and parses error bodies into structured
errors. Requests are sent exactly once; there is no retry logic. */
package httpclient

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/concurrency"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/proxy"
	"github.com/deploymenttheory/go-graph-user-search/redirecthandler"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Master struct/object
type Client struct {
	// Private
	config  ClientConfig
	http    *http.Client
	limiter *rate.Limiter
	lock    sync.Mutex

	// Exported
	Logger      logger.Logger
	Concurrency *concurrency.ConcurrencyHandler
	Integration APIIntegration
}

// Options/Variables for Client
type ClientConfig struct {
	Integration APIIntegration

	HideSensitiveData bool

	MaxConcurrentRequests int
	RequestsPerSecond     float64 // 0 disables client-side rate limiting
	CustomTimeout         time.Duration
	FollowRedirects       bool
	MaxRedirects          int
	ProxyURL              string
}

// BuildClient creates a new HTTP client with the provided configuration. When populateDefaultValues
// is true, zero-valued settings are replaced with their defaults before validation.
func BuildClient(config ClientConfig, populateDefaultValues bool, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := validateClientConfig(&config, populateDefaultValues); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Debug("initializing new http client", zap.String("domain", config.Integration.Domain()))

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := proxy.InitializeProxy(httpClient, config.ProxyURL, log); err != nil {
		return nil, err
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log); err != nil {
		return nil, fmt.Errorf("setting up redirect handler: %w", err)
	}

	concurrencyHandler := concurrency.NewConcurrencyHandler(
		config.MaxConcurrentRequests,
		log,
		&concurrency.ConcurrencyMetrics{},
	)

	client := &Client{
		config:      config,
		http:        httpClient,
		limiter:     newLimiter(config.RequestsPerSecond),
		Logger:      log,
		Concurrency: concurrencyHandler,
		Integration: config.Integration,
	}

	log.Debug("New API client initialized",
		zap.String("authentication_method", config.Integration.AuthMethodDescriptor()),
		zap.Bool("hide_sensitive_data", config.HideSensitiveData),
		zap.Int("max_concurrent_requests", config.MaxConcurrentRequests),
		zap.Float64("requests_per_second", config.RequestsPerSecond),
		zap.Bool("follow_redirects", config.FollowRedirects),
		zap.Int("max_redirects", config.MaxRedirects),
		zap.Duration("custom_timeout", config.CustomTimeout),
		zap.Bool("proxy_enabled", config.ProxyURL != ""),
	)

	return client, nil
}

// newLimiter returns nil when rps is not positive, which DoRequest treats as unlimited.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
