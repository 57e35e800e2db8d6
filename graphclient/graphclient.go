// graphclient/graphclient.go

/* Package graphclient provides the typed Microsoft Graph client used by the graph search mode.
Requests are described with a fluent RequestBuilder and executed through msgraph-sdk-go over an
http.Client that carries the module's proxy, redirect and concurrency settings. The SDK's default
middleware pipeline is not used, so no request is ever retried. */
package graphclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/concurrency"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/proxy"
	"github.com/deploymenttheory/go-graph-user-search/redirecthandler"
	"github.com/microsoft/kiota-abstractions-go/authentication"
	azauth "github.com/microsoft/kiota-authentication-azure-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Graph host used when Config.BaseURL is empty.
	DefaultBaseURL = "https://graph.microsoft.com"
	// DefaultVersion is the API version requests go to unless a builder picks another.
	DefaultVersion = "v1.0"
	// DefaultTimeout bounds each request when Config.Timeout is not positive. The kiota
	// adapter derives a context deadline from the http.Client timeout, so zero cannot mean unbounded.
	DefaultTimeout = 30 * time.Second
)

// Config holds the settings shared by every typed client the factory hands out.
type Config struct {
	BaseURL               string // Graph host without version, e.g. https://graph.microsoft.com
	DefaultVersion        string
	Credential            azcore.TokenCredential
	Timeout               time.Duration
	MaxConcurrentRequests int
	FollowRedirects       bool
	MaxRedirects          int
	ProxyURL              string
	HideSensitiveData     bool

	// AuthProvider replaces the azure identity provider built from Credential. Tests use
	// kiota's AnonymousAuthenticationProvider here.
	AuthProvider authentication.AuthenticationProvider
}

// Factory hands out typed Graph clients. The client is built once and shared.
type Factory struct {
	config Config
	logger logger.Logger

	once   sync.Once
	client *Client
	err    error
}

// NewFactory creates a Factory for config.
func NewFactory(config Config, log logger.Logger) *Factory {
	return &Factory{config: config, logger: log}
}

// GetClient returns the shared typed client, building it on first use.
func (f *Factory) GetClient(_ context.Context) (*Client, error) {
	f.once.Do(func() {
		f.client, f.err = newClient(f.config, f.logger)
	})
	return f.client, f.err
}

// Client wraps the Graph service clients for each API version requested through it.
type Client struct {
	baseURL        string
	defaultVersion string
	authProvider   authentication.AuthenticationProvider
	httpClient     *http.Client
	permits        *concurrency.ConcurrencyHandler
	logger         logger.Logger

	mu       sync.Mutex
	services map[string]*msgraphsdk.GraphServiceClient
}

func newClient(config Config, log logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid graph base url %q", config.BaseURL)
	}

	version := config.DefaultVersion
	if version == "" {
		version = DefaultVersion
	}

	authProvider := config.AuthProvider
	if authProvider == nil {
		if config.Credential == nil {
			return nil, errors.New("a token credential is required to build the graph client")
		}
		scopes := []string{authenticationhandler.ScopeForResource(baseURL)}
		authProvider, err = azauth.NewAzureIdentityAuthenticationProviderWithScopesAndValidHosts(config.Credential, scopes, []string{parsed.Hostname()})
		if err != nil {
			return nil, fmt.Errorf("creating graph authentication provider: %w", err)
		}
	}

	permits := concurrency.NewConcurrencyHandler(config.MaxConcurrentRequests, log, &concurrency.ConcurrencyMetrics{})

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if err := proxy.InitializeProxy(httpClient, config.ProxyURL, log); err != nil {
		return nil, err
	}
	maxRedirects := config.MaxRedirects
	if config.FollowRedirects && maxRedirects < 1 {
		maxRedirects = 5
	}
	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, maxRedirects, log); err != nil {
		return nil, err
	}
	httpClient.Transport = &permitTransport{
		next:              httpClient.Transport,
		permits:           permits,
		logger:            log,
		hideSensitiveData: config.HideSensitiveData,
	}

	log.Debug("Typed Graph client initialized", zap.String("base_url", baseURL), zap.String("default_version", version))

	return &Client{
		baseURL:        baseURL,
		defaultVersion: version,
		authProvider:   authProvider,
		httpClient:     httpClient,
		permits:        permits,
		logger:         log,
		services:       make(map[string]*msgraphsdk.GraphServiceClient),
	}, nil
}

// API starts a request for the given resource path, e.g. "users".
func (c *Client) API(path string) *RequestBuilder {
	return &RequestBuilder{
		client:  c,
		path:    strings.Trim(path, "/"),
		version: c.defaultVersion,
	}
}

// Permits exposes the concurrency handler guarding this client's requests.
func (c *Client) Permits() *concurrency.ConcurrencyHandler {
	return c.permits
}

// serviceClient returns the SDK client rooted at baseURL/version. The adapter's base URL must be
// set before the service client is constructed, since the SDK copies it into its path parameters.
func (c *Client) serviceClient(version string) (*msgraphsdk.GraphServiceClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if service, ok := c.services[version]; ok {
		return service, nil
	}

	adapter, err := msgraphsdk.NewGraphRequestAdapterWithParseNodeFactoryAndSerializationWriterFactoryAndHttpClient(c.authProvider, nil, nil, c.httpClient)
	if err != nil {
		return nil, fmt.Errorf("creating graph request adapter: %w", err)
	}
	adapter.SetBaseUrl(c.baseURL + "/" + version)

	service := msgraphsdk.NewGraphServiceClient(adapter)
	c.services[version] = service
	return service, nil
}
