// apiintegrations/aad/aad_client_factory.go
package aad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/httpclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

// ClientFactory hands out authenticated generic HTTP clients, one per resource URI.
// Clients are built on first use and reused afterwards.
type ClientFactory struct {
	// Template supplies the transport settings; its Integration field is ignored.
	Template httpclient.ClientConfig
	// BaseDomainOverrides redirects requests for a resource to another host, e.g. a national cloud or test server.
	BaseDomainOverrides map[string]string

	tokens *authenticationhandler.AuthTokenHandler
	logger logger.Logger

	mu      sync.Mutex
	clients map[string]*httpclient.Client
}

// NewClientFactory creates a factory issuing tokens through tokens.
func NewClientFactory(tokens *authenticationhandler.AuthTokenHandler, template httpclient.ClientConfig, log logger.Logger) *ClientFactory {
	return &ClientFactory{
		Template:            template,
		BaseDomainOverrides: map[string]string{},
		tokens:              tokens,
		logger:              log,
		clients:             make(map[string]*httpclient.Client),
	}
}

// GetClient returns the generic client bound to resource.
func (f *ClientFactory) GetClient(_ context.Context, resource string) (*httpclient.Client, error) {
	resource = strings.TrimRight(strings.TrimSpace(resource), "/")
	if resource == "" {
		return nil, errors.New("resource uri is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[resource]; ok {
		return client, nil
	}

	config := f.Template
	config.Integration = &Integration{
		Resource:   resource,
		BaseDomain: f.BaseDomainOverrides[resource],
		Tokens:     f.tokens,
		Logger:     f.logger,
	}

	client, err := httpclient.BuildClient(config, true, f.logger.With(zap.String("resource", resource)))
	if err != nil {
		return nil, fmt.Errorf("building client for %s: %w", resource, err)
	}

	f.clients[resource] = client
	return client, nil
}
