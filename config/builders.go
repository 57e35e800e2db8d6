// config/builders.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/deploymenttheory/go-graph-user-search/apiintegrations/aad"
	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/graphclient"
	"github.com/deploymenttheory/go-graph-user-search/httpclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
)

// BuildLogger creates the logger described by the logging settings. With toFile set, output
// always goes to a file: LogExportPath when given, otherwise a timestamped file in the temp
// directory.
func (c *Config) BuildLogger(toFile bool) (logger.Logger, error) {
	path := c.LogExportPath
	if toFile && path == "" {
		path = filepath.Join(os.TempDir(), "graphusersearch")
	}

	if path != "" {
		resolved, err := logger.EnsureLogFilePath(path)
		if err != nil {
			return nil, fmt.Errorf("preparing log file %s: %w", path, err)
		}
		path = resolved
	}

	return logger.BuildLogger(logger.ParseLogLevelFromString(c.LogLevel), c.LogOutputFormat, c.LogConsoleSeparator, path), nil
}

// BuildCredential creates the Azure AD credential for the configured auth method.
func (c *Config) BuildCredential(log logger.Logger) (azcore.TokenCredential, error) {
	return authenticationhandler.NewTokenCredential(c.Auth.AuthMethod, c.Auth.Credentials(), log)
}

// HTTPClientTemplate returns the transport settings shared by the generic clients.
func (c *Config) HTTPClientTemplate() httpclient.ClientConfig {
	return httpclient.ClientConfig{
		HideSensitiveData:     c.HideSensitiveData,
		MaxConcurrentRequests: c.MaxConcurrentRequests,
		RequestsPerSecond:     c.RequestsPerSecond,
		CustomTimeout:         c.CustomTimeout.Duration(),
		FollowRedirects:       c.ShouldFollowRedirects(),
		MaxRedirects:          c.MaxRedirects,
		ProxyURL:              c.ProxyURL,
	}
}

// NewAadClientFactory builds the generic client factory. Requests for the configured resource
// go to GraphBaseURL when it differs from the resource URI.
func (c *Config) NewAadClientFactory(cred azcore.TokenCredential, log logger.Logger) *aad.ClientFactory {
	factory := aad.NewClientFactory(authenticationhandler.NewAuthTokenHandler(cred, log), c.HTTPClientTemplate(), log)
	resource := strings.TrimRight(c.Resource, "/")
	base := strings.TrimRight(c.GraphBaseURL, "/")
	if resource != "" && base != "" && base != resource {
		factory.BaseDomainOverrides[resource] = base
	}
	return factory
}

// NewGraphFactory builds the typed Graph client factory.
func (c *Config) NewGraphFactory(cred azcore.TokenCredential, log logger.Logger) *graphclient.Factory {
	return graphclient.NewFactory(graphclient.Config{
		BaseURL:               c.GraphBaseURL,
		DefaultVersion:        c.GraphVersion,
		Credential:            cred,
		Timeout:               c.CustomTimeout.Duration(),
		MaxConcurrentRequests: c.MaxConcurrentRequests,
		FollowRedirects:       c.ShouldFollowRedirects(),
		MaxRedirects:          c.MaxRedirects,
		ProxyURL:              c.ProxyURL,
		HideSensitiveData:     c.HideSensitiveData,
	}, log)
}

// NewComponent wires a search component from the configuration. Clients are created lazily by
// the factories, so no network access happens here.
func (c *Config) NewComponent(log logger.Logger, opts ...usersearch.Option) (*usersearch.Component, error) {
	cred, err := c.BuildCredential(log)
	if err != nil {
		return nil, err
	}
	opts = append([]usersearch.Option{
		usersearch.WithResource(c.Resource),
		usersearch.WithAPIVersion(c.GraphVersion),
	}, opts...)
	return usersearch.NewComponent(c.ClientMode, c.NewAadClientFactory(cred, log), c.NewGraphFactory(cred, log), log, opts...), nil
}
