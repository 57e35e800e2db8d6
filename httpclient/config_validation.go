// httpclient/config_validation.go
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultMaxConcurrentRequests = 5
	DefaultCustomTimeout         = 30 * time.Second
	DefaultFollowRedirects       = true
	DefaultMaxRedirects          = 5
)

// validateClientConfig checks the client configuration, optionally filling in defaults first.
func validateClientConfig(config *ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		setClientDefaultValues(config)
	}

	if config.Integration == nil {
		return errors.New("no api integration supplied, please provide one")
	}

	if config.MaxConcurrentRequests < 1 {
		return errors.New("maximum concurrent requests cannot be less than 1")
	}

	if config.CustomTimeout < 0 {
		return errors.New("timeout cannot be negative")
	}

	if config.RequestsPerSecond < 0 {
		return errors.New("requests per second cannot be negative")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1 when redirects are followed")
	}

	if config.ProxyURL != "" {
		if _, err := url.ParseRequestURI(config.ProxyURL); err != nil {
			return fmt.Errorf("invalid proxy url: %w", err)
		}
	}

	return nil
}

func setClientDefaultValues(config *ClientConfig) {
	if config.MaxConcurrentRequests == 0 {
		config.MaxConcurrentRequests = DefaultMaxConcurrentRequests
	}
	if config.CustomTimeout == 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}
	if config.FollowRedirects && config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}
