// config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/deploymenttheory/go-graph-user-search/usersearch"
)

// EnvPrefix is prepended to every environment variable name read by LoadConfigFromEnv.
const EnvPrefix = "GRAPH_SEARCH_"

// LoadConfigFromEnv overrides the values in config with any GRAPH_SEARCH_* environment
// variables that are set. A nil config starts from the zero value. Variables that are set but
// cannot be parsed are reported as errors rather than ignored.
func LoadConfigFromEnv(config *Config) (*Config, error) {
	if config == nil {
		config = &Config{}
	}

	if value, ok := lookupEnv("CLIENT_MODE"); ok {
		mode, err := usersearch.ParseClientMode(value)
		if err != nil {
			return nil, fmt.Errorf("%sCLIENT_MODE: %w", EnvPrefix, err)
		}
		config.ClientMode = mode
	}

	config.Resource = getEnvOrDefault("RESOURCE", config.Resource)
	config.GraphBaseURL = getEnvOrDefault("GRAPH_BASE_URL", config.GraphBaseURL)
	config.GraphVersion = getEnvOrDefault("GRAPH_VERSION", config.GraphVersion)

	// Auth
	config.Auth.AuthMethod = getEnvOrDefault("AUTH_METHOD", config.Auth.AuthMethod)
	config.Auth.TenantID = getEnvOrDefault("TENANT_ID", config.Auth.TenantID)
	config.Auth.ClientID = getEnvOrDefault("CLIENT_ID", config.Auth.ClientID)
	config.Auth.ClientSecret = getEnvOrDefault("CLIENT_SECRET", config.Auth.ClientSecret)
	config.Auth.CertificatePath = getEnvOrDefault("CERTIFICATE_PATH", config.Auth.CertificatePath)
	config.Auth.CertificatePassword = getEnvOrDefault("CERTIFICATE_PASSWORD", config.Auth.CertificatePassword)

	// HTTP
	var err error
	if config.HideSensitiveData, err = envBool("HIDE_SENSITIVE_DATA", config.HideSensitiveData); err != nil {
		return nil, err
	}
	if config.MaxConcurrentRequests, err = envInt("MAX_CONCURRENT_REQUESTS", config.MaxConcurrentRequests); err != nil {
		return nil, err
	}
	if value, ok := lookupEnv("REQUESTS_PER_SECOND"); ok {
		rps, parseErr := strconv.ParseFloat(value, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%sREQUESTS_PER_SECOND: %w", EnvPrefix, parseErr)
		}
		config.RequestsPerSecond = rps
	}
	if value, ok := lookupEnv("CUSTOM_TIMEOUT"); ok {
		timeout := ParseJSONDuration(value, -1)
		if timeout < 0 {
			return nil, fmt.Errorf("%sCUSTOM_TIMEOUT: invalid duration %q", EnvPrefix, value)
		}
		config.CustomTimeout = timeout
	}
	if value, ok := lookupEnv("FOLLOW_REDIRECTS"); ok {
		follow, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return nil, fmt.Errorf("%sFOLLOW_REDIRECTS: %w", EnvPrefix, parseErr)
		}
		config.FollowRedirects = &follow
	}
	if config.MaxRedirects, err = envInt("MAX_REDIRECTS", config.MaxRedirects); err != nil {
		return nil, err
	}
	config.ProxyURL = getEnvOrDefault("PROXY_URL", config.ProxyURL)

	// Logging
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)
	config.LogOutputFormat = getEnvOrDefault("LOG_OUTPUT_FORMAT", config.LogOutputFormat)
	config.LogConsoleSeparator = getEnvOrDefault("LOG_CONSOLE_SEPARATOR", config.LogConsoleSeparator)
	config.LogExportPath = getEnvOrDefault("LOG_EXPORT_PATH", config.LogExportPath)

	return config, nil
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + key)
}

// getEnvOrDefault returns the prefixed variable if it is set, otherwise defaultValue.
func getEnvOrDefault(key string, defaultValue string) string {
	if value, exists := lookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func envBool(key string, current bool) (bool, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return current, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return current, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return result, nil
}

func envInt(key string, current int) (int, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return current, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return current, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return result, nil
}
