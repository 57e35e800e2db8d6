// config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenantID = "72f988bf-86f1-41af-91ab-2d7cd011db47"
	testClientID = "00000000-1111-2222-3333-444444444444"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"clientMode": "graph",
		"auth": {"tenantId": "contoso.onmicrosoft.com", "clientId": "`+testClientID+`", "clientSecret": "s3cret"},
		"customTimeout": "45s",
		"followRedirects": false,
		"logLevel": "LogLevelDebug"
	}`)

	config, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, usersearch.ClientModeGraph, config.ClientMode)
	assert.Equal(t, "contoso.onmicrosoft.com", config.Auth.TenantID)
	assert.Equal(t, 45*time.Second, config.CustomTimeout.Duration())
	assert.False(t, config.ShouldFollowRedirects())
	assert.Equal(t, "LogLevelDebug", config.LogLevel)
}

func TestLoadConfigFromFile_Errors(t *testing.T) {
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfigFromFile(writeFile(t, "config.yaml", `{}`))
	assert.ErrorContains(t, err, "expected .json")

	_, err = LoadConfigFromFile(writeFile(t, "config.json", `{"clientMode": "both"}`))
	assert.ErrorContains(t, err, "unknown client mode")

	_, err = LoadConfigFromFile(writeFile(t, "config.json", `{"customTimeout": "soon"}`))
	assert.ErrorContains(t, err, "invalid duration")
}

func TestSaveConfigToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	original := &Config{ClientMode: usersearch.ClientModeGraph, ProxyURL: "http://proxy:8080"}
	SetDefaultValues(original)

	require.NoError(t, SaveConfigToFile(original, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveConfigToFile_Errors(t *testing.T) {
	assert.Error(t, SaveConfigToFile(nil, filepath.Join(t.TempDir(), "config.json")))
	assert.Error(t, SaveConfigToFile(&Config{}, filepath.Join(t.TempDir(), "config.txt")))
}

func TestSetDefaultValues(t *testing.T) {
	config := &Config{}
	SetDefaultValues(config)

	assert.Equal(t, usersearch.ClientModeAAD, config.ClientMode)
	assert.Equal(t, "https://graph.microsoft.com", config.Resource)
	assert.Equal(t, "https://graph.microsoft.com", config.GraphBaseURL)
	assert.Equal(t, "v1.0", config.GraphVersion)
	assert.Equal(t, DefaultAuthMethod, config.Auth.AuthMethod)
	assert.Equal(t, DefaultMaxConcurrentRequests, config.MaxConcurrentRequests)
	assert.Equal(t, DefaultTimeout, config.CustomTimeout)
	assert.True(t, config.ShouldFollowRedirects())
	assert.Equal(t, DefaultMaxRedirects, config.MaxRedirects)
	assert.Equal(t, DefaultLogLevel, config.LogLevel)
	assert.Equal(t, logger.LogOutputJSON, config.LogOutputFormat)

	follow := false
	custom := &Config{MaxConcurrentRequests: 2, FollowRedirects: &follow}
	SetDefaultValues(custom)
	assert.Equal(t, 2, custom.MaxConcurrentRequests)
	assert.False(t, custom.ShouldFollowRedirects())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GRAPH_SEARCH_CLIENT_MODE", "UseGraphClient")
	t.Setenv("GRAPH_SEARCH_TENANT_ID", testTenantID)
	t.Setenv("GRAPH_SEARCH_MAX_CONCURRENT_REQUESTS", "3")
	t.Setenv("GRAPH_SEARCH_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("GRAPH_SEARCH_CUSTOM_TIMEOUT", "1m")
	t.Setenv("GRAPH_SEARCH_FOLLOW_REDIRECTS", "false")
	t.Setenv("GRAPH_SEARCH_HIDE_SENSITIVE_DATA", "true")
	t.Setenv("GRAPH_SEARCH_LOG_OUTPUT_FORMAT", "console")

	config, err := LoadConfigFromEnv(&Config{ProxyURL: "http://kept:3128"})
	require.NoError(t, err)

	assert.Equal(t, usersearch.ClientModeGraph, config.ClientMode)
	assert.Equal(t, testTenantID, config.Auth.TenantID)
	assert.Equal(t, 3, config.MaxConcurrentRequests)
	assert.Equal(t, 2.5, config.RequestsPerSecond)
	assert.Equal(t, time.Minute, config.CustomTimeout.Duration())
	assert.False(t, config.ShouldFollowRedirects())
	assert.True(t, config.HideSensitiveData)
	assert.Equal(t, "console", config.LogOutputFormat)
	assert.Equal(t, "http://kept:3128", config.ProxyURL)
}

func TestLoadConfigFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"GRAPH_SEARCH_CLIENT_MODE":             "neither",
		"GRAPH_SEARCH_MAX_CONCURRENT_REQUESTS": "many",
		"GRAPH_SEARCH_REQUESTS_PER_SECOND":     "fast",
		"GRAPH_SEARCH_CUSTOM_TIMEOUT":          "later",
		"GRAPH_SEARCH_FOLLOW_REDIRECTS":        "maybe",
		"GRAPH_SEARCH_HIDE_SENSITIVE_DATA":     "sure",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfigFromEnv(nil)
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		config := &Config{Auth: AuthConfig{TenantID: testTenantID, ClientID: testClientID, ClientSecret: "s3cret"}}
		SetDefaultValues(config)
		return config
	}

	require.NoError(t, valid().Validate(true))
	require.NoError(t, (&Config{}).Validate(false))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid mode", func(c *Config) { c.ClientMode = usersearch.ClientMode(4) }, "clientMode"},
		{"negative concurrency", func(c *Config) { c.MaxConcurrentRequests = -1 }, "maxConcurrentRequests"},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, "requestsPerSecond"},
		{"negative timeout", func(c *Config) { c.CustomTimeout = -1 }, "customTimeout"},
		{"unknown log format", func(c *Config) { c.LogOutputFormat = "xml" }, "logOutputFormat"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "logLevel"},
		{"unknown auth method", func(c *Config) { c.Auth.AuthMethod = "password" }, "authMethod"},
		{"bad client id", func(c *Config) { c.Auth.ClientID = "not-a-guid" }, "client id"},
		{"missing secret", func(c *Config) { c.Auth.ClientSecret = "" }, "client secret"},
		{"missing certificate", func(c *Config) { c.Auth.AuthMethod = "certificate" }, "certificate path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			assert.ErrorContains(t, config.Validate(true), tt.want)
		})
	}

	config := valid()
	config.Auth.AuthMethod = "azurecli"
	config.Auth.ClientSecret = ""
	assert.NoError(t, config.Validate(true))
}

func TestJSONDuration(t *testing.T) {
	var d JSONDuration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, d.Duration())

	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))

	data, err := JSONDuration(2 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(data))

	assert.Equal(t, DefaultTimeout, ParseJSONDuration("bogus", DefaultTimeout))
}
