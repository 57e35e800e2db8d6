// config/config.go

/* Package config loads the settings of the user search tool from a JSON file and GRAPH_SEARCH_*
environment variables, fills in defaults, validates them and persists changes such as the selected
client mode. It also builds the runtime objects (logger, credential, client factories and the
search component) described by a Config. */
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/graphclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
)

const (
	DefaultLogLevel              = "LogLevelInfo"
	DefaultLogOutputFormat       = logger.LogOutputJSON
	DefaultLogConsoleSeparator   = "\t"
	DefaultAuthMethod            = authenticationhandler.AuthMethodClientSecret
	DefaultMaxConcurrentRequests = 5
	DefaultTimeout               = JSONDuration(30 * time.Second)
	DefaultFollowRedirects       = true
	DefaultMaxRedirects          = 5
	ConfigFileExtension          = ".json"
)

// Config holds every setting of the tool. The zero value is usable after SetDefaultValues.
type Config struct {
	ClientMode   usersearch.ClientMode `json:"clientMode"`
	Resource     string                `json:"resource,omitempty"`
	GraphBaseURL string                `json:"graphBaseUrl,omitempty"`
	GraphVersion string                `json:"graphVersion,omitempty"`

	Auth AuthConfig `json:"auth"`

	HideSensitiveData     bool         `json:"hideSensitiveData"`
	MaxConcurrentRequests int          `json:"maxConcurrentRequests,omitempty"`
	RequestsPerSecond     float64      `json:"requestsPerSecond,omitempty"`
	CustomTimeout         JSONDuration `json:"customTimeout,omitempty"`
	FollowRedirects       *bool        `json:"followRedirects,omitempty"`
	MaxRedirects          int          `json:"maxRedirects,omitempty"`
	ProxyURL              string       `json:"proxyUrl,omitempty"`

	LogLevel            string `json:"logLevel,omitempty"`
	LogOutputFormat     string `json:"logOutputFormat,omitempty"`
	LogConsoleSeparator string `json:"logConsoleSeparator,omitempty"`
	LogExportPath       string `json:"logExportPath,omitempty"`
}

// AuthConfig holds the app registration used to obtain tokens.
type AuthConfig struct {
	AuthMethod          string `json:"authMethod,omitempty"`
	TenantID            string `json:"tenantId,omitempty"`
	ClientID            string `json:"clientId,omitempty"`
	ClientSecret        string `json:"clientSecret,omitempty"`
	CertificatePath     string `json:"certificatePath,omitempty"`
	CertificatePassword string `json:"certificatePassword,omitempty"`
}

// Credentials converts the auth settings for the authenticationhandler package.
func (a AuthConfig) Credentials() authenticationhandler.ClientCredentials {
	return authenticationhandler.ClientCredentials{
		TenantID:            a.TenantID,
		ClientID:            a.ClientID,
		ClientSecret:        a.ClientSecret,
		CertificatePath:     a.CertificatePath,
		CertificatePassword: a.CertificatePassword,
	}
}

// ShouldFollowRedirects reports the effective redirect setting.
func (c *Config) ShouldFollowRedirects() bool {
	if c.FollowRedirects == nil {
		return DefaultFollowRedirects
	}
	return *c.FollowRedirects
}

// LoadConfigFromFile reads the JSON configuration file at path.
func LoadConfigFromFile(path string) (*Config, error) {
	path, err := validateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to clean/validate filepath (%s): %w", path, err)
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the configuration file: %s, error: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(fileBytes, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the configuration file: %s, error: %w", path, err)
	}

	return &config, nil
}

// SaveConfigToFile writes config to path as indented JSON, creating parent directories.
// Secrets are written as held in memory; callers decide whether they belong on disk.
func SaveConfigToFile(config *Config, path string) error {
	if config == nil {
		return errors.New("config is nil")
	}
	cleanPath := filepath.Clean(path)
	if filepath.Ext(cleanPath) != ConfigFileExtension {
		return fmt.Errorf("invalid file extension for configuration file: %s, expected %s", path, ConfigFileExtension)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if dir := filepath.Dir(cleanPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create configuration directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(cleanPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write the configuration file: %s, error: %w", cleanPath, err)
	}
	return nil
}

// SetDefaultValues fills zero-valued settings with their defaults.
func SetDefaultValues(config *Config) {
	if config.Resource == "" {
		config.Resource = usersearch.GraphResource
	}
	if config.GraphBaseURL == "" {
		config.GraphBaseURL = graphclient.DefaultBaseURL
	}
	if config.GraphVersion == "" {
		config.GraphVersion = usersearch.DefaultAPIVersion
	}
	if config.Auth.AuthMethod == "" {
		config.Auth.AuthMethod = DefaultAuthMethod
	}
	if config.MaxConcurrentRequests <= 0 {
		config.MaxConcurrentRequests = DefaultMaxConcurrentRequests
	}
	if config.CustomTimeout <= 0 {
		config.CustomTimeout = DefaultTimeout
	}
	if config.FollowRedirects == nil {
		follow := DefaultFollowRedirects
		config.FollowRedirects = &follow
	}
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormat
	}
	if config.LogConsoleSeparator == "" {
		config.LogConsoleSeparator = DefaultLogConsoleSeparator
	}
}

// Validate checks the configuration and reports every problem found in one error.
// Credentials are only required when requireCredentials is set, so settings can be shown and
// edited before an app registration exists.
func (c *Config) Validate(requireCredentials bool) error {
	var errs []error

	if !c.ClientMode.Valid() {
		errs = append(errs, fmt.Errorf("clientMode %q is not one of aad, graph", c.ClientMode.String()))
	}
	if c.MaxConcurrentRequests < 0 {
		errs = append(errs, errors.New("maxConcurrentRequests cannot be negative"))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requestsPerSecond cannot be negative"))
	}
	if c.CustomTimeout < 0 {
		errs = append(errs, errors.New("customTimeout cannot be negative"))
	}
	if c.MaxRedirects < 0 {
		errs = append(errs, errors.New("maxRedirects cannot be negative"))
	}
	if c.LogLevel != "" && c.LogLevel != "LogLevelNone" && logger.ParseLogLevelFromString(c.LogLevel) == logger.LogLevelNone {
		errs = append(errs, fmt.Errorf("logLevel %q is not a known level, e.g. LogLevelInfo", c.LogLevel))
	}
	switch c.LogOutputFormat {
	case "", logger.LogOutputJSON, logger.LogOutputConsole:
	default:
		errs = append(errs, fmt.Errorf("logOutputFormat %q must be %s or %s", c.LogOutputFormat, logger.LogOutputJSON, logger.LogOutputConsole))
	}

	method := strings.ToLower(c.Auth.AuthMethod)
	switch method {
	case "", authenticationhandler.AuthMethodClientSecret, authenticationhandler.AuthMethodCertificate,
		authenticationhandler.AuthMethodAzureCLI, authenticationhandler.AuthMethodDefault:
	default:
		errs = append(errs, fmt.Errorf("authMethod %q is not supported", c.Auth.AuthMethod))
	}

	if requireCredentials {
		switch method {
		case authenticationhandler.AuthMethodClientSecret, "":
			if err := authenticationhandler.ValidateClientCredentials(c.Auth.Credentials(), false); err != nil {
				errs = append(errs, err)
			}
		case authenticationhandler.AuthMethodCertificate:
			if err := authenticationhandler.ValidateClientCredentials(c.Auth.Credentials(), true); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if strings.Contains(absPath, "..") {
		return "", fmt.Errorf("invalid path, path traversal patterns detected: %s", path)
	}

	if filepath.Ext(absPath) != ConfigFileExtension {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected .json", path)
	}

	return absPath, nil
}
