// usersearch/component.go

/* Package usersearch implements the user search widget: a persisted client mode, an inline
validated search query, two mutually exclusive ways of querying Microsoft Graph, and the result
set they replace. */
package usersearch

import (
	"context"
	"sync"

	"github.com/deploymenttheory/go-graph-user-search/graphclient"
	"github.com/deploymenttheory/go-graph-user-search/httpclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

const (
	// GraphResource is the resource the generic client's token is issued for.
	GraphResource = "https://graph.microsoft.com"
	// DefaultAPIVersion is the Graph version both paths query.
	DefaultAPIVersion = "v1.0"
)

// AadHttpClientFactory hands out generic clients authenticated for a resource URI.
type AadHttpClientFactory interface {
	GetClient(ctx context.Context, resource string) (*httpclient.Client, error)
}

// MSGraphClientFactory hands out the typed Graph client.
type MSGraphClientFactory interface {
	GetClient(ctx context.Context) (*graphclient.Client, error)
}

// Component is the search widget. Searches may overlap; each successful one replaces the
// result set, so the last to finish wins.
type Component struct {
	aadFactory   AadHttpClientFactory
	graphFactory MSGraphClientFactory
	logger       logger.Logger

	resource   string
	apiVersion string

	modeMu sync.RWMutex
	mode   ClientMode

	results  ResultSet
	onChange func([]UserRecord)
}

// Option configures a Component.
type Option func(*Component)

// WithResource overrides the resource the generic client is bound to.
func WithResource(resource string) Option {
	return func(c *Component) {
		if resource != "" {
			c.resource = resource
		}
	}
}

// WithAPIVersion overrides the Graph API version.
func WithAPIVersion(version string) Option {
	return func(c *Component) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithResultsListener registers a function called with the new records after every replacement.
func WithResultsListener(fn func([]UserRecord)) Option {
	return func(c *Component) {
		c.onChange = fn
	}
}

// NewComponent creates a Component using mode for dispatch.
func NewComponent(mode ClientMode, aadFactory AadHttpClientFactory, graphFactory MSGraphClientFactory, log logger.Logger, opts ...Option) *Component {
	if log == nil {
		log = logger.NewNopLogger()
	}
	c := &Component{
		aadFactory:   aadFactory,
		graphFactory: graphFactory,
		logger:       log,
		resource:     GraphResource,
		apiVersion:   DefaultAPIVersion,
		mode:         mode,
	}
	c.results.replace(nil)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the current client mode.
func (c *Component) Mode() ClientMode {
	c.modeMu.RLock()
	defer c.modeMu.RUnlock()
	return c.mode
}

// SetMode changes the client mode used by later searches.
func (c *Component) SetMode(mode ClientMode) {
	c.modeMu.Lock()
	c.mode = mode
	c.modeMu.Unlock()
	c.logger.Info("Client mode changed", zap.String("mode", mode.String()))
}

// Results returns the current result set in server order.
func (c *Component) Results() []UserRecord {
	return c.results.Records()
}

// Search runs query through the path selected by the current mode. On failure the error is
// logged and returned and the result set is left as it was.
func (c *Component) Search(ctx context.Context, query string) error {
	mode := c.Mode()
	log := c.logger.With(zap.String("mode", mode.String()), zap.String("query", query))

	if msg := ValidateSearchQuery(query); msg != "" {
		log.Debug("Searching with a query that fails validation", zap.String("validation", msg))
	}

	var records []UserRecord
	var err error
	switch mode {
	case ClientModeGraph:
		records, err = c.searchWithGraphClient(ctx, query)
	default:
		records, err = c.searchWithAadHttpClient(ctx, query)
	}

	if err != nil {
		log.Warn("User search failed", zap.Error(err))
		return err
	}

	c.results.replace(records)
	log.Info("User search completed", zap.Int("results", len(records)))

	if c.onChange != nil {
		c.onChange(c.results.Records())
	}
	return nil
}
