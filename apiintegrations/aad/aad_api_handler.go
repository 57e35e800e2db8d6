// apiintegrations/aad/aad_api_handler.go
package aad

import (
	"context"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/httpclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
)

// Integration implements httpclient.APIIntegration for one Azure AD protected resource.
// Tokens are issued for Resource; requests go to BaseDomain, which defaults to Resource.
type Integration struct {
	Resource   string
	BaseDomain string
	Tokens     *authenticationhandler.AuthTokenHandler
	Logger     logger.Logger
}

var _ httpclient.APIIntegration = (*Integration)(nil)

// Token returns a bearer token for the bound resource.
func (a *Integration) Token(ctx context.Context) (string, error) {
	return a.Tokens.GetToken(ctx, a.Resource)
}

// Domain returns the base URL requests are sent to.
func (a *Integration) Domain() string {
	if a.BaseDomain != "" {
		return strings.TrimRight(a.BaseDomain, "/")
	}
	return strings.TrimRight(a.Resource, "/")
}

// SetRequestHeaders sets the headers Graph expects on directory reads.
func (a *Integration) SetRequestHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
}

// AuthMethodDescriptor names the authentication scheme for logging.
func (a *Integration) AuthMethodDescriptor() string {
	return "azure-ad-bearer"
}
