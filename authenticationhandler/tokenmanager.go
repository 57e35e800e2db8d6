// authenticationhandler/tokenmanager.go
package authenticationhandler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

// DefaultTokenRefreshBufferPeriod is how long before expiry a cached token is replaced.
const DefaultTokenRefreshBufferPeriod = 5 * time.Minute

// AuthTokenHandler caches access tokens per resource on top of a TokenCredential.
type AuthTokenHandler struct {
	Credential               azcore.TokenCredential
	Logger                   logger.Logger
	TokenRefreshBufferPeriod time.Duration

	tokenLock sync.Mutex
	tokens    map[string]azcore.AccessToken
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler.
func NewAuthTokenHandler(cred azcore.TokenCredential, log logger.Logger) *AuthTokenHandler {
	return &AuthTokenHandler{
		Credential:               cred,
		Logger:                   log,
		TokenRefreshBufferPeriod: DefaultTokenRefreshBufferPeriod,
		tokens:                   make(map[string]azcore.AccessToken),
	}
}

// ScopeForResource returns the app-permission scope for a resource URI, e.g.
// https://graph.microsoft.com becomes https://graph.microsoft.com/.default.
func ScopeForResource(resource string) string {
	return strings.TrimRight(resource, "/") + "/.default"
}

// GetToken returns a bearer token for resource, asking the credential for a new one only
// when the cached token is missing or about to expire.
func (h *AuthTokenHandler) GetToken(ctx context.Context, resource string) (string, error) {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()

	if token, ok := h.tokens[resource]; ok && h.isTokenValid(token) {
		return token.Token, nil
	}

	scope := ScopeForResource(resource)
	h.Logger.Debug("Requesting access token", zap.String("scope", scope))

	token, err := h.Credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		h.Logger.Warn("Failed to obtain access token", zap.String("scope", scope), zap.Error(err))
		return "", fmt.Errorf("obtaining token for %s: %w", resource, err)
	}

	h.tokens[resource] = token
	h.Logger.Info("Access token obtained", zap.String("scope", scope), zap.Time("expiry", token.ExpiresOn))
	return token.Token, nil
}

// isTokenValid reports whether the token is non-empty and outside the refresh buffer.
func (h *AuthTokenHandler) isTokenValid(token azcore.AccessToken) bool {
	return token.Token != "" && time.Until(token.ExpiresOn) >= h.TokenRefreshBufferPeriod
}
