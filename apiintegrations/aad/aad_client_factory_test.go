// apiintegrations/aad/aad_client_factory_test.go
package aad

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/deploymenttheory/go-graph-user-search/authenticationhandler"
	"github.com/deploymenttheory/go-graph-user-search/httpclient"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential struct {
	scopes []string
}

func (s *staticCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	s.scopes = opts.Scopes
	return azcore.AccessToken{Token: "graph-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newFactory(cred azcore.TokenCredential) *ClientFactory {
	log := logger.NewNopLogger()
	return NewClientFactory(authenticationhandler.NewAuthTokenHandler(cred, log), httpclient.ClientConfig{}, log)
}

func TestGetClient_ReusesClientPerResource(t *testing.T) {
	factory := newFactory(&staticCredential{})

	first, err := factory.GetClient(context.Background(), "https://graph.microsoft.com/")
	require.NoError(t, err)
	second, err := factory.GetClient(context.Background(), "https://graph.microsoft.com")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "https://graph.microsoft.com", first.Integration.Domain())
}

func TestGetClient_EmptyResource(t *testing.T) {
	_, err := newFactory(&staticCredential{}).GetClient(context.Background(), " ")
	assert.Error(t, err)
}

func TestGetClient_TokenBoundToResource(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	cred := &staticCredential{}
	factory := newFactory(cred)
	factory.BaseDomainOverrides["https://graph.microsoft.com"] = server.URL

	client, err := factory.GetClient(context.Background(), "https://graph.microsoft.com")
	require.NoError(t, err)

	var out map[string]any
	_, err = client.Get(context.Background(), "/v1.0/users", &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer graph-token", authorization)
	assert.Equal(t, []string{"https://graph.microsoft.com/.default"}, cred.scopes)
	assert.Equal(t, "azure-ad-bearer", client.Integration.AuthMethodDescriptor())
}
