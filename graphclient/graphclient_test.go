// graphclient/graphclient_test.go
package graphclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/microsoft/kiota-abstractions-go/authentication"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path            string
	selectParam     string
	filterParam     string
	clientRequestID string
}

func newGraphServer(t *testing.T, statusCode int, body string) (*httptest.Server, func() recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var last recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = recordedRequest{
			path:            r.URL.Path,
			selectParam:     r.URL.Query().Get("$select"),
			filterParam:     r.URL.Query().Get("$filter"),
			clientRequestID: r.Header.Get("client-request-id"),
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, func() recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	factory := NewFactory(Config{
		BaseURL:      baseURL,
		AuthProvider: &authentication.AnonymousAuthenticationProvider{},
	}, logger.NewNopLogger())

	client, err := factory.GetClient(context.Background())
	require.NoError(t, err)
	return client
}

func TestRequestBuilder_GetUsers(t *testing.T) {
	server, last := newGraphServer(t, http.StatusOK, `{"value":[{"displayName":"Megan Bowen","mail":"MeganB@contoso.com","userPrincipalName":"MeganB@contoso.com"}]}`)
	client := newTestClient(t, server.URL)

	var got models.UserCollectionResponseable
	var gotErr error
	client.API("users").
		Version("v1.0").
		Select("displayName", "mail", "userPrincipalName").
		Filter("givenName eq 'Megan' or surname eq 'Megan' or displayName eq 'Megan'").
		Get(context.Background(), func(result models.UserCollectionResponseable, err error) {
			got, gotErr = result, err
		})

	require.NoError(t, gotErr)
	require.NotNil(t, got)
	require.Len(t, got.GetValue(), 1)
	assert.Equal(t, "Megan Bowen", *got.GetValue()[0].GetDisplayName())
	assert.Equal(t, "MeganB@contoso.com", *got.GetValue()[0].GetUserPrincipalName())

	req := last()
	assert.Equal(t, "/v1.0/users", req.path)
	assert.Equal(t, "displayName,mail,userPrincipalName", req.selectParam)
	assert.Equal(t, "givenName eq 'Megan' or surname eq 'Megan' or displayName eq 'Megan'", req.filterParam)
	assert.NotEmpty(t, req.clientRequestID)
}

func TestRequestBuilder_VersionSelectsBasePath(t *testing.T) {
	server, last := newGraphServer(t, http.StatusOK, `{"value":[]}`)
	client := newTestClient(t, server.URL)

	result, err := client.API("users").Version("beta").Execute(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.GetValue())
	assert.Equal(t, "/beta/users", last().path)
}

func TestRequestBuilder_ODataError(t *testing.T) {
	server, _ := newGraphServer(t, http.StatusForbidden, `{"error":{"code":"Authorization_RequestDenied","message":"Insufficient privileges to complete the operation."}}`)
	client := newTestClient(t, server.URL)

	var gotErr error
	called := 0
	client.API("users").Get(context.Background(), func(result models.UserCollectionResponseable, err error) {
		called++
		assert.Nil(t, result)
		gotErr = err
	})

	assert.Equal(t, 1, called)
	var graphErr *GraphError
	require.ErrorAs(t, gotErr, &graphErr)
	assert.Equal(t, "Authorization_RequestDenied", graphErr.Code)
	assert.Equal(t, "Insufficient privileges to complete the operation.", graphErr.Message)

	_, errs, _ := client.Permits().Snapshot()
	assert.Equal(t, int64(1), errs)
}

func TestRequestBuilder_ZeroTimeoutUsesDefault(t *testing.T) {
	server, _ := newGraphServer(t, http.StatusOK, `{"value":[{"displayName":"Ada Lovelace"}]}`)
	factory := NewFactory(Config{
		BaseURL:      server.URL,
		Timeout:      0,
		AuthProvider: &authentication.AnonymousAuthenticationProvider{},
	}, logger.NewNopLogger())
	client, err := factory.GetClient(context.Background())
	require.NoError(t, err)

	result, err := client.API("users").Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.GetValue(), 1)
	assert.Equal(t, "Ada Lovelace", *result.GetValue()[0].GetDisplayName())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestRequestBuilder_ExplicitTimeoutKept(t *testing.T) {
	factory := NewFactory(Config{
		Timeout:      5 * time.Second,
		AuthProvider: &authentication.AnonymousAuthenticationProvider{},
	}, logger.NewNopLogger())
	client, err := factory.GetClient(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

func TestRequestBuilder_UnsupportedAPI(t *testing.T) {
	client := newTestClient(t, "https://graph.microsoft.com")

	_, err := client.API("groups").Execute(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedAPI)
}

func TestFactory_RequiresCredential(t *testing.T) {
	_, err := NewFactory(Config{}, logger.NewNopLogger()).GetClient(context.Background())
	assert.Error(t, err)
}

func TestFactory_SharesClient(t *testing.T) {
	factory := NewFactory(Config{AuthProvider: &authentication.AnonymousAuthenticationProvider{}}, logger.NewNopLogger())

	first, err := factory.GetClient(context.Background())
	require.NoError(t, err)
	second, err := factory.GetClient(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestSelectSplitsCommaSeparatedFields(t *testing.T) {
	client := newTestClient(t, "https://graph.microsoft.com")
	builder := client.API("/users/").Select("displayName, mail", "userPrincipalName")

	assert.Equal(t, "users", builder.path)
	assert.Equal(t, []string{"displayName", "mail", "userPrincipalName"}, builder.selectFields)
	assert.Equal(t, DefaultVersion, builder.version)
}

func TestTranslateError_ODataError(t *testing.T) {
	code := "Request_ResourceNotFound"
	message := "Resource does not exist."
	main := odataerrors.NewMainError()
	main.SetCode(&code)
	main.SetMessage(&message)
	odataErr := odataerrors.NewODataError()
	odataErr.SetError(main)

	err := TranslateError(odataErr)

	var graphErr *GraphError
	require.ErrorAs(t, err, &graphErr)
	assert.Equal(t, code, graphErr.Code)
	assert.Equal(t, message, graphErr.Message)
	assert.ErrorIs(t, err, odataErr)
}

func TestTranslateError_ODataErrorWithoutBody(t *testing.T) {
	err := TranslateError(odataerrors.NewODataError())

	var graphErr *GraphError
	require.ErrorAs(t, err, &graphErr)
	assert.Empty(t, graphErr.Code)
}

func TestTranslateError_PassThrough(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, TranslateError(plain))
	assert.NoError(t, TranslateError(nil))
}
