// redirecthandler/redirecthandler_test.go
package redirecthandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	return req
}

func TestCheckRedirect(t *testing.T) {
	handler := NewRedirectHandler(logger.NewNopLogger(), 3)

	t.Run("same host keeps authorization", func(t *testing.T) {
		via := []*http.Request{newRequest(t, http.MethodGet, "https://graph.microsoft.com/v1.0/users")}
		req := newRequest(t, http.MethodGet, "https://graph.microsoft.com/beta/users")
		req.Header.Set("Authorization", "Bearer token")

		require.NoError(t, handler.checkRedirect(req, via))
		assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
	})

	t.Run("cross host strips sensitive headers", func(t *testing.T) {
		via := []*http.Request{newRequest(t, http.MethodGet, "https://graph.microsoft.com/v1.0/users")}
		req := newRequest(t, http.MethodGet, "https://elsewhere.example.com/users")
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("client-request-id", "abc")

		require.NoError(t, handler.checkRedirect(req, via))
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("client-request-id"))
	})

	t.Run("loop detected", func(t *testing.T) {
		via := []*http.Request{
			newRequest(t, http.MethodGet, "https://graph.microsoft.com/a"),
			newRequest(t, http.MethodGet, "https://graph.microsoft.com/b"),
		}
		err := handler.checkRedirect(newRequest(t, http.MethodGet, "https://graph.microsoft.com/a"), via)

		var loopErr *RedirectLoopError
		assert.ErrorAs(t, err, &loopErr)
	})

	t.Run("max redirects", func(t *testing.T) {
		via := []*http.Request{
			newRequest(t, http.MethodGet, "https://graph.microsoft.com/1"),
			newRequest(t, http.MethodGet, "https://graph.microsoft.com/2"),
			newRequest(t, http.MethodGet, "https://graph.microsoft.com/3"),
		}
		err := handler.checkRedirect(newRequest(t, http.MethodGet, "https://graph.microsoft.com/4"), via)

		var maxErr *MaxRedirectsError
		require.ErrorAs(t, err, &maxErr)
		assert.Equal(t, 3, maxErr.MaxRedirects)
	})

	t.Run("non idempotent method not followed", func(t *testing.T) {
		via := []*http.Request{newRequest(t, http.MethodPost, "https://graph.microsoft.com/a")}
		err := handler.checkRedirect(newRequest(t, http.MethodPost, "https://graph.microsoft.com/b"), via)
		assert.ErrorIs(t, err, http.ErrUseLastResponse)
	})
}

func TestSetupRedirectHandler(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/users", http.StatusFound)
	}))
	defer redirector.Close()

	t.Run("follow", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, true, 5, logger.NewNopLogger()))

		resp, err := client.Get(redirector.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("do not follow", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, false, 0, logger.NewNopLogger()))

		resp, err := client.Get(redirector.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("invalid max", func(t *testing.T) {
		assert.Error(t, SetupRedirectHandler(&http.Client{}, true, 0, logger.NewNopLogger()))
	})
}
