package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&staticToken{token: "test-token"},
		WithBaseURL(srv.URL),
		WithRateLimiter(NewRateLimiter(0)),
	)
}

func TestClient_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set(HeaderRateRemaining, "4990")
		w.Header().Set(HeaderRateLimit, "5000")
		_, _ = w.Write([]byte(`{"data":{"viewer":{"login":"octocat"}}}`))
	})

	var out struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	err := client.Query(context.Background(), `query { viewer { login } }`, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "octocat", out.Viewer.Login)
	assert.Equal(t, 4990, client.RateLimiter().Remaining())
}

func TestClient_QueryNullData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})

	var out map[string]any
	err := client.Query(context.Background(), `query { viewer { login } }`, nil, &out)
	assert.Error(t, err)

	assert.NoError(t, client.Query(context.Background(), `query { viewer { login } }`, nil, nil))
}

func TestClient_QueryForbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})

	err := client.Query(context.Background(), `query { viewer { login } }`, nil, nil)

	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Resource not accessible by integration", apiErr.Message)
}

func TestClient_NoTokenProvider(t *testing.T) {
	client := NewClient(nil)

	err := client.Query(context.Background(), `query { viewer { login } }`, nil, nil)

	assert.Error(t, err)
	assert.Nil(t, client.TokenProvider())
}
