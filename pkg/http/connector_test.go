package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echo struct {
	Method        string              `json:"method"`
	Path          string              `json:"path"`
	Query         map[string][]string `json:"query"`
	Authorization string              `json:"authorization"`
	APIKey        string              `json:"apikey"`
	ContentType   string              `json:"content_type"`
	Body          map[string]any      `json:"body"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "broken", http.StatusServiceUnavailable)
			return
		}

		out := echo{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			APIKey:        r.Header.Get("apikey"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&out.Body)
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url, Logger: zap.NewNop()}, opts...)
}

func TestDoRequestSendsJSONAndQuery(t *testing.T) {
	srv := newEchoServer(t)
	c := newTestConnector(srv.URL, WithRequestLogging())

	var got echo
	err := c.DoRequest(context.Background(), http.MethodPost, "/items?fixed=1",
		map[string]string{"name": "x"}, &got,
		WithQuery("id", "eq.5"),
	)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/items", got.Path)
	assert.Equal(t, []string{"1"}, got.Query["fixed"])
	assert.Equal(t, []string{"eq.5"}, got.Query["id"])
	assert.Equal(t, "application/json", got.ContentType)
	assert.Equal(t, "x", got.Body["name"])
}

func TestStaticHeadersAndBearerOverride(t *testing.T) {
	srv := newEchoServer(t)
	c := newTestConnector(srv.URL,
		WithStaticHeader("apikey", "project-key"),
		WithAuthToken("project-key"),
	)

	var got echo
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, &got))
	assert.Equal(t, "project-key", got.APIKey)
	assert.Equal(t, "Bearer project-key", got.Authorization)

	got = echo{}
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, &got, WithBearer("user-token")))
	assert.Equal(t, "project-key", got.APIKey)
	assert.Equal(t, "Bearer user-token", got.Authorization)
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := newEchoServer(t)
	c := newTestConnector(srv.URL)

	err := c.DoRequest(context.Background(), http.MethodGet, "/fail", nil, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "broken")
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.True(t, IsTransient(err))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&NetworkError{Err: errors.New("refused")}))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", &HTTPError{StatusCode: 502})))
	assert.False(t, IsTransient(&HTTPError{StatusCode: 404}))
	assert.False(t, IsTransient(errors.New("decode")))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("Apikey", "secret")
	h.Set("X-Goog-Api-Key", "secret")
	h.Set("Accept", "application/json")

	out := redactHeaders(h)

	assert.Equal(t, "[redacted]", out["Authorization"])
	assert.Equal(t, "[redacted]", out["Apikey"])
	assert.Equal(t, "[redacted]", out["X-Goog-Api-Key"])
	assert.Equal(t, "application/json", out["Accept"])
}
