package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"blog-publishing-be/internal/bootstrap"
	"blog-publishing-be/internal/config"
	"blog-publishing-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			JwtSecret:          "server-test",
			BodyLimit:          1024 * 1024,
		},
		Cache:     config.CacheConfig{Driver: "memory", TTL: time.Minute},
		Messaging: config.MessagingConfig{RenderTopic: "render"},
	}

	container := bootstrap.NewContainer(testutil.NewDB(t), cfg)
	t.Cleanup(container.Close)

	return New(cfg, container)
}

func TestRoutesAreMounted(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/blog/v1/posts", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/blog/v1/posts/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest(http.MethodPost, "/api/blog/v1/author/posts", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/blog/v1/feed", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
