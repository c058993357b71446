package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggerKit "github.com/hos6/urlshortener/kit/logger"
)

func createChecker(t *testing.T) *httpURLChecker {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "go.log"), loggerKit.DebugLevel, loggerKit.NoStdout)
	require.Nil(t, err)
	return CreateHTTPURLChecker(time.Second, logger).(*httpURLChecker)
}

func TestIsReachable(t *testing.T) {
	ctx := context.Background()
	checker := createChecker(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.True(t, checker.IsReachable(ctx, server.URL))
}

func TestIsReachableServerError(t *testing.T) {
	ctx := context.Background()
	checker := createChecker(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.False(t, checker.IsReachable(ctx, server.URL))
}

func TestIsReachableConnectionRefused(t *testing.T) {
	ctx := context.Background()
	checker := createChecker(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	assert.False(t, checker.IsReachable(ctx, url))
}

func TestIsReachableTimeout(t *testing.T) {
	ctx := context.Background()
	checker := createChecker(t)
	checker.client.Timeout = 50 * time.Millisecond

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	assert.False(t, checker.IsReachable(ctx, server.URL))
}

func TestIsReachableBadURL(t *testing.T) {
	ctx := context.Background()
	checker := createChecker(t)

	assert.False(t, checker.IsReachable(ctx, "http://\x00invalid"))
}
