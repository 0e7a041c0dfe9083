package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	os.Exit(m.Run())
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		assert.Contains(t, r.Header.Get("Accept-Language"), "zh-CN")
		assert.NotEmpty(t, r.Header.Get("Referer"))
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	html, ok := f.Fetch(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Equal(t, "<html>ok</html>", html)
}

func TestFetchNon200IsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("blocked"))
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	html, ok := f.Fetch(context.Background(), srv.URL)
	assert.False(t, ok)
	assert.Empty(t, html)
}

// A 200 with no body is treated like a failed fetch so callers fall through
// to their next strategy instead of parsing nothing.
func TestFetchEmptyBodyIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	_, ok := f.Fetch(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestFetchTransportErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	f := New(Options{})
	defer f.Close()

	_, ok := f.Fetch(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestFetchBytes(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	body, ok := f.FetchBytes(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Equal(t, payload, body)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	f := New(Options{RateLimitRPS: 1})
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := f.Fetch(ctx, srv.URL)
	assert.False(t, ok)
}
