package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video-meta-relay/pkg/apperr"
	"video-meta-relay/pkg/config"
	"video-meta-relay/pkg/httpclient"
	"video-meta-relay/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	log := logging.New("error", false, io.Discard)
	return NewClient(baseURL, timeout, httpclient.New(&config.Config{}, log), log)
}

func TestClient_FetchVideo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/video", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "abc&123", r.URL.Query().Get("id"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"primary_info":{"title":{"text":"Hello"}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/api", time.Second)

	doc, err := client.FetchVideo(context.Background(), "abc&123")
	require.NoError(t, err)

	info, ok := doc["primary_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"text": "Hello"}, info["title"])
}

func TestClient_FetchVideo_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperr.Kind
	}{
		{"internal server error", http.StatusInternalServerError, `{"error":"boom"}`, apperr.UpstreamUnavailable},
		{"not found", http.StatusNotFound, `not found`, apperr.UpstreamUnavailable},
		{"bad gateway", http.StatusBadGateway, ``, apperr.UpstreamUnavailable},
		{"invalid json", http.StatusOK, `<html>oops</html>`, apperr.DataProcessingError},
		{"empty body", http.StatusOK, ``, apperr.DataProcessingError},
		{"array root", http.StatusOK, `[{"primary_info":{}}]`, apperr.DataProcessingError},
		{"null root", http.StatusOK, `null`, apperr.DataProcessingError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, time.Second).FetchVideo(context.Background(), "abc")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestClient_FetchVideo_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := newTestClient(addr, time.Second).FetchVideo(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamUnavailable, apperr.KindOf(err))
}

func TestClient_FetchVideo_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestClient(server.URL, 50*time.Millisecond).FetchVideo(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamUnavailable, apperr.KindOf(err))
}

func TestClient_VideoURL(t *testing.T) {
	client := newTestClient("http://localhost:3000/api", time.Second)
	assert.Equal(t, "http://localhost:3000/api/video?id=dQw4w9WgXcQ", client.VideoURL("dQw4w9WgXcQ"))
}
