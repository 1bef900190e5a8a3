package download

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/cperrin88/extasset/pkg/errors"
)

func TestNewFetcher(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		userAgent  string
		expectedUA string
	}{
		{
			name:       "default user agent, no timeout",
			expectedUA: DefaultUserAgent,
		},
		{
			name:       "custom user agent",
			timeout:    2 * time.Second,
			userAgent:  "test-agent/1.0",
			expectedUA: "test-agent/1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(tt.timeout, tt.userAgent)
			require.NotNil(t, f)
			assert.Equal(t, tt.timeout, f.client.Timeout)
			assert.Equal(t, tt.expectedUA, f.userAgent)
		})
	}
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.HandlerFunc
		expectError    bool
		expectErrorMsg string
		expectStatus   bool
		expectContent  string
		expectType     string
	}{
		{
			name: "successful download",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("png content"))
			},
			expectContent: "png content",
			expectType:    "image/png",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectError:    true,
			expectErrorMsg: "unexpected status code: 404",
			expectStatus:   true,
		},
		{
			name: "no content is not ok",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			expectError:    true,
			expectErrorMsg: "unexpected status code: 204",
			expectStatus:   true,
		},
		{
			name: "gzip encoded body is stored decoded",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				_, _ = zw.Write([]byte("body{color:red}"))
				_ = zw.Close()
				w.Header().Set("Content-Type", "text/css")
				w.Header().Set("Content-Encoding", "gzip")
				_, _ = w.Write(buf.Bytes())
			},
			expectContent: "body{color:red}",
			expectType:    "text/css",
		},
		{
			name: "stacked codings are undone in reverse order",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/css")
				w.Header().Set("Content-Encoding", "gzip, identity, gzip")
				_, _ = w.Write(gzipped(gzipped([]byte("a{b:c}"))))
			},
			expectContent: "a{b:c}",
			expectType:    "text/css",
		},
		{
			name: "identity coding is a no-op",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/gif")
				w.Header().Set("Content-Encoding", "identity")
				_, _ = w.Write([]byte("GIF89a"))
			},
			expectContent: "GIF89a",
			expectType:    "image/gif",
		},
		{
			name: "unsupported coding is a transport error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Header().Set("Content-Encoding", "compress")
				_, _ = w.Write([]byte("lzw bytes"))
			},
			expectError:    true,
			expectErrorMsg: `unsupported content encoding "compress"`,
		},
		{
			name: "unsupported coding inside a stack is a transport error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/css")
				w.Header().Set("Content-Encoding", "x-custom, gzip")
				_, _ = w.Write(gzipped([]byte("opaque")))
			},
			expectError:    true,
			expectErrorMsg: `unsupported content encoding "x-custom"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			dest := filepath.Join(t.TempDir(), "abc123")
			f := NewFetcher(time.Second, "test")

			contentType, err := f.Fetch(context.Background(), server.URL+"/asset", dest)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErrorMsg)
				assert.ErrorIs(t, err, pkgerrors.ErrDownloadFailed)
				assert.Equal(t, tt.expectStatus, pkgerrors.Is(err, pkgerrors.ErrStatus))
				assert.NoFileExists(t, dest)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectType, contentType)
			content, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.expectContent, string(content))
		})
	}
}

func gzipped(data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func TestFetch_SendsHeaders(t *testing.T) {
	var gotUA, gotAE string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAE = r.Header.Get("Accept-Encoding")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(0, "extasset-test/2.0")
	_, err := f.Fetch(context.Background(), server.URL, filepath.Join(t.TempDir(), "x"))
	require.NoError(t, err)
	assert.Equal(t, "extasset-test/2.0", gotUA)
	assert.Contains(t, gotAE, "gzip")
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	dest := filepath.Join(t.TempDir(), "abc")
	_, err := NewFetcher(time.Second, "").Fetch(context.Background(), url, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrTransport)
	assert.NoFileExists(t, dest)
}

func TestFetch_StreamErrorRemovesPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "abc")
	_, err := NewFetcher(time.Second, "").Fetch(context.Background(), server.URL, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrTransport)
	assert.NoFileExists(t, dest)
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(0, "").Fetch(ctx, server.URL, filepath.Join(t.TempDir(), "abc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := NewFetcher(0, "").Fetch(context.Background(), "://bad", filepath.Join(t.TempDir(), "abc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrTransport)
}
