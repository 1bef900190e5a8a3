package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// Asset is a canned response served by AssetServer.
type Asset struct {
	ContentType string
	Body        []byte
	// Status defaults to 200.
	Status int
}

// AssetServer is a test HTTP server serving canned assets by path and
// counting requests per path.
type AssetServer struct {
	*httptest.Server

	mu     sync.Mutex
	assets map[string]Asset
	hits   map[string]int
}

// NewAssetServer starts an AssetServer that is closed when the test ends.
func NewAssetServer(t *testing.T) *AssetServer {
	t.Helper()
	s := &AssetServer{
		assets: make(map[string]Asset),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Add registers an asset under path.
func (s *AssetServer) Add(path string, a Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[path] = a
}

// AssetURL returns the absolute URL of path on this server.
func (s *AssetServer) AssetURL(path string) string {
	return s.URL + path
}

// Hits returns how many requests path received.
func (s *AssetServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests received for any path.
func (s *AssetServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.hits {
		n += c
	}
	return n
}

func (s *AssetServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	a, ok := s.assets[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if a.ContentType != "" {
		w.Header().Set("Content-Type", a.ContentType)
	} else {
		// Suppress content sniffing so the response carries no type.
		w.Header()["Content-Type"] = nil
	}
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(a.Body)
}

// WriteTree creates files under dir from a relative path to contents map.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}
