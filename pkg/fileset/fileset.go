// Package fileset holds the in-memory collection of site files that the
// asset pass reads, rewrites and extends. Keys are slash-separated paths
// relative to the site root.
package fileset

import (
	"path"
	"sort"
	"strings"
	"sync"
)

// DefaultSourceExtensions are the extensions scanned for markers.
var DefaultSourceExtensions = []string{".htm", ".html", ".js", ".css"}

// File is one entry of the collection.
type File struct {
	Contents []byte
}

// Set is a mutable, concurrency-safe mapping from path to File. Concurrent
// writers are expected to use distinct keys.
type Set struct {
	mu    sync.RWMutex
	files map[string]*File
}

// New returns an empty Set.
func New() *Set {
	return &Set{files: make(map[string]*File)}
}

// Put stores contents under p, replacing any existing entry.
func (s *Set) Put(p string, contents []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[clean(p)] = &File{Contents: contents}
}

// Get returns the file stored under p.
func (s *Set) Get(p string) (*File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[clean(p)]
	return f, ok
}

// Has reports whether p is present.
func (s *Set) Has(p string) bool {
	_, ok := s.Get(p)
	return ok
}

// Len returns the number of files.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Paths returns all keys in lexical order.
func (s *Set) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SourcePaths returns the keys accepted by m, in lexical order.
func (s *Set) SourcePaths(m Matcher) []string {
	var out []string
	for _, p := range s.Paths() {
		if m.IsSource(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matcher decides which files are scanned for markers.
type Matcher struct {
	Extensions []string
}

// DefaultMatcher matches DefaultSourceExtensions.
func DefaultMatcher() Matcher {
	return Matcher{Extensions: DefaultSourceExtensions}
}

// IsSource reports whether p's extension starts with one of the configured
// extensions. The test is a case-sensitive prefix match, so ".json" counts
// as ".js" and ".htmlx" as ".html".
func (m Matcher) IsSource(p string) bool {
	ext := path.Ext(p)
	if ext == "" {
		return false
	}
	for _, want := range m.Extensions {
		if strings.HasPrefix(ext, want) {
			return true
		}
	}
	return false
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
}
