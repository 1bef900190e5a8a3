package cache

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/cperrin88/extasset/pkg/download"
	"github.com/cperrin88/extasset/pkg/errors"
	"github.com/cperrin88/extasset/pkg/fileset"
	"github.com/cperrin88/extasset/pkg/fsutil"
)

// Naming selects how published assets are named.
type Naming string

const (
	// NamingURL names assets <key(url)>.<ext>.
	NamingURL Naming = "url"
	// NamingContent names assets <sha1(contents)>.<ext>.
	NamingContent Naming = "content"
)

// Options configures a Store.
type Options struct {
	// TempDir is the workspace holding downloads.
	TempDir string
	// Destination is the directory, relative to the site root, assets are
	// published under.
	Destination string
	Naming      Naming
}

// Result pairs a marker with the local path that replaces it.
type Result struct {
	ID        string
	LocalPath string
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Store resolves URLs to published local assets, downloading on a miss.
// Concurrent resolutions of the same URL share one lookup and download.
type Store struct {
	fetcher download.Fetcher
	opts    Options
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore creates a store downloading with fetcher.
func NewStore(fetcher download.Fetcher, opts Options) *Store {
	if opts.Naming == "" {
		opts.Naming = NamingURL
	}
	return &Store{
		fetcher: fetcher,
		opts:    opts,
	}
}

// Resolve publishes url into files under the destination directory and
// returns the local path that should replace marker id. Concurrent callers
// must pass the same files.
func (s *Store) Resolve(ctx context.Context, files *fileset.Set, id, url string) (Result, error) {
	key := Key(url)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.materialize(ctx, files, key, url)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{ID: id, LocalPath: s.localPath(v.(string))}, nil
}

// Stats returns hit and miss counts so far.
func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// Lookup returns the workspace file name holding a completed download for
// key. Exactly one <key>.<ext> entry counts as a hit; none or several do not.
func (s *Store) Lookup(key string) (string, bool, error) {
	entries, err := os.ReadDir(s.opts.TempDir)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(errors.ErrWorkspace, "list %s: %v", s.opts.TempDir, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base, ext := splitName(e.Name())
		if ext != "" && base == key {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) != 1 {
		return "", false, nil
	}
	return matches[0], true, nil
}

func (s *Store) materialize(ctx context.Context, files *fileset.Set, key, url string) (string, error) {
	name, hit, err := s.Lookup(key)
	if err != nil {
		return "", err
	}
	if hit {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
		name, err = s.download(ctx, key, url)
		if err != nil {
			return "", err
		}
	}
	return s.publish(files, name)
}

// download fetches url to the bare <key> path and renames it to
// <key><ext>. Without a known extension the file keeps the bare name.
func (s *Store) download(ctx context.Context, key, url string) (string, error) {
	tempPath := filepath.Join(s.opts.TempDir, key)
	contentType, err := s.fetcher.Fetch(ctx, url, tempPath)
	if err != nil {
		return "", err
	}

	name := key + Extension(contentType)
	if name == key {
		return name, nil
	}
	if err := fsutil.RenameInDir(s.opts.TempDir, key, name); err != nil {
		return "", errors.Wrapf(errors.ErrWorkspace, "rename %s: %v", key, err)
	}
	return name, nil
}

// publish copies a workspace file into the file set and returns its
// published name.
func (s *Store) publish(files *fileset.Set, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.opts.TempDir, name))
	if err != nil {
		return "", errors.Wrapf(errors.ErrPublish, "read %s: %v", name, err)
	}

	published := name
	if s.opts.Naming == NamingContent {
		_, ext := splitName(name)
		published = ContentKey(data) + ext
	}
	files.Put(path.Join(s.opts.Destination, published), data)
	return published, nil
}

func (s *Store) localPath(name string) string {
	dest := strings.TrimRight(s.opts.Destination, "/")
	if dest == "" {
		return name
	}
	return dest + "/" + name
}
