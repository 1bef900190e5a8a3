package fileset

import (
	"context"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets

	"github.com/cperrin88/extasset/pkg/errors"
)

// OpenBucket opens location as a blob bucket. A location containing "://"
// is passed to blob.OpenBucket unchanged; anything else is treated as a
// local directory, created on demand, without metadata sidecar files.
func OpenBucket(ctx context.Context, location string) (*blob.Bucket, error) {
	if location == "" {
		return nil, errors.Wrap(errors.ErrInvalidPath, "bucket location cannot be empty")
	}
	bucketURL := location
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidPath, "%s: %v", location, err)
		}
		u := url.URL{
			Scheme:   "file",
			Path:     filepath.ToSlash(abs),
			RawQuery: "create_dir=true&metadata=skip",
		}
		bucketURL = u.String()
	}
	bkt, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStorage, "open bucket %s: %v", location, err)
	}
	return bkt, nil
}

// Load reads every object of bucket into a new Set.
func Load(ctx context.Context, bucket *blob.Bucket) (*Set, error) {
	set := New()
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(errors.ErrStorage, "list bucket: %v", err)
		}
		if obj.IsDir {
			continue
		}
		data, err := bucket.ReadAll(ctx, obj.Key)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrStorage, "read %s: %v", obj.Key, err)
		}
		set.Put(obj.Key, data)
	}
	return set, nil
}

// Write stores every file of set into bucket under its path.
func Write(ctx context.Context, bucket *blob.Bucket, set *Set) error {
	for _, p := range set.Paths() {
		f, _ := set.Get(p)
		if err := bucket.WriteAll(ctx, p, f.Contents, nil); err != nil {
			return errors.Wrapf(errors.ErrStorage, "write %s: %v", p, err)
		}
	}
	return nil
}
