// Package rewrite substitutes resolved local paths for markers in site sources.
package rewrite

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/cperrin88/extasset/pkg/cache"
	"github.com/cperrin88/extasset/pkg/fileset"
)

// Apply replaces every occurrence of each result's marker text with its local
// path in every source file of set. Marker text is matched literally and all
// markers are replaced in one pass, longest first, so a marker nested in
// another marker's text never rewrites part of it. It returns the number of
// files whose contents changed.
func Apply(set *fileset.Set, m fileset.Matcher, results []cache.Result) int {
	if len(results) == 0 {
		return 0
	}

	with := make(map[string][]byte, len(results))
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		if _, dup := with[r.ID]; !dup {
			ids = append(ids, r.ID)
		}
		with[r.ID] = []byte(r.LocalPath)
	}
	if len(ids) == 0 {
		return 0
	}
	sort.SliceStable(ids, func(i, j int) bool { return len(ids[i]) > len(ids[j]) })

	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = regexp.QuoteMeta(id)
	}
	pattern := regexp.MustCompile(strings.Join(quoted, "|"))

	changed := 0
	for _, p := range set.SourcePaths(m) {
		f, _ := set.Get(p)
		contents := pattern.ReplaceAllFunc(f.Contents, func(id []byte) []byte {
			return with[string(id)]
		})
		if !bytes.Equal(contents, f.Contents) {
			changed++
		}
		set.Put(p, contents)
	}
	return changed
}
