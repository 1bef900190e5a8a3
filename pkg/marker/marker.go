// Package marker finds download::URL::download markers in site sources.
package marker

import (
	"regexp"
	"strings"

	"github.com/cperrin88/extasset/pkg/fileset"
)

// Pattern matches one marker; group 1 is the raw URL text.
var Pattern = regexp.MustCompile(`download::(.*?)::download`)

// Marker is one distinct marker text and the URL it resolves to.
type Marker struct {
	// ID is the literal marker text as it appears in the source.
	ID  string
	URL string
}

// Normalize turns a protocol-relative URL into an http: one. Other input is
// returned unchanged; https: is never chosen.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "http:" + raw
	}
	return raw
}

// Scan returns the distinct markers found in the source files of set, in
// the order they are first met. Files are visited in path order; when the
// same marker text shows up again the first occurrence is kept.
func Scan(set *fileset.Set, m fileset.Matcher) []Marker {
	seen := make(map[string]struct{})
	var out []Marker
	for _, p := range set.SourcePaths(m) {
		f, ok := set.Get(p)
		if !ok {
			continue
		}
		for _, match := range Pattern.FindAllSubmatch(f.Contents, -1) {
			id := string(match[0])
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, Marker{ID: id, URL: Normalize(string(match[1]))})
		}
	}
	return out
}

// Map returns the marker text to URL mapping for markers.
func Map(markers []Marker) map[string]string {
	out := make(map[string]string, len(markers))
	for _, mk := range markers {
		if _, ok := out[mk.ID]; !ok {
			out[mk.ID] = mk.URL
		}
	}
	return out
}
