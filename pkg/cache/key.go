package cache

import (
	"crypto/sha1" //nolint:gosec // cache naming, not a security boundary
	"encoding/hex"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Key returns the cache key of url: the hex SHA-1 of the URL string.
func Key(url string) string {
	return hashHex([]byte(url))
}

// ContentKey returns the hex SHA-1 of data.
func ContentKey(data []byte) string {
	return hashHex(data)
}

func hashHex(b []byte) string {
	h := sha1.Sum(b) //nolint:gosec
	return hex.EncodeToString(h[:])
}

// IsKey reports whether s looks like a cache key.
func IsKey(s string) bool {
	if len(s) != KeyLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Extension maps a Content-Type header value to a file extension including
// the leading dot. Unknown, missing or malformed types yield "".
func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" {
		return ""
	}
	if m := mimetype.Lookup(mediaType); m != nil {
		return m.Extension()
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// splitName splits a workspace file name at its last dot.
func splitName(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
