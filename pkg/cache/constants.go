package cache

import "github.com/cperrin88/extasset/pkg/fsutil"

// WorkspaceDirPerm is the permission mode for workspace directories.
const WorkspaceDirPerm = fsutil.DirModeSecure

// KeyLength is the length of a hex-encoded cache key.
const KeyLength = 40
