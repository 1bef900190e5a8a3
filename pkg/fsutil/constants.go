package fsutil

// File and directory permission constants used for the workspace and for
// files written by extasset.
const (
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeSecure  = 0o640 // -rw-r-----: Workspace downloads

	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories
	DirModeSecure  = 0o750 // drwxr-x---: Workspace directories
)
