package cache

// Manager defines the interface for workspace management operations.
type Manager interface {
	Prepare() error
	Cleanup() error
	Clean() (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed int64
}

// Info represents workspace information.
type Info struct {
	Directory string
	Exists    bool
	TotalSize int64
	// Completed counts finished downloads named <key>.<ext>.
	Completed int
	// Partial counts bare <key> files left by a download in progress, an
	// interrupted run, or a response without a usable content type.
	Partial int
	// Other counts entries that do not follow the cache naming scheme.
	Other int
}
