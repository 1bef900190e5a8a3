package cache

import "fmt"

// Common cache errors.
var (
	// ErrCacheClean is returned when there's an error cleaning the workspace.
	ErrCacheClean = fmt.Errorf("failed to clean workspace")

	// ErrCacheInfo is returned when there's an error getting workspace information.
	ErrCacheInfo = fmt.Errorf("failed to get workspace info")

	// ErrCacheDirectory is returned when the workspace directory is not set.
	ErrCacheDirectory = fmt.Errorf("workspace directory cannot be empty")
)
