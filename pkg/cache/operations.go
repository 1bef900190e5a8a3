package cache

import (
	"fmt"
)

// Operation renders workspace operations for the command line.
type Operation struct {
	manager Manager
}

// NewOperation creates a new workspace operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// Clean removes the workspace and describes what was freed.
func (op *Operation) Clean() (string, error) {
	result, err := op.manager.Clean()
	if err != nil {
		return "", fmt.Errorf("failed to clean workspace: %w", err)
	}

	if result.TotalFreed > 0 {
		return fmt.Sprintf("Successfully cleaned workspace. Freed %s of disk space.", formatBytes(result.TotalFreed)), nil
	}
	return "No files were removed from the workspace.", nil
}

// GetInfo returns a human-readable workspace summary.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get workspace info: %w", err)
	}

	if !info.Exists {
		return fmt.Sprintf("Workspace Information:\n  Directory:    %s (missing)", info.Directory), nil
	}

	return fmt.Sprintf(`Workspace Information:
  Directory:    %s
  Total Size:   %s
  Completed:    %d
  Partial:      %d
  Other:        %d`,
		info.Directory,
		formatBytes(info.TotalSize),
		info.Completed,
		info.Partial,
		info.Other,
	), nil
}

// GetDirectory returns the workspace directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.GetDirectory()
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
