// Package fsutil provides small file system helpers used by the workspace
// and cache code.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all necessary parent directories with default permissions if they don't exist.
// An already existing directory is not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// DirSize walks dir and returns the total size of regular files and their count.
// A missing directory yields zero values and no error.
func DirSize(dir string) (int64, int, error) {
	var size int64
	var files int

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		files++
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("error walking directory %s: %w", dir, err)
	}
	return size, files, nil
}

// RemoveDir removes dir and everything under it and returns the number of bytes freed.
func RemoveDir(dir string) (int64, error) {
	size, _, err := DirSize(dir)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return 0, fmt.Errorf("failed to remove directory %s: %w", dir, err)
	}
	return size, nil
}
