package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenameInDir renames the regular file dir/from to dir/to, replacing an
// existing dir/to. Both names must be plain file names: the rename never
// leaves dir, so it is atomic on every platform.
func RenameInDir(dir, from, to string) error {
	if err := checkName(from); err != nil {
		return err
	}
	if err := checkName(to); err != nil {
		return err
	}

	src := filepath.Join(dir, from)
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}
	if from == to {
		return nil
	}
	return os.Rename(src, filepath.Join(dir, to))
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

// CreateFilePerm creates or truncates a file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}
