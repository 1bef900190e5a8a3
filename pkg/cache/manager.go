package cache

import (
	"os"

	"github.com/cperrin88/extasset/pkg/errors"
	"github.com/cperrin88/extasset/pkg/fsutil"
)

// Workspace implements Manager for the download workspace directory.
type Workspace struct {
	directory string
	clear     bool
}

// NewWorkspace creates a workspace manager. When clear is set the directory
// is wiped by Prepare and removed by Cleanup; otherwise completed downloads
// persist across runs.
func NewWorkspace(directory string, clear bool) *Workspace {
	return &Workspace{
		directory: directory,
		clear:     clear,
	}
}

// Prepare makes sure the workspace exists, emptying it first if clearing is enabled.
func (w *Workspace) Prepare() error {
	if w.directory == "" {
		return ErrCacheDirectory
	}
	if w.clear {
		if err := os.RemoveAll(w.directory); err != nil {
			return errors.Wrapf(errors.ErrWorkspace, "clear %s: %v", w.directory, err)
		}
	}
	if err := os.MkdirAll(w.directory, WorkspaceDirPerm); err != nil {
		return errors.Wrapf(errors.ErrWorkspace, "create %s: %v", w.directory, err)
	}
	return nil
}

// Cleanup removes the workspace if clearing is enabled.
func (w *Workspace) Cleanup() error {
	if !w.clear {
		return nil
	}
	if err := os.RemoveAll(w.directory); err != nil {
		return errors.Wrapf(errors.ErrWorkspace, "remove %s: %v", w.directory, err)
	}
	return nil
}

// Clean removes the workspace regardless of the clear setting.
func (w *Workspace) Clean() (*CleanResult, error) {
	if w.directory == "" {
		return nil, ErrCacheDirectory
	}
	freed, err := fsutil.RemoveDir(w.directory)
	if err != nil {
		return nil, errors.Wrap(ErrCacheClean, err.Error())
	}
	return &CleanResult{TotalFreed: freed}, nil
}

// GetInfo returns information about the workspace.
func (w *Workspace) GetInfo() (*Info, error) {
	info := &Info{Directory: w.directory}

	entries, err := os.ReadDir(w.directory)
	if os.IsNotExist(err) {
		return info, nil
	}
	if err != nil {
		return nil, errors.Wrap(ErrCacheInfo, err.Error())
	}
	info.Exists = true

	for _, e := range entries {
		if e.IsDir() {
			info.Other++
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, errors.Wrap(ErrCacheInfo, err.Error())
		}
		info.TotalSize += fi.Size()

		key, ext := splitName(e.Name())
		switch {
		case !IsKey(key):
			info.Other++
		case ext == "":
			info.Partial++
		default:
			info.Completed++
		}
	}
	return info, nil
}

// GetDirectory returns the workspace directory path.
func (w *Workspace) GetDirectory() string {
	return w.directory
}
