package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "newdir")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "parent", "child", "nested")
			},
		},
		{
			name: "succeeds when directory already exists",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			require.NoError(t, EnsureDir(dir))
			assert.DirExists(t, dir)
		})
	}
}

func TestEnsureFileDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "asset.png")
	require.NoError(t, EnsureFileDir(file))
	assert.DirExists(t, filepath.Dir(file))
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("12345"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), []byte("123"), 0644))

	size, files, err := DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)
	assert.Equal(t, 2, files)
}

func TestDirSize_Missing(t *testing.T) {
	size, files, err := DirSize(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
	assert.Zero(t, files)
}

func TestRemoveDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), []byte("1234"), 0644))

	freed, err := RemoveDir(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(4), freed)
	assert.NoDirExists(t, dir)
}
