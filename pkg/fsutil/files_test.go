package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameInDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0a1b2c"), []byte("png bytes"), FileModeSecure))

	require.NoError(t, RenameInDir(dir, "0a1b2c", "0a1b2c.png"))

	got, err := os.ReadFile(filepath.Join(dir, "0a1b2c.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(got))
	assert.NoFileExists(t, filepath.Join(dir, "0a1b2c"))
}

func TestRenameInDir_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key"), []byte("fresh"), FileModeSecure))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.css"), []byte("stale"), FileModeSecure))

	require.NoError(t, RenameInDir(dir, "key", "key.css"))

	got, err := os.ReadFile(filepath.Join(dir, "key.css"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestRenameInDir_SameName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key"), []byte("x"), FileModeSecure))

	require.NoError(t, RenameInDir(dir, "key", "key"))
	assert.FileExists(t, filepath.Join(dir, "key"))
}

func TestRenameInDir_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key"), []byte("x"), FileModeSecure))

	tests := []struct {
		name     string
		from, to string
		errMsg   string
	}{
		{name: "missing source", from: "nope", to: "nope.png", errMsg: "failed to stat"},
		{name: "directory source", from: "sub", to: "sub.png", errMsg: "not a regular file"},
		{name: "empty name", from: "", to: "key.png", errMsg: "invalid file name"},
		{name: "leaves directory", from: "key", to: "../key.png", errMsg: "invalid file name"},
		{name: "nested target", from: "key", to: "sub/key.png", errMsg: "invalid file name"},
		{name: "parent name", from: "key", to: "..", errMsg: "invalid file name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RenameInDir(dir, tt.from, tt.to)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
	assert.FileExists(t, filepath.Join(dir, "key"))
}

func TestCreateFilePerm(t *testing.T) {
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")

	file, err := CreateFilePerm(testFile, FileModeSecure)
	require.NoError(t, err)
	_, err = file.WriteString("test content")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModeSecure), info.Mode().Perm())
}
