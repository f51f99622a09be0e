package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_WriteFileAtomic_Creates(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "3.7.4-3.15.4-upgrade-db.sql")

	p := NewOSFileSystem()
	require.NoError(t, p.WriteFileAtomic(target, []byte("BEGIN;\nCOMMIT;\n"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN;\nCOMMIT;\n", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestOSFileSystem_WriteFileAtomic_Replaces(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.sql")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	p := NewOSFileSystem()
	require.NoError(t, p.WriteFileAtomic(target, []byte("new"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestOSFileSystem_WriteFileAtomic_MissingDir(t *testing.T) {
	p := NewOSFileSystem()
	err := p.WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "out.sql"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestOSFileSystem_StatMissing(t *testing.T) {
	p := NewOSFileSystem()
	_, err := p.Stat(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	ok, err := Exists(p, filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOSFileSystem_MkdirAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	p := NewOSFileSystem()
	require.NoError(t, p.MkdirAll(dir))
	info, err := p.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
