package sidecontent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwmars/mkdbupgrade/internal/files/filesystem"
	"github.com/cwmars/mkdbupgrade/internal/logging"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

func TestNewLoader_Nil(t *testing.T) {
	assert.Panics(t, func() { NewLoader(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewLoader(filesystem.NewMemoryFileSystem("/"), nil) })
}

func TestLoad_OrderAndVerbatim(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("b.sql", "-- b\n")
	mfs.AddFile("a.sql", "-- a, no newline")
	mfs.AddFile("post.sql", "\tVACUUM;\r\n")

	pre, post, err := NewLoader(mfs, logging.NewNullLogger()).Load([]string{"b.sql", "a.sql"}, []string{"post.sql"})
	require.NoError(t, err)

	require.Len(t, pre, 2)
	assert.Equal(t, "b.sql", pre[0].Path)
	assert.Equal(t, "-- b\n", pre[0].Content)
	assert.Equal(t, "a.sql", pre[1].Path)
	assert.Equal(t, "-- a, no newline", pre[1].Content)
	require.Len(t, post, 1)
	assert.Equal(t, "\tVACUUM;\r\n", post[0].Content)
}

func TestLoad_Empty(t *testing.T) {
	pre, post, err := NewLoader(filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger()).Load(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, pre)
	assert.Empty(t, post)
}

func TestLoad_ReportsEveryMissingFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("ok.sql", "x")
	mfs.AddFile("locked.sql", "x")
	mfs.Unreadable["/work/locked.sql"] = true

	_, _, err := NewLoader(mfs, logging.NewNullLogger()).Load(
		[]string{"ok.sql", "missing-pre.sql"},
		[]string{"locked.sql", "missing-post.sql"},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mkdbupgrade.ErrSideContentUnreadable))
	for _, p := range []string{"missing-pre.sql", "locked.sql", "missing-post.sql"} {
		assert.Contains(t, err.Error(), p)
	}
	assert.NotContains(t, err.Error(), "ok.sql")
}
