package fsio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/errors"
	"espedit/internal/fsio"
)

func TestWriteCreatesParentsAndReadsBack(t *testing.T) {
	fs := fsio.NewOS()
	path := filepath.Join(t.TempDir(), "match", "base.yml")

	require.NoError(t, fs.Write(path, []byte("matches: []\n")))

	data, err := fs.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "matches: []\n", string(data))
}

func TestReadMissingFile(t *testing.T) {
	fs := fsio.NewOS()
	_, err := fs.Read(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	var ferr *errors.FileError
	require.True(t, errors.As(err, &ferr))
	assert.NotEmpty(t, ferr.Path())
}

func TestListDir(t *testing.T) {
	fs := fsio.NewOS()
	dir := t.TempDir()
	require.NoError(t, fs.Write(filepath.Join(dir, "b.yml"), nil))
	require.NoError(t, fs.Write(filepath.Join(dir, "a.yml"), nil))

	paths, err := fs.ListDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yml"),
	}, paths)

	_, err = fs.ListDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
}
