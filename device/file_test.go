package device

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ekvdb.img")
	f, err := OpenFile(path, 32)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write(8, []byte("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	out := make([]byte, 5)
	n, err = f.Read(8, out, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), out)
}

func TestFileSizeIsFixedAtOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ekvdb.img")
	f, err := OpenFile(path, 64)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 64, f.Size())
}

func TestFileWritePastEndFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ekvdb.img")
	f, err := OpenFile(path, 8)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write(4, []byte("toolong!"), 8)
	assert.Error(t, err)
	assert.Equal(t, -1, n)
}

func TestFileReattachSeesPriorWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ekvdb.img")
	f1, err := OpenFile(path, 16)
	require.NoError(t, err)
	_, err = f1.Write(0, []byte("persist!"), 8)
	require.NoError(t, err)
	require.NoError(t, f1.Close())

	f2, err := OpenFile(path, 16)
	require.NoError(t, err)
	defer f2.Close()

	out := make([]byte, 8)
	_, err = f2.Read(0, out, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("persist!"), out)
}
