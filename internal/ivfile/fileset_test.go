package ivfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTempSegment writes data to a temp file and registers it with fs,
// returning the assigned file id. Real segment files live on a mounted
// filesystem in production; tests use the OS temp dir directly since
// FileSet opens paths with os.Open rather than an abstract hackpadfs.FS.
func writeTempSegment(t *testing.T, fs *FileSet, fileID uint32, data []byte) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "segment.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	fs.AddFile(fileID, path)
}

func TestPinReadUnpin(t *testing.T) {
	fs := NewFileSet()
	data := []byte("hello impact world")
	writeTempSegment(t, fs, 1, data)

	h, err := fs.Pin(1, 6)
	require.NoError(t, err)

	buf := make([]byte, 6)
	n, err := h.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, "impact", string(buf))

	require.NoError(t, fs.Unpin(h))
}

func TestPinNesting(t *testing.T) {
	fs := NewFileSet()
	writeTempSegment(t, fs, 2, []byte("0123456789"))

	h1, err := fs.Pin(2, 0)
	require.NoError(t, err)
	h2, err := fs.Pin(2, 5)
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = h2.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "56789", string(buf))

	require.NoError(t, fs.Unpin(h1))
	require.NoError(t, fs.Unpin(h2))
}

func TestPinUnknownFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Pin(99, 0)
	require.Error(t, err)
}
