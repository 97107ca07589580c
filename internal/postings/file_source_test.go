package postings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gokitt/impactq/internal/ivfile"
)

func writeTempSegment(t *testing.T, fs *ivfile.FileSet, fileID uint32, data []byte) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "segment.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	fs.AddFile(fileID, path)
}

func TestFileSourceReadsWithinBudget(t *testing.T) {
	fs := ivfile.NewFileSet()
	data := []byte("0123456789abcdef")
	writeTempSegment(t, fs, 1, data)

	src, err := NewFileSource(fs, 1, 0, int64(len(data)), 6)
	require.NoError(t, err)
	defer src.Close()

	window, finished, err := src.ReadMore(0)
	require.NoError(t, err)
	require.False(t, finished)
	require.Equal(t, "012345", string(window))

	window, finished, err = src.ReadMore(2)
	require.NoError(t, err)
	require.False(t, finished)
	require.Equal(t, "456789", string(window))

	window, finished, err = src.ReadMore(0)
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, "abcdef", string(window))
}

func TestFileSourceFinishesWhenListFitsBudget(t *testing.T) {
	fs := ivfile.NewFileSet()
	data := []byte("abcdef")
	writeTempSegment(t, fs, 2, data)

	src, err := NewFileSource(fs, 2, 0, int64(len(data)), 64)
	require.NoError(t, err)
	defer src.Close()

	window, finished, err := src.ReadMore(0)
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, "abcdef", string(window))
}

func TestFileSourceInvalidKeep(t *testing.T) {
	fs := ivfile.NewFileSet()
	writeTempSegment(t, fs, 3, []byte("xyz"))

	src, err := NewFileSource(fs, 3, 0, 3, 8)
	require.NoError(t, err)
	defer src.Close()

	_, _, err = src.ReadMore(1)
	require.Error(t, err)
}

func TestFileSourceRejectsNonPositiveBudget(t *testing.T) {
	fs := ivfile.NewFileSet()
	writeTempSegment(t, fs, 4, []byte("xyz"))

	_, err := NewFileSource(fs, 4, 0, 3, 0)
	require.Error(t, err)
}

func TestInlineSourceDeliversThenFinishes(t *testing.T) {
	src := NewInlineSource([]byte("hello"))

	window, finished, err := src.ReadMore(0)
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, "hello", string(window))

	_, _, err = src.ReadMore(1)
	require.Error(t, err)

	_, finished, err = src.ReadMore(0)
	require.NoError(t, err)
	require.True(t, finished)
}
