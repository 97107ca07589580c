package accum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOrAddAndReserve(t *testing.T) {
	tbl := New(2)

	require.Equal(t, 2, tbl.Reserve(5))

	found := tbl.CreateOrAdd(1, 5)
	require.False(t, found)
	found = tbl.CreateOrAdd(2, 3)
	require.False(t, found)

	require.Equal(t, 0, tbl.Reserve(1), "cap reached, no more room")

	// Updating an existing entry is always allowed past the cap.
	found = tbl.CreateOrAdd(1, 2)
	require.True(t, found)

	require.Equal(t, 2, tbl.Size())
}

func TestAddIfPresent(t *testing.T) {
	tbl := New(10)
	tbl.CreateOrAdd(1, 5)

	found := tbl.AddIfPresent(1, 10)
	require.True(t, found)

	found = tbl.AddIfPresent(2, 10)
	require.False(t, found, "docno 2 was never inserted")

	require.Equal(t, 1, tbl.Size())
}

func TestIterTopKTieBreak(t *testing.T) {
	tbl := New(10)
	tbl.CreateOrAdd(5, 3)
	tbl.CreateOrAdd(2, 3)
	tbl.CreateOrAdd(1, 9)

	top := tbl.IterTopK(2)
	require.Equal(t, []Result{{DocNo: 1, Score: 9}, {DocNo: 2, Score: 3}}, top)
}

func TestIterTopKEmpty(t *testing.T) {
	tbl := New(10)
	require.Nil(t, tbl.IterTopK(5))
}
