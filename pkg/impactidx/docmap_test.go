package impactidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocMapGet(t *testing.T) {
	dm := NewDocMap([]DocRecord{
		{DocNo: 2, AuxString: "doc2"},
		{DocNo: 0, AuxString: "doc0"},
	})

	rec, ok := dm.Get(2)
	require.True(t, ok)
	require.Equal(t, "doc2", rec.AuxString)

	rec, ok = dm.Get(1)
	require.True(t, ok, "gaps are present but zero-valued, not absent")
	require.Equal(t, "", rec.AuxString)

	_, ok = dm.Get(99)
	require.False(t, ok)
}
