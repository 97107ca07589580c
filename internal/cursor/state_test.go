package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStartsUninitialized(t *testing.T) {
	s := New("alpha", 3, nil)
	require.Equal(t, uint64(Uninitialized), s.CurrentImpact)
	require.Equal(t, int64(-1), s.LastDocNo)
	require.Equal(t, uint64(3), s.WQT)
}

func TestCompareOrdersByImpactDescending(t *testing.T) {
	a := &State{CurrentImpact: 10}
	b := &State{CurrentImpact: 5}
	require.Equal(t, -1, Compare(a, b))
	require.Equal(t, 1, Compare(b, a))
	require.Equal(t, 0, Compare(a, a))
}

func TestCompareUninitializedSortsFirst(t *testing.T) {
	fresh := New("beta", 1, nil)
	active := &State{CurrentImpact: 100}
	require.Equal(t, 1, Compare(active, fresh), "an uninitialised cursor outranks any real impact")
}
