package evaluator

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gokitt/impactq/internal/cursor"
)

func TestCursorHeapPopsHighestImpactFirst(t *testing.T) {
	h := cursorHeap{
		{Term: "a", CurrentImpact: 3},
		{Term: "b", CurrentImpact: 9},
		{Term: "c", CurrentImpact: 5},
	}
	heap.Init(&h)

	var order []string
	for h.Len() > 0 {
		top := heap.Pop(&h).(*cursor.State)
		order = append(order, top.Term)
	}
	require.Equal(t, []string{"b", "c", "a"}, order)
}
