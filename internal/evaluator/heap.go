package evaluator

import (
	"container/heap"

	"github.com/gokitt/impactq/internal/cursor"
)

// cursorHeap is a container/heap.Interface over the surviving term
// cursors, ordered by cursor.Compare (current_impact descending).
type cursorHeap []*cursor.State

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool { return cursor.Compare(h[i], h[j]) < 0 }

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) {
	*h = append(*h, x.(*cursor.State))
}

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

var _ heap.Interface = (*cursorHeap)(nil)
