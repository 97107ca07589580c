// Package cursor holds the per-term traversal state (C4) that the impact
// evaluator's heap is keyed on.
package cursor

import (
	"math"

	"github.com/gokitt/impactq/internal/postings"
)

// DocNo is the dense document identifier used across the evaluation core.
type DocNo = uint32

// Uninitialized is the sentinel CurrentImpact value meaning "this cursor
// has not read its first block header yet — schedule it before any block
// whose impact has actually been observed."
const Uninitialized = math.MaxUint64

// State is one query term's traversal state over its posting list.
type State struct {
	Term           string
	WQT            uint64 // quantised query-side weight
	CurrentImpact  uint64 // (block_impact + 1) * WQT, or Uninitialized
	BlockRemaining int    // docnos left to decode in the current block
	LastDocNo      int64  // last fully decoded docno in the block, -1 at block start
	Window         []byte // in-memory bytes available for decoding
	Source         postings.Source
	Finished       bool // true once Source has reported FINISH; no further refill is attempted
}

// New creates a cursor ready to read its first block header.
func New(term string, wqt uint64, src postings.Source) *State {
	return &State{
		Term:          term,
		WQT:           wqt,
		CurrentImpact: Uninitialized,
		LastDocNo:     -1,
		Source:        src,
	}
}

// Compare orders a and b by CurrentImpact descending, implementing
// term_data_compare from the spec. Equal impacts compare equal; the
// heap need not be stable in that case.
func Compare(a, b *State) int {
	switch {
	case a.CurrentImpact > b.CurrentImpact:
		return -1
	case a.CurrentImpact < b.CurrentImpact:
		return 1
	default:
		return 0
	}
}
