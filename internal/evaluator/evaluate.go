// Package evaluator implements the impact evaluator (C5): the heap-driven
// traversal that is the core of this repository (spec.md §2, §4.5).
package evaluator

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/gokitt/impactq/internal/accum"
	"github.com/gokitt/impactq/internal/cursor"
	"github.com/gokitt/impactq/internal/vbyte"
	"github.com/gokitt/impactq/pkg/impactidx"
	"github.com/gokitt/impactq/pkg/query"
)

// Evaluate runs one query to completion: selecting and weighting surviving
// terms, opening their posting-list sources, and running the heap-driven
// traversal that deposits partial scores into acc. It is the single entry
// point named in spec.md §6. ctx is checked once per block consumed so a
// caller's timeout or cancellation stops the traversal between blocks
// rather than only at the start or end of the call.
func Evaluate(ctx context.Context, idx *impactidx.Index, q *query.Query, acc *accum.Table, accLimit int, scratchBudget int64) error {
	if accLimit <= 0 || scratchBudget <= 0 {
		return fmt.Errorf("%w: accLimit=%d scratchBudget=%d", ErrInvalid, accLimit, scratchBudget)
	}

	survivors := selectSurvivors(idx.Vocab, idx.Stats, q.Terms)
	if len(survivors) == 0 {
		return nil
	}

	cursors := newCursors(survivors)
	if err := openSources(idx, survivors, cursors, scratchBudget); err != nil {
		return err
	}

	return runTraversal(ctx, cursors, acc, accLimit)
}

// runTraversal is spec.md §4.5 Step 3, separated out so it can be driven
// directly by tests against hand-built cursors (spec.md §8's alpha/beta/
// gamma fixture fixes w_qt to 1 rather than routing through Step 1's
// weighting formula).
func runTraversal(ctx context.Context, cursors []*cursor.State, acc *accum.Table, accLimit int) error {
	survivorCount := len(cursors)
	if survivorCount == 0 {
		return nil
	}

	h := make(cursorHeap, len(cursors))
	copy(h, cursors)
	heap.Init(&h)

	var blockfine uint64
	var blocksRead int

	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			drainHeap(&h)
			return err
		}

		top := heap.Pop(&h).(*cursor.State)

		if top.CurrentImpact <= blockfine {
			closeCursor(top)
			drainHeap(&h)
			return nil
		}

		contrib := top.CurrentImpact - blockfine

		if top.BlockRemaining > 0 {
			if err := decodeBlock(top, contrib, acc, accLimit); err != nil {
				closeCursor(top)
				drainHeap(&h)
				return err
			}
			top.BlockRemaining = 0
		}

		if len(top.Window) < 2*vbyte.MaxLen {
			finished, err := refill(top)
			if err != nil {
				closeCursor(top)
				drainHeap(&h)
				return err
			}
			if finished && len(top.Window) == 0 {
				closeCursor(top)
				continue
			}
		}

		done, err := advanceBlockHeader(top, &blocksRead, &blockfine, survivorCount)
		if err != nil {
			closeCursor(top)
			drainHeap(&h)
			return err
		}
		if done {
			closeCursor(top)
			continue
		}

		heap.Push(&h, top)
	}

	return nil
}

// decodeBlock applies one fully-buffered impact block to acc, choosing
// create-or-update or update-only decoding per spec.md §4.5 Step 3.3. The
// gate is the accumulator's size against acc_limit at the start of the
// block: Reserve is still consulted (matching the source's capacity hint),
// but a Go map never fails to grow, so its result is advisory rather than
// a veto — the table may overshoot acc_limit by up to one block's worth
// of entries, which spec.md §8's accumulator-cap invariant allows for.
func decodeBlock(top *cursor.State, contrib uint64, acc *accum.Table, accLimit int) error {
	createMode := acc.Size() < accLimit
	acc.Reserve(top.BlockRemaining)

	for i := 0; i < top.BlockRemaining; i++ {
		delta, err := decodeDelta(top)
		if err != nil {
			return err
		}
		top.LastDocNo += int64(delta) + 1
		docno := cursor.DocNo(top.LastDocNo)
		if createMode {
			acc.CreateOrAdd(docno, contrib)
		} else {
			acc.AddIfPresent(docno, contrib)
		}
	}
	return nil
}

// advanceBlockHeader implements spec.md §4.5 Step 3.5: read the next
// block's header, applying the block-fine schedule and the rewind-once
// refill rule spec.md §9 resolves for the second-vbyte-failure fixed
// point. done reports that the cursor's list is exhausted with no error.
func advanceBlockHeader(top *cursor.State, blocksRead *int, blockfine *uint64, survivorCount int) (done bool, err error) {
	bsize, impactMinus1, ok, err := readBlockHeader(top)
	if err != nil {
		return false, err
	}
	if !ok {
		finished, rerr := refill(top)
		if rerr != nil {
			return false, rerr
		}
		bsize, impactMinus1, ok, err = readBlockHeader(top)
		if err != nil {
			return false, err
		}
		if !ok {
			if finished && len(top.Window) == 0 {
				return true, nil
			}
			if top.CurrentImpact == cursor.Uninitialized {
				return false, fmt.Errorf("%w: term %q has no readable blocks", ErrMalformed, top.Term)
			}
			return false, fmt.Errorf("%w: term %q stalled reading next block header", ErrMalformed, top.Term)
		}
	}

	*blocksRead++
	if *blocksRead > survivorCount {
		*blockfine++
	}

	top.BlockRemaining = int(bsize)
	top.CurrentImpact = (impactMinus1 + 1) * top.WQT
	top.LastDocNo = -1
	return false, nil
}

func closeCursor(c *cursor.State) {
	if c.Source != nil {
		_ = c.Source.Close()
		c.Source = nil
	}
}

func drainHeap(h *cursorHeap) {
	for h.Len() > 0 {
		c := heap.Pop(h).(*cursor.State)
		closeCursor(c)
	}
}
