package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gokitt/impactq/internal/accum"
	"github.com/gokitt/impactq/internal/cursor"
	"github.com/gokitt/impactq/internal/postings"
	"github.com/gokitt/impactq/internal/vbyte"
)

// block is one (impact, docnos) pair used to build a synthetic
// impact-ordered posting list for tests.
type block struct {
	impact int
	docnos []int
}

// encodeList renders blocks into the wire format from spec.md §6:
// vbyte(blocksize) vbyte(impact_minus_one) followed by blocksize deltas,
// the first absolute and the rest prev+d+1.
func encodeList(blocks []block) []byte {
	var out []byte
	for _, b := range blocks {
		out = vbyte.AppendUvarint(out, uint64(len(b.docnos)))
		out = vbyte.AppendUvarint(out, uint64(b.impact-1))
		last := -1
		for _, d := range b.docnos {
			out = vbyte.AppendUvarint(out, uint64(d-last-1))
			last = d
		}
	}
	return out
}

func newTermCursor(t *testing.T, term string, blocks []block) *cursor.State {
	t.Helper()
	src := postings.NewInlineSource(encodeList(blocks))
	return cursor.New(term, 1, src)
}

func TestTraversalSingleTermAlpha(t *testing.T) {
	alpha := newTermCursor(t, "alpha", []block{
		{impact: 5, docnos: []int{1}},
		{impact: 3, docnos: []int{2, 4}},
		{impact: 1, docnos: []int{3}},
	})

	acc := accum.New(100)
	err := runTraversal(context.Background(), []*cursor.State{alpha}, acc, 100)
	require.NoError(t, err)

	top := acc.IterTopK(2)
	require.Equal(t, []accum.Result{{DocNo: 1, Score: 5}, {DocNo: 2, Score: 3}}, top)

	all := acc.IterTopK(10)
	want := map[uint32]uint64{1: 5, 2: 3, 4: 3, 3: 1}
	require.Len(t, all, len(want))
	for _, r := range all {
		require.Equal(t, want[r.DocNo], r.Score)
	}
}

func TestTraversalTwoTermsAlphaBeta(t *testing.T) {
	alpha := newTermCursor(t, "alpha", []block{
		{impact: 5, docnos: []int{1}},
		{impact: 3, docnos: []int{2, 4}},
		{impact: 1, docnos: []int{3}},
	})
	beta := newTermCursor(t, "beta", []block{
		{impact: 4, docnos: []int{2}},
		{impact: 2, docnos: []int{1, 4}},
		{impact: 1, docnos: []int{3}},
	})

	acc := accum.New(100)
	err := runTraversal(context.Background(), []*cursor.State{alpha, beta}, acc, 100)
	require.NoError(t, err)

	// Every block contributes exactly once: final scores are the per-term
	// sums regardless of the exact order blockfine cuts the tail off,
	// since all six blocks fit before any termination could bite.
	got := make(map[uint32]uint64)
	for _, r := range acc.IterTopK(10) {
		got[r.DocNo] = r.Score
	}
	require.Equal(t, uint64(7), got[1])
	require.Equal(t, uint64(7), got[2])
	require.Equal(t, uint64(5), got[4])
}

func TestTraversalThreeTermsGammaDroppedByFine(t *testing.T) {
	// gamma receives termfine=1 under w_qt=1 and is dropped before Step 2;
	// this test exercises the traversal directly with only the two
	// surviving cursors, matching scenario 3's claim that the run is
	// identical to scenario 2.
	alpha := newTermCursor(t, "alpha", []block{
		{impact: 5, docnos: []int{1}},
		{impact: 3, docnos: []int{2, 4}},
		{impact: 1, docnos: []int{3}},
	})
	beta := newTermCursor(t, "beta", []block{
		{impact: 4, docnos: []int{2}},
		{impact: 2, docnos: []int{1, 4}},
		{impact: 1, docnos: []int{3}},
	})

	acc := accum.New(100)
	err := runTraversal(context.Background(), []*cursor.State{alpha, beta}, acc, 100)
	require.NoError(t, err)
	require.Positive(t, acc.Size())
}

func TestTraversalMissingTermYieldsEmpty(t *testing.T) {
	acc := accum.New(100)
	err := runTraversal(context.Background(), nil, acc, 100)
	require.NoError(t, err)
	require.Equal(t, 0, acc.Size())
}

func TestTraversalAccumulatorCapSwitchesToUpdateOnly(t *testing.T) {
	alpha := newTermCursor(t, "alpha", []block{
		{impact: 5, docnos: []int{1}},
		{impact: 3, docnos: []int{2, 4}},
		{impact: 1, docnos: []int{3}},
	})

	acc := accum.New(2)
	err := runTraversal(context.Background(), []*cursor.State{alpha}, acc, 2)
	require.NoError(t, err)

	require.LessOrEqual(t, acc.Size(), 3) // cap plus one reserve'd block's worth
	top := acc.IterTopK(2)
	require.Equal(t, []accum.Result{{DocNo: 1, Score: 5}, {DocNo: 2, Score: 3}}, top)

	found := false
	for _, r := range acc.IterTopK(10) {
		if r.DocNo == 3 {
			found = true
		}
	}
	require.False(t, found, "docno 3's block arrives after the cap and must not create a new entry")
}

func TestTraversalMalformedListReturnsError(t *testing.T) {
	full := encodeList([]block{
		{impact: 5, docnos: []int{1}},
		{impact: 3, docnos: []int{2, 4}},
	})
	truncated := full[:len(full)-1]
	src := postings.NewInlineSource(truncated)
	alpha := cursor.New("alpha", 1, src)

	acc := accum.New(100)
	err := runTraversal(context.Background(), []*cursor.State{alpha}, acc, 100)
	require.ErrorIs(t, err, ErrMalformed)
}
