// Package accum implements the bounded-capacity accumulator table (C3): a
// map from document id to partial score that switches from
// create-or-update to update-only once a soft capacity is reached.
package accum

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// DocNo is the dense document identifier used across the evaluation core.
type DocNo = uint32

// Result is one row of a top-k result set.
type Result struct {
	DocNo DocNo
	Score uint64
}

// Table is the accumulator. All state is owned by the evaluator for the
// duration of one Evaluate call; nothing survives between queries.
type Table struct {
	limit   int
	scores  map[DocNo]uint64
	present *roaring.Bitmap
}

// New creates an accumulator with the given soft capacity.
func New(limit int) *Table {
	return &Table{
		limit:   limit,
		scores:  make(map[DocNo]uint64),
		present: roaring.New(),
	}
}

// Size returns the current entry count.
func (t *Table) Size() int {
	return len(t.scores)
}

// Reserve hints that up to n new entries may be inserted and returns how
// many of those the table can accept before hitting its soft cap. Go's
// map never fails to grow, so the evaluator treats this as an advisory
// capacity hint rather than a veto: the create-or-update/update-only
// decision is made from Size() against acc_limit instead, consistent with
// the accumulator-cap invariant allowing a single block to overshoot the
// cap.
func (t *Table) Reserve(n int) int {
	free := t.limit - t.Size()
	if free < 0 {
		free = 0
	}
	if n < free {
		return n
	}
	return free
}

// CreateOrAdd adds contrib to docno's score, inserting a fresh entry
// (starting from zero) if absent. Reports whether the entry already
// existed, mirroring find_or_insert(docno, &v, initial=0, &found) followed
// by *v += contrib.
func (t *Table) CreateOrAdd(docno DocNo, contrib uint64) (found bool) {
	cur, found := t.scores[docno]
	t.scores[docno] = cur + contrib
	if !found {
		t.present.Add(docno)
	}
	return found
}

// AddIfPresent adds contrib to docno's score only if it is already present.
// Reports whether the entry existed. Membership is tested against a
// roaring bitmap kept in lockstep with scores, which is cheaper than a
// second map probe once the table holds many entries.
func (t *Table) AddIfPresent(docno DocNo, contrib uint64) (found bool) {
	if !t.present.Contains(docno) {
		return false
	}
	t.scores[docno] += contrib
	return true
}

// IterTopK returns the k entries with the largest score, ties broken by
// smaller docno first.
func (t *Table) IterTopK(k int) []Result {
	if k <= 0 || len(t.scores) == 0 {
		return nil
	}

	results := make([]Result, 0, len(t.scores))
	for d, s := range t.scores {
		results = append(results, Result{DocNo: d, Score: s})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocNo < results[j].DocNo
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}
