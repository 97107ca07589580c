// Package ranker is the step after the impact core: it takes the top-k of
// the accumulator the core filled and fills result records from the
// docmap. Scores are the raw accumulator values; no per-document weight or
// length normalisation is applied. It does not participate in traversal.
package ranker

import (
	"github.com/gokitt/impactq/internal/accum"
	"github.com/gokitt/impactq/pkg/impactidx"
)

// Result is one ranked hit, after docmap enrichment.
type Result struct {
	DocNo     impactidx.DocNo
	Score     uint64
	AuxString string
}

// Rank drains acc's top-k and enriches each row with its document's
// AuxString. A docno the map doesn't recognise (shouldn't happen for a
// consistent index) is left with an empty AuxString rather than dropped,
// so a ranking bug surfaces as an empty field instead of a missing row.
func Rank(idx *impactidx.Index, acc *accum.Table, k int) []Result {
	rows := acc.IterTopK(k)
	out := make([]Result, len(rows))
	for i, r := range rows {
		res := Result{DocNo: r.DocNo, Score: r.Score}
		if rec, ok := idx.Docs.Get(r.DocNo); ok {
			res.AuxString = rec.AuxString
		}
		out[i] = res
	}
	return out
}
