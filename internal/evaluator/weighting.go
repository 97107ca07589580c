package evaluator

import (
	"math"
	"sort"

	"github.com/gokitt/impactq/internal/cursor"
	"github.com/gokitt/impactq/pkg/impactidx"
	"github.com/gokitt/impactq/pkg/query"
)

// survivor is one query term that made it through Step 1's term-fine
// filtering, still carrying its vocabulary entry so Step 2 can size its
// source's byte budget.
type survivor struct {
	term  string
	entry impactidx.TermEntry
	wqt   uint64
}

// selectSurvivors implements spec.md §4.5 Step 1: sort query terms by
// ascending collection frequency, quantise each term's query-side weight
// against the index's pivoted-normalisation statistics, apply the term
// fine, and drop terms it zeroes out. A term missing from the vocabulary
// is dropped silently (spec.md §7), not fined.
func selectSurvivors(vocab *impactidx.Vocabulary, stats impactidx.ImpactStats, terms []query.Term) []survivor {
	type candidate struct {
		term  string
		entry impactidx.TermEntry
		fqt   int
	}

	candidates := make([]candidate, 0, len(terms))
	for _, t := range terms {
		entry, ok := vocab.Lookup(t.Text)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{term: t.Text, entry: entry, fqt: t.FQT})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].entry.FT < candidates[j].entry.FT
	})

	normB := pivotNormConstant(stats.WqtMin, stats.WqtMax)

	survivors := make([]survivor, 0, len(candidates))
	for i, c := range candidates {
		wqt := quantiseWeight(c.fqt, c.entry.FT, stats, normB)
		termfine := uint64(0)
		if i > 1 {
			termfine = uint64(i - 1)
		}
		if termfine >= wqt {
			continue
		}
		survivors = append(survivors, survivor{term: c.term, entry: c.entry, wqt: wqt - termfine})
	}
	return survivors
}

// pivotNormConstant computes norm_B = (w_qt_max/w_qt_min) ^
// (w_qt_min/(w_qt_max-w_qt_min)); degenerate bounds (an index with a
// single quantisation level) fall back to 1, leaving the pivot a no-op.
func pivotNormConstant(wqtMin, wqtMax float64) float64 {
	if wqtMin <= 0 || wqtMax <= wqtMin {
		return 1
	}
	return math.Pow(wqtMax/wqtMin, wqtMin/(wqtMax-wqtMin))
}

// quantiseWeight computes the raw query-side weight, applies the pivoted
// normalisation used at index-build time, and quantises the result into
// quant_bits levels bounded by [w_qt_min, w_qt_max].
func quantiseWeight(fqt int, ft uint64, stats impactidx.ImpactStats, normB float64) uint64 {
	if fqt < 1 {
		fqt = 1
	}
	if ft == 0 {
		ft = 1
	}

	w := (1 + math.Log(float64(fqt))) * math.Log(1+stats.AvgFT/float64(ft))
	pivot := (1 - stats.Slope) + stats.Slope*normB
	if pivot == 0 {
		pivot = 1
	}
	wPrime := w / pivot

	if stats.WqtMax <= stats.WqtMin {
		return 1
	}
	if wPrime < stats.WqtMin {
		wPrime = stats.WqtMin
	}
	if wPrime > stats.WqtMax {
		wPrime = stats.WqtMax
	}

	levels := uint64(1)<<stats.QuantBits - 1
	frac := (wPrime - stats.WqtMin) / (stats.WqtMax - stats.WqtMin)
	return uint64(math.Round(frac * float64(levels)))
}

// newCursors constructs a C4 cursor per survivor, ready for Step 2 to
// attach a source. Each starts at the Uninitialised sentinel so the heap
// schedules it first to read its opening block header.
func newCursors(survivors []survivor) []*cursor.State {
	cursors := make([]*cursor.State, len(survivors))
	for i, s := range survivors {
		cursors[i] = cursor.New(s.term, s.wqt, nil)
	}
	return cursors
}
