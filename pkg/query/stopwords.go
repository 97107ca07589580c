package query

import "github.com/orsinium-labs/stopwords"

// DropStopwords removes English stop words from q's term list in place.
// Stop-word filtering is an external collaborator the impact core never
// calls itself (spec.md §1); it is offered here for callers assembling a
// Query before handing it to the evaluator.
func DropStopwords(q *Query) {
	kept := q.Terms[:0]
	for _, t := range q.Terms {
		if stopwords.English.IsStopword(t.Text) {
			continue
		}
		kept = append(kept, t)
	}
	q.Terms = kept
}
