package query

import (
	ahocorasick "github.com/coregx/ahocorasick"
)

// PhraseVerifier checks whether a candidate document's text contains every
// phrase clause of a query, in one pass over the text. Phrase matching is
// outside the impact core: it works on document text, and neither the
// evaluator nor the ranker calls it.
type PhraseVerifier struct {
	ac      ahocorasick.AhoCorasick
	phrases []Phrase
}

// NewPhraseVerifier builds an Aho-Corasick automaton over q's phrase
// clauses, adapted from the teacher's qgram query verifier: one
// multi-pattern automaton instead of scanning the text once per phrase.
func NewPhraseVerifier(q *Query) *PhraseVerifier {
	if len(q.Phrases) == 0 {
		return &PhraseVerifier{}
	}

	patterns := make([]string, len(q.Phrases))
	for i, p := range q.Phrases {
		patterns[i] = p.Raw
	}

	b := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false, // Normalize already lowercases
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
		DFA:                  false,
	})

	return &PhraseVerifier{ac: b.Build(patterns), phrases: q.Phrases}
}

// AllPresent reports whether every phrase clause occurs somewhere in text.
// text should already be Normalize()d the way the index stores it.
func (v *PhraseVerifier) AllPresent(text string) bool {
	if len(v.phrases) == 0 {
		return true
	}

	seen := make([]bool, len(v.phrases))
	remaining := len(v.phrases)

	it := v.ac.Iter(text)
	for {
		m := it.Next()
		if m == nil {
			break
		}
		idx := m.Pattern()
		if !seen[idx] {
			seen[idx] = true
			remaining--
			if remaining == 0 {
				return true
			}
		}
	}
	return remaining == 0
}
