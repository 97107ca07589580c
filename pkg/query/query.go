// Package query parses user query strings into the term list the impact
// evaluator consumes. Tokenisation, stemming, and stop-word removal proper
// are external collaborators (spec.md §1); this package only does the
// whitespace/phrase splitting and term-frequency counting needed to hand
// the evaluator a []Term.
package query

import (
	"strings"
	"unicode"
)

// Term is one distinct word in a query, along with how many times it
// occurred (f_qt in the spec).
type Term struct {
	Text string
	FQT  int
}

// Phrase is a double-quoted clause: its constituent words participate in
// term weighting like any other term. PhraseVerifier (phrase.go) can check
// the phrase as a whole against a document's text; neither the evaluator,
// Rank nor cmd/gokittq applies that check, so results are not filtered by
// phrase.
type Phrase struct {
	Words []string
	Raw   string
}

// Query is a parsed query: the deduplicated term list plus any phrase
// clauses found in the input.
type Query struct {
	Terms   []Term
	Phrases []Phrase
}

// Normalize applies the normalisation used consistently at both index and
// query time: case-folding only (no stemming, no diacritic folding).
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Parse splits input into terms, merging repeated words into a single Term
// with FQT counting occurrences, and collects any double-quoted phrases.
// An unclosed quote is treated as a run of ordinary terms.
func Parse(input string) *Query {
	q := &Query{}
	counts := make(map[string]int)
	order := make([]string, 0)

	addWord := func(w string) {
		w = Normalize(w)
		if w == "" {
			return
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	var cur strings.Builder
	var phraseWords []string
	inQuote := false

	flushWord := func() {
		if cur.Len() == 0 {
			return
		}
		w := cur.String()
		cur.Reset()
		if inQuote {
			phraseWords = append(phraseWords, Normalize(w))
		}
		addWord(w)
	}

	for _, r := range input {
		switch {
		case r == '"':
			flushWord()
			if inQuote {
				if len(phraseWords) > 0 {
					q.Phrases = append(q.Phrases, Phrase{
						Words: append([]string(nil), phraseWords...),
						Raw:   strings.Join(phraseWords, " "),
					})
				}
				phraseWords = nil
				inQuote = false
			} else {
				inQuote = true
			}
		case unicode.IsSpace(r):
			flushWord()
		default:
			cur.WriteRune(r)
		}
	}
	flushWord()

	q.Terms = make([]Term, len(order))
	for i, w := range order {
		q.Terms[i] = Term{Text: w, FQT: counts[w]}
	}
	return q
}
