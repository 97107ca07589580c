package impactidx

import (
	"fmt"
	"sort"
)

// vocabEntry pairs a term with its vocabulary record; kept separate from
// the public TermEntry so Lookup's return type carries no bookkeeping the
// caller doesn't need.
type vocabEntry struct {
	term  string
	entry TermEntry
}

// Vocabulary is a sorted in-memory term index mapping term bytes to a
// TermEntry. It plays the role the teacher's vellum-backed FST wrapper
// played for the notes editor's token index: Insert during a sorted bulk
// load, Get (here Lookup) for point queries. A true FST reduces this to
// shared-prefix transitions; here a sorted slice with binary search gives
// the same lookup contract.
type Vocabulary struct {
	entries []vocabEntry
}

// NewVocabulary builds a vocabulary from (term, entry) pairs already
// sorted by term. The caller (the index loader, out of scope for this
// core) is responsible for the sort; NewVocabulary only verifies it.
func NewVocabulary(terms []string, entries []TermEntry) (*Vocabulary, error) {
	if len(terms) != len(entries) {
		return nil, fmt.Errorf("impactidx: %d terms but %d entries", len(terms), len(entries))
	}
	v := &Vocabulary{entries: make([]vocabEntry, len(terms))}
	for i, term := range terms {
		if i > 0 && terms[i-1] >= term {
			return nil, fmt.Errorf("impactidx: vocabulary terms not sorted: %q >= %q", terms[i-1], term)
		}
		v.entries[i] = vocabEntry{term: term, entry: entries[i]}
	}
	return v, nil
}

// Lookup returns the TermEntry for term, or ok=false on a miss. A miss is
// not an error: spec.md §7 has the evaluator drop that term silently.
func (v *Vocabulary) Lookup(term string) (TermEntry, bool) {
	i := sort.Search(len(v.entries), func(i int) bool { return v.entries[i].term >= term })
	if i < len(v.entries) && v.entries[i].term == term {
		return v.entries[i].entry, true
	}
	return TermEntry{}, false
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.entries) }
