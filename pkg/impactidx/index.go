package impactidx

import (
	"github.com/gokitt/impactq/internal/ivfile"
	"github.com/gokitt/impactq/internal/postings"
)

// Index is the read-only handle the evaluator is given: vocabulary lookup,
// docmap, impact-wide statistics, and the file-set byte-range primitive,
// tied together (spec.md §6's three "external interfaces" plus the impact
// statistics record).
type Index struct {
	Vocab *Vocabulary
	Docs  *DocMap
	Stats ImpactStats
	Files *ivfile.FileSet
}

// New assembles an Index from its already-loaded parts.
func New(vocab *Vocabulary, docs *DocMap, stats ImpactStats, files *ivfile.FileSet) *Index {
	return &Index{Vocab: vocab, Docs: docs, Stats: stats, Files: files}
}

// OpenSource constructs the streaming C2 source for a term's list
// descriptor, honouring the inline-vs-on-disk distinction from §3.
func (idx *Index) OpenSource(desc ListDescriptor, budget int) (postings.Source, error) {
	if !desc.OnDisk() {
		return postings.NewInlineSource(desc.Inline), nil
	}
	return postings.NewFileSource(idx.Files, desc.FileID, desc.Offset, desc.Length, budget)
}
