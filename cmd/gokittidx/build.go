package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gokitt/impactq/internal/vbyte"
	"github.com/gokitt/impactq/pkg/impactidx"
	"github.com/gokitt/impactq/pkg/query"
)

// inlineThreshold is the byte length under which an encoded posting list
// is stored directly in the vocabulary entry instead of the shared
// segment file, mirroring the "short lists live inline" case the
// evaluator's ListDescriptor distinguishes (spec.md §6).
const inlineThreshold = 48

// corpusDoc is one line of the newline-delimited JSON corpus this builder
// reads: {"id": "...", "text": "...", "weight": 1.0}. weight defaults to 1
// when omitted or non-positive.
type corpusDoc struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type posting struct {
	docno uint32
	tf    int
}

// BuildResult summarises what BuildIndex produced, for the catalog record
// and for the command's own confirmation output.
type BuildResult struct {
	DocCount  int
	TermCount int
}

// BuildIndex reads corpusPath (one JSON document per line) and writes a
// complete index directory at outDir: vocab.bin, docmap.bin, stats.bin,
// and a segments/1.bin holding every posting list too long to inline.
// It is deliberately simple — whitespace tokenisation, a single impact
// level per (term, doc) pair derived from raw term frequency — since
// index construction proper is out of scope (spec.md §1) and this is a
// fixture builder for exercising the evaluator, not a production loader.
func BuildIndex(corpusPath, outDir string) (BuildResult, error) {
	f, err := os.Open(corpusPath)
	if err != nil {
		return BuildResult{}, fmt.Errorf("gokittidx: open corpus: %w", err)
	}
	defer f.Close()

	var docs []impactidx.DocRecord
	postingsByTerm := make(map[string][]posting)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var docno uint32
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var d corpusDoc
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			return BuildResult{}, fmt.Errorf("gokittidx: parse line %d: %w", docno+1, err)
		}
		if d.Weight <= 0 {
			d.Weight = 1
		}

		words := strings.Fields(query.Normalize(d.Text))
		tf := make(map[string]int, len(words))
		for _, w := range words {
			tf[w]++
		}

		distinct := 0
		for term, count := range tf {
			postingsByTerm[term] = append(postingsByTerm[term], posting{docno: docno, tf: count})
			distinct++
		}

		docs = append(docs, impactidx.DocRecord{
			DocNo:         docno,
			Bytes:         int64(len(d.Text)),
			Words:         int64(len(words)),
			DistinctWords: int64(distinct),
			Weight:        d.Weight,
			AuxString:     d.ID,
		})
		docno++
	}
	if err := scanner.Err(); err != nil {
		return BuildResult{}, fmt.Errorf("gokittidx: scan corpus: %w", err)
	}

	terms := make([]string, 0, len(postingsByTerm))
	for term := range postingsByTerm {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var segment bytes.Buffer
	var totalFT uint64
	entries := make([]impactidx.TermEntry, len(terms))

	for i, term := range terms {
		ps := postingsByTerm[term]
		sort.Slice(ps, func(a, b int) bool { return ps[a].docno < ps[b].docno })

		encoded := encodePostings(ps)

		var occurs uint64
		for _, p := range ps {
			occurs += uint64(p.tf)
		}
		ft := uint64(len(ps)) // one posting per document: the sum of the list's blocksizes
		totalFT += ft

		entry := impactidx.TermEntry{
			FT:        ft,
			Docs:      uint64(len(ps)),
			Occurs:    occurs,
			LastDocNo: ps[len(ps)-1].docno,
		}

		if len(encoded) <= inlineThreshold {
			entry.Desc = impactidx.ListDescriptor{Inline: encoded}
		} else {
			offset := int64(segment.Len())
			segment.Write(encoded)
			entry.Desc = impactidx.ListDescriptor{FileID: 1, Offset: offset, Length: int64(len(encoded))}
		}
		entries[i] = entry
	}

	avgFT := 0.0
	if len(terms) > 0 {
		avgFT = float64(totalFT) / float64(len(terms))
	}
	stats := impactidx.ImpactStats{
		WqtMin:    1,
		WqtMax:    7, // 3 quantisation bits: levels 1..2^3-1
		Slope:     0.2,
		AvgFT:     avgFT,
		QuantBits: 3,
		Version:   1,
	}

	if err := impactidx.Save(outDir, terms, entries, docs, stats); err != nil {
		return BuildResult{}, err
	}
	if segment.Len() > 0 {
		if err := impactidx.WriteSegment(outDir, 1, segment.Bytes()); err != nil {
			return BuildResult{}, err
		}
	}

	return BuildResult{DocCount: len(docs), TermCount: len(terms)}, nil
}

// encodePostings groups ps into descending-impact blocks and renders them
// in the wire format internal/evaluator's decoder expects (spec.md §6):
// vbyte(blocksize) vbyte(impact_minus_one) then blocksize deltas, the
// first absolute and the rest prev+d+1. Impact here is simply each
// posting's term frequency, capped to the index's quantisation range —
// there is no query at build time, so no w_qt weighting applies; the
// evaluator's own Step 1 supplies that at query time.
func encodePostings(ps []posting) []byte {
	byImpact := make(map[int][]uint32)
	for _, p := range ps {
		impact := p.tf
		if impact > 7 {
			impact = 7
		}
		byImpact[impact] = append(byImpact[impact], p.docno)
	}

	impacts := make([]int, 0, len(byImpact))
	for impact := range byImpact {
		impacts = append(impacts, impact)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(impacts)))

	var out []byte
	for _, impact := range impacts {
		docnos := byImpact[impact]
		sort.Slice(docnos, func(a, b int) bool { return docnos[a] < docnos[b] })

		out = vbyte.AppendUvarint(out, uint64(len(docnos)))
		out = vbyte.AppendUvarint(out, uint64(impact-1))
		last := -1
		for _, d := range docnos {
			out = vbyte.AppendUvarint(out, uint64(int(d)-last-1))
			last = int(d)
		}
	}
	return out
}
