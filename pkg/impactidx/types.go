// Package impactidx is the external vocabulary/docmap/index-statistics
// collaborator the evaluator consults (spec.md §6): "a vocabulary lookup
// returning a posting-list descriptor, and a byte-range read primitive."
// None of the traversal logic lives here — only the lookup surface.
package impactidx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DocNo is the dense document identifier used across the evaluation core.
type DocNo = uint32

// ListDescriptor locates one term's posting list. Inline non-nil means the
// list was short enough at build time to live inside the vocabulary entry
// (spec.md §6 vocabulary lookup case (b)); otherwise FileID/Offset/Length
// locate it in a segment file.
type ListDescriptor struct {
	FileID uint32
	Offset int64
	Length int64
	Inline []byte
}

// OnDisk reports whether the list must be streamed from a segment file
// rather than read directly out of Inline.
func (d ListDescriptor) OnDisk() bool { return d.Inline == nil }

// TermEntry is everything the vocabulary knows about a term ahead of
// traversal: where its list lives, and the collection-side statistics
// needed for query-side weighting (spec.md §3, §4.5 Step 1).
type TermEntry struct {
	Desc      ListDescriptor
	FT        uint64 // collection frequency: sum of blocksizes across the list
	Docs      uint64 // distinct documents the term appears in
	Occurs    uint64 // total occurrences (may exceed FT when aux frequency is tracked)
	LastDocNo DocNo
}

// ImpactStats is the index-wide normalisation record (spec.md §3, §6): the
// seven fixed-width fields written by the index builder and read back by
// LoadImpactStats.
type ImpactStats struct {
	WqtMin    float64
	WqtMax    float64
	Slope     float64
	AvgFT     float64
	QuantBits uint32
	Version   uint32
	Reserved  uint32
}

const impactStatsRecordLen = 8*4 + 4*3

// LoadImpactStats decodes the seven-field fixed-width record described in
// spec.md §6. byteOrder lets the caller supply the index's declared
// endianness; most indexes are little-endian.
func LoadImpactStats(buf []byte, byteOrder binary.ByteOrder) (ImpactStats, error) {
	if len(buf) < impactStatsRecordLen {
		return ImpactStats{}, fmt.Errorf("impactidx: short impact-stats record: %d bytes", len(buf))
	}
	readF64 := func(off int) float64 {
		bits := byteOrder.Uint64(buf[off : off+8])
		return math.Float64frombits(bits)
	}
	var s ImpactStats
	s.WqtMin = readF64(0)
	s.WqtMax = readF64(8)
	s.Slope = readF64(16)
	s.AvgFT = readF64(24)
	s.QuantBits = byteOrder.Uint32(buf[32:36])
	s.Version = byteOrder.Uint32(buf[36:40])
	s.Reserved = byteOrder.Uint32(buf[40:44])
	return s, nil
}
