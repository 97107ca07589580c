package impactidx

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gokitt/impactq/internal/vbyte"
)

// Save writes vocab.bin, docmap.bin and stats.bin in the format Load reads
// back. It does not write segment files: the bytes of on-disk lists are
// written separately with WriteSegment, one file per FileID. terms must
// already be sorted (NewVocabulary's own invariant); entries and terms
// must be the same length and in the same order. Used by cmd/gokittidx's
// fixture builder and exercised directly by this package's round-trip
// tests.
func Save(dir string, terms []string, entries []TermEntry, docs []DocRecord, stats ImpactStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("impactidx: create index dir: %w", err)
	}

	if err := saveVocabulary(filepath.Join(dir, vocabFileName), terms, entries); err != nil {
		return fmt.Errorf("impactidx: save vocabulary: %w", err)
	}
	if err := saveDocMap(filepath.Join(dir, docmapFileName), docs); err != nil {
		return fmt.Errorf("impactidx: save docmap: %w", err)
	}
	if err := saveStats(filepath.Join(dir, statsFileName), stats); err != nil {
		return fmt.Errorf("impactidx: save stats: %w", err)
	}
	return nil
}

// WriteSegment writes data as the on-disk posting-list segment identified
// by fileID, under dir/segments/.
func WriteSegment(dir string, fileID uint32, data []byte) error {
	segDir := filepath.Join(dir, segmentsDirName)
	if err := os.MkdirAll(segDir, 0o755); err != nil {
		return fmt.Errorf("impactidx: create segments dir: %w", err)
	}
	path := filepath.Join(segDir, fmt.Sprintf("%d.bin", fileID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("impactidx: write segment %d: %w", fileID, err)
	}
	return nil
}

func saveVocabulary(path string, terms []string, entries []TermEntry) error {
	if len(terms) != len(entries) {
		return fmt.Errorf("%d terms but %d entries", len(terms), len(entries))
	}

	buf := vbyte.AppendUvarint(nil, uint64(len(terms)))
	for i, term := range terms {
		buf = appendFramedBytes(buf, []byte(term))
		buf = appendTermEntry(buf, entries[i])
	}
	return os.WriteFile(path, buf, 0o644)
}

func appendTermEntry(buf []byte, e TermEntry) []byte {
	buf = vbyte.AppendUvarint(buf, e.FT)
	buf = vbyte.AppendUvarint(buf, e.Docs)
	buf = vbyte.AppendUvarint(buf, e.Occurs)
	buf = vbyte.AppendUvarint(buf, uint64(e.LastDocNo))

	if !e.Desc.OnDisk() {
		buf = append(buf, 1)
		buf = appendFramedBytes(buf, e.Desc.Inline)
		return buf
	}

	buf = append(buf, 0)
	buf = vbyte.AppendUvarint(buf, uint64(e.Desc.FileID))
	buf = vbyte.AppendUvarint(buf, uint64(e.Desc.Offset))
	buf = vbyte.AppendUvarint(buf, uint64(e.Desc.Length))
	return buf
}

func saveDocMap(path string, docs []DocRecord) error {
	buf := vbyte.AppendUvarint(nil, uint64(len(docs)))
	for i, d := range docs {
		if int(d.DocNo) != i {
			return fmt.Errorf("doc record %d has DocNo %d, records must be dense and ordered", i, d.DocNo)
		}
		buf = vbyte.AppendUvarint(buf, uint64(d.Bytes))
		buf = vbyte.AppendUvarint(buf, uint64(d.Words))
		buf = vbyte.AppendUvarint(buf, uint64(d.DistinctWords))

		var wbuf [8]byte
		binary.LittleEndian.PutUint64(wbuf[:], math.Float64bits(d.Weight))
		buf = append(buf, wbuf[:]...)

		buf = appendFramedBytes(buf, []byte(d.AuxString))
	}
	return os.WriteFile(path, buf, 0o644)
}

func saveStats(path string, s ImpactStats) error {
	buf := make([]byte, impactStatsRecordLen)
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(s.WqtMin))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(s.WqtMax))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(s.Slope))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(s.AvgFT))
	binary.LittleEndian.PutUint32(buf[32:36], s.QuantBits)
	binary.LittleEndian.PutUint32(buf[36:40], s.Version)
	binary.LittleEndian.PutUint32(buf[40:44], s.Reserved)
	return os.WriteFile(path, buf, 0o644)
}

func appendFramedBytes(buf []byte, data []byte) []byte {
	buf = vbyte.AppendUvarint(buf, uint64(len(data)))
	return append(buf, data...)
}
