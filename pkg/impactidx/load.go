package impactidx

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gokitt/impactq/internal/ivfile"
	"github.com/gokitt/impactq/internal/vbyte"
)

// On-disk layout for the fixture index gokittidx writes and gokittq reads.
// Everything except stats.bin is vbyte-framed so the loader never needs a
// fixed record size beyond the one the impact-stats record already has.
const (
	vocabFileName   = "vocab.bin"
	docmapFileName  = "docmap.bin"
	statsFileName   = "stats.bin"
	segmentsDirName = "segments"
)

// Load reads a complete index directory written by cmd/gokittidx: the
// vocabulary, the document map, the impact-stats record, and the segment
// files any on-disk posting list points into. Inline lists are decoded
// straight out of vocab.bin; on-disk lists are left as (FileID, Offset,
// Length) descriptors resolved against the registered FileSet lazily, at
// traversal time, by Index.OpenSource.
func Load(dir string) (*Index, error) {
	vocab, err := loadVocabulary(filepath.Join(dir, vocabFileName))
	if err != nil {
		return nil, fmt.Errorf("impactidx: load vocabulary: %w", err)
	}

	docs, err := loadDocMap(filepath.Join(dir, docmapFileName))
	if err != nil {
		return nil, fmt.Errorf("impactidx: load docmap: %w", err)
	}

	statsBuf, err := os.ReadFile(filepath.Join(dir, statsFileName))
	if err != nil {
		return nil, fmt.Errorf("impactidx: load stats: %w", err)
	}
	stats, err := LoadImpactStats(statsBuf, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("impactidx: decode stats: %w", err)
	}

	files, err := registerSegments(filepath.Join(dir, segmentsDirName))
	if err != nil {
		return nil, fmt.Errorf("impactidx: register segments: %w", err)
	}

	return New(vocab, docs, stats, files), nil
}

func loadVocabulary(path string) (*Vocabulary, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	count, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("term count: %w", err)
	}
	buf = buf[n:]

	terms := make([]string, count)
	entries := make([]TermEntry, count)

	for i := uint64(0); i < count; i++ {
		term, rest, err := readFramedString(buf)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		buf = rest

		entry, rest, err := readTermEntry(buf)
		if err != nil {
			return nil, fmt.Errorf("entry for %q: %w", term, err)
		}
		buf = rest

		terms[i] = term
		entries[i] = entry
	}

	return NewVocabulary(terms, entries)
}

func readTermEntry(buf []byte) (TermEntry, []byte, error) {
	var e TermEntry
	var vals [4]uint64
	for i := range vals {
		v, n, err := vbyte.ReadUvarint(buf)
		if err != nil {
			return e, nil, err
		}
		vals[i] = v
		buf = buf[n:]
	}
	e.FT, e.Docs, e.Occurs, e.LastDocNo = vals[0], vals[1], vals[2], DocNo(vals[3])

	if len(buf) < 1 {
		return e, nil, vbyte.ErrNeedMore
	}
	inline := buf[0] == 1
	buf = buf[1:]

	if inline {
		data, rest, err := readFramedBytes(buf)
		if err != nil {
			return e, nil, err
		}
		e.Desc = ListDescriptor{Inline: data}
		buf = rest
		return e, buf, nil
	}

	fileID, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return e, nil, err
	}
	buf = buf[n:]
	offset, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return e, nil, err
	}
	buf = buf[n:]
	length, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return e, nil, err
	}
	buf = buf[n:]

	e.Desc = ListDescriptor{FileID: uint32(fileID), Offset: int64(offset), Length: int64(length)}
	return e, buf, nil
}

func loadDocMap(path string) (*DocMap, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	count, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("doc count: %w", err)
	}
	buf = buf[n:]

	records := make([]DocRecord, count)
	for i := uint64(0); i < count; i++ {
		var vals [3]uint64
		for j := range vals {
			v, n, err := vbyte.ReadUvarint(buf)
			if err != nil {
				return nil, fmt.Errorf("doc %d: %w", i, err)
			}
			vals[j] = v
			buf = buf[n:]
		}

		if len(buf) < 8 {
			return nil, fmt.Errorf("doc %d: truncated weight", i)
		}
		weight := math.Float64frombits(binary.LittleEndian.Uint64(buf[:8]))
		buf = buf[8:]

		aux, rest, err := readFramedString(buf)
		if err != nil {
			return nil, fmt.Errorf("doc %d: aux string: %w", i, err)
		}
		buf = rest

		records[i] = DocRecord{
			DocNo:         DocNo(i),
			Bytes:         int64(vals[0]),
			Words:         int64(vals[1]),
			DistinctWords: int64(vals[2]),
			Weight:        weight,
			AuxString:     aux,
		}
	}

	return NewDocMap(records), nil
}

func registerSegments(dir string) (*ivfile.FileSet, error) {
	fs := ivfile.NewFileSet()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, err
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		var fileID uint32
		if _, err := fmt.Sscanf(ent.Name(), "%d.bin", &fileID); err != nil {
			continue
		}
		fs.AddFile(fileID, filepath.Join(dir, ent.Name()))
	}
	return fs, nil
}

func readFramedBytes(buf []byte) (data []byte, rest []byte, err error) {
	length, n, err := vbyte.ReadUvarint(buf)
	if err != nil {
		return nil, nil, err
	}
	buf = buf[n:]
	if uint64(len(buf)) < length {
		return nil, nil, vbyte.ErrNeedMore
	}
	return buf[:length], buf[length:], nil
}

func readFramedString(buf []byte) (s string, rest []byte, err error) {
	data, rest, err := readFramedBytes(buf)
	if err != nil {
		return "", nil, err
	}
	return string(data), rest, nil
}
