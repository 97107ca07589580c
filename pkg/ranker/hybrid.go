package ranker

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/fogfish/hnsw"
	fvector "github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/gokitt/impactq/pkg/impactidx"
)

// HybridStore holds document embeddings in an HNSW graph so Blend can
// re-rank an impact-score result set by semantic similarity to a query
// vector. It is optional: an index built without embeddings simply never
// populates one, and Blend on a nil *HybridStore falls back to the plain
// impact ranking.
type HybridStore struct {
	index *hnsw.HNSW[fvector.VF32]
	fs    hackpadfs.FS
	path  string
	mu    sync.RWMutex
}

// NewHybridStore opens (or lazily initialises) the embedding graph backing
// path on fs, using cosine similarity.
func NewHybridStore(fs hackpadfs.FS, path string) (*HybridStore, error) {
	s := &HybridStore{fs: fs, path: path}
	if err := s.Load(); err != nil {
		s.index = hnsw.New[fvector.VF32](fvector.SurfaceVF32(kvector.Cosine()))
	}
	return s, nil
}

// AddEmbedding inserts docno's embedding, or returns an error if its
// dimension disagrees with vectors already in the graph.
func (s *HybridStore) AddEmbedding(docno impactidx.DocNo, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index.Size() > 0 {
		dim := len(s.index.Head().Vec)
		if len(vec) != dim {
			return fmt.Errorf("ranker: embedding dimension mismatch: expected %d, got %d", dim, len(vec))
		}
	}
	s.index.Insert(fvector.VF32{Key: docno, Vec: vec})
	return nil
}

// Blend re-orders results by a weighted sum of their normalised impact
// score and cosine similarity to queryVec. alpha in [0,1] weights the
// impact score; (1-alpha) weights similarity. Results for which no
// embedding exists keep their impact-only contribution.
func (s *HybridStore) Blend(results []Result, queryVec []float32, alpha float64) []Result {
	if s == nil || s.index == nil || s.index.Size() == 0 || len(results) == 0 {
		return results
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ef := len(results) * 2
	if ef < 100 {
		ef = 100
	}
	neighbours := s.index.Search(fvector.VF32{Vec: queryVec}, len(results), ef)
	sim := make(map[impactidx.DocNo]float64, len(neighbours))
	for i, n := range neighbours {
		// Neighbours come back nearest-first; turn rank into a [0,1] score.
		sim[n.Key] = 1 - float64(i)/float64(len(neighbours))
	}

	var maxScore uint64
	for _, r := range results {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	type blended struct {
		Result
		combined float64
	}
	rows := make([]blended, len(results))
	for i, r := range results {
		normScore := 0.0
		if maxScore > 0 {
			normScore = float64(r.Score) / float64(maxScore)
		}
		rows[i] = blended{Result: r, combined: alpha*normScore + (1-alpha)*sim[r.DocNo]}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].combined > rows[j].combined })
	out := make([]Result, len(rows))
	for i, r := range rows {
		out[i] = r.Result
	}
	return out
}

// Save persists the embedding graph to its backing filesystem.
func (s *HybridStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.index.Nodes()); err != nil {
		return fmt.Errorf("ranker: encode embedding graph: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.fs, s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("ranker: write embedding graph: %w", err)
	}
	return nil
}

// Load reads the embedding graph back from its backing filesystem.
func (s *HybridStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := hackpadfs.ReadFile(s.fs, s.path)
	if err != nil {
		return err
	}

	var nodes hnsw.Nodes[fvector.VF32]
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&nodes); err != nil {
		return fmt.Errorf("ranker: decode embedding graph: %w", err)
	}
	s.index = hnsw.FromNodes[fvector.VF32](fvector.SurfaceVF32(kvector.Cosine()), nodes)
	return nil
}
