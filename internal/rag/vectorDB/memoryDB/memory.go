package memoryDB

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

// Store is an in-process vector store using brute-force cosine similarity.
type Store struct {
	mu      sync.RWMutex
	chunks  []commonModels.DocChunk
	vectors [][]float32
}

func NewStore() *Store { return &Store{} }

func (s *Store) CreateCollection(ctx context.Context) error { return nil }

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.chunks))
	s.chunks = nil
	s.vectors = nil
	return n, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.chunks)), nil
}

func (s *Store) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]commonModels.SearchMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idxs := make([]int, len(s.chunks))
	scores := make([]float32, len(s.chunks))
	for i := range s.chunks {
		idxs[i] = i
		scores[i] = cosine(s.vectors[i], vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })

	if limit <= 0 || limit > len(idxs) {
		limit = len(idxs)
	}
	matches := make([]commonModels.SearchMatch, 0, limit)
	for _, j := range idxs[:limit] {
		c := s.chunks[j]
		matches = append(matches, commonModels.SearchMatch{
			Content: c.Chunk,
			DocName: c.Doc.Name,
			PageNum: c.PageNum,
			ChunkId: c.ChunkId,
			Score:   scores[j],
		})
	}
	return matches, nil
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
