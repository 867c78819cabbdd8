package rag_test

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnSearch           func(ctx context.Context, vectorVal []float32, limit int) ([]commonModels.SearchMatch, error)
	OnCount            func(ctx context.Context) (int64, error)
	OnCreateCollection func(ctx context.Context) error
	OnDeleteAll        func(ctx context.Context) (int64, error)
	OnUpsertBatch      func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, limit int) ([]commonModels.SearchMatch, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, limit)
	}
	return []commonModels.SearchMatch{{Content: "default context"}}, nil
}

func (m *MockVectorDB) Count(ctx context.Context) (int64, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx)
	}
	return 1, nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx)
	}
	return nil
}

func (m *MockVectorDB) DeleteAll(ctx context.Context) (int64, error) {
	if m.OnDeleteAll != nil {
		return m.OnDeleteAll(ctx)
	}
	return 0, nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, chunks, vectors)
	}
	return nil
}

// MockEmbedder embeds text as a hashed bag of words, so shared words mean similar vectors.
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
	Calls            atomic.Int32
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	out := make([][]float32, len(chunks))
	for i, c := range chunks {
		out[i] = bagOfWords(c)
	}
	return out, nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	m.Calls.Add(1)
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return bagOfWords(query), nil
}

func bagOfWords(text string) []float32 {
	v := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Trim(w, ".,?!")))
		v[h.Sum32()%64]++
	}
	return v
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, matches []string) (string, error)
	Calls      atomic.Int32
}

func (m *MockLLM) Generate(ctx context.Context, q string, mth []string) (string, error) {
	m.Calls.Add(1)
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, mth)
	}
	return "mocked llm response", nil
}
