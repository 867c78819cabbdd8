package memoryDB

import (
	"context"
	"testing"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

func TestStore_SearchOrdersByCosine(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	chunks := []commonModels.DocChunk{
		{ChunkId: "a", Chunk: "alpha"},
		{ChunkId: "b", Chunk: "beta"},
		{ChunkId: "c", Chunk: "gamma"},
	}
	vectors := [][]float32{{1, 0}, {0, 1}, {0.7, 0.7}}
	if err := s.UpsertBatch(ctx, chunks, vectors); err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0.1}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ChunkId != "a" || matches[1].ChunkId != "c" {
		t.Errorf("unexpected order: %+v", matches)
	}
}

func TestStore_DeleteAll(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.UpsertBatch(ctx, []commonModels.DocChunk{{ChunkId: "a"}, {ChunkId: "b"}}, [][]float32{{1}, {1}})

	removed, err := s.DeleteAll(ctx)
	if err != nil || removed != 2 {
		t.Fatalf("DeleteAll = %d, %v; want 2, nil", removed, err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}
}

func TestStore_UpsertMismatch(t *testing.T) {
	s := NewStore()
	err := s.UpsertBatch(context.Background(), []commonModels.DocChunk{{ChunkId: "a"}}, nil)
	if err == nil {
		t.Error("expected mismatch error")
	}
}
