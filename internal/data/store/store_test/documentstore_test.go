package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/data/redisStore"
	"github.com/akolanti/StudyRAG/internal/data/store"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func sampleDoc(id string) commonModels.Document {
	return commonModels.Document{
		Id:                  id,
		Name:                "biology.pdf",
		Path:                "uploaded_files/biology.pdf",
		LastIngestTimestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		ContentType:         commonModels.PDF,
		PageCount:           12,
		ChunkCount:          40,
	}
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	docStore := store.TestDocumentStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	t.Run("Get before Save", func(t *testing.T) {
		if _, found := docStore.GetDocument(ctx); found {
			t.Error("Expected found=false on an empty registry")
		}
	})

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		want := sampleDoc("doc-1")
		if err := docStore.SaveDocument(ctx, want); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		got, found := docStore.GetDocument(ctx)
		if !found {
			t.Fatal("Document was saved but not found in Redis")
		}
		if got.Id != want.Id || got.Name != want.Name || got.ChunkCount != want.ChunkCount {
			t.Errorf("Data mismatch! Got %+v, want %+v", got, want)
		}
		if !got.LastIngestTimestamp.Equal(want.LastIngestTimestamp) {
			t.Errorf("timestamp mismatch: %v vs %v", got.LastIngestTimestamp, want.LastIngestTimestamp)
		}
	})

	t.Run("Save replaces", func(t *testing.T) {
		_ = docStore.SaveDocument(ctx, sampleDoc("doc-2"))
		got, _ := docStore.GetDocument(ctx)
		if got.Id != "doc-2" {
			t.Errorf("got %s, want doc-2", got.Id)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		docStore.ClearDocument(ctx)
		if mr.Exists(config.CurrentDocumentKey) {
			t.Error("record still exists in Redis after ClearDocument")
		}
	})

	t.Run("Corrupt record", func(t *testing.T) {
		if err := mr.Set(config.CurrentDocumentKey, "{not json"); err != nil {
			t.Fatal(err)
		}
		if _, found := docStore.GetDocument(ctx); found {
			t.Error("corrupt record reported as found")
		}
	})
}

func TestInMemoryDocumentStore(t *testing.T) {
	ctx := context.Background()
	docStore := store.InitInMemoryDocumentStore()

	if _, found := docStore.GetDocument(ctx); found {
		t.Fatal("Expected empty store")
	}
	_ = docStore.SaveDocument(ctx, sampleDoc("doc-1"))
	if got, found := docStore.GetDocument(ctx); !found || got.Id != "doc-1" {
		t.Errorf("got %+v found=%v", got, found)
	}
	docStore.ClearDocument(ctx)
	if _, found := docStore.GetDocument(ctx); found {
		t.Error("document survived ClearDocument")
	}
}

func TestInMemoryDocumentStore_Race(t *testing.T) {
	ctx := context.Background()
	docStore := store.InitInMemoryDocumentStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = docStore.SaveDocument(ctx, sampleDoc("doc"))
		}()
		go func() {
			defer wg.Done()
			docStore.GetDocument(ctx)
		}()
	}
	wg.Wait()
}
