package vectorDB

import (
	"context"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

// DataProcessor is the document store holding the single indexed corpus.
type DataProcessor interface {
	Search(ctx context.Context, vectorVal []float32, limit int) ([]commonModels.SearchMatch, error)
	Count(ctx context.Context) (int64, error)

	// CreateCollection Ingest document call
	CreateCollection(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
	UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
}
