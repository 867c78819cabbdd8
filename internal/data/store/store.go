package store

import (
	"context"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

// DocumentStore keeps the record of the document currently indexed.
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc commonModels.Document) error
	GetDocument(ctx context.Context) (commonModels.Document, bool)
	ClearDocument(ctx context.Context)
}

// GetDocumentStore prefers redis and falls back to memory when redis is offline.
func GetDocumentStore(ctx context.Context) DocumentStore {
	if s := GetRedisDocumentStore(ctx); s != nil {
		return s
	}
	inMemLogger.Warn("Redis unavailable, document record kept in memory")
	return InitInMemoryDocumentStore()
}
