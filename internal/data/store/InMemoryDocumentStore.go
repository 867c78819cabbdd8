package store

import (
	"context"
	"sync"

	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

type InMemoryDocumentStore struct {
	docMutex *sync.RWMutex
	current  *commonModels.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docMutex: new(sync.RWMutex),
	}
}

func (store *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	store.current = &doc
	inMemLogger.WithTrace(ctx).Debug("Saved document record", "docId", doc.Id)
	return nil
}

func (store *InMemoryDocumentStore) GetDocument(ctx context.Context) (commonModels.Document, bool) {
	store.docMutex.RLock()
	defer store.docMutex.RUnlock()
	if store.current == nil {
		return commonModels.Document{}, false
	}
	return *store.current, true
}

func (store *InMemoryDocumentStore) ClearDocument(ctx context.Context) {
	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	store.current = nil
}
