package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/data/redisStore"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisDocumentStore returns nil when redis cannot be reached.
func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	s := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if s == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  s,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	log := s.logger.WithTrace(ctx).With("docId", doc.Id)
	log.Debug("saving document record")
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, config.CurrentDocumentKey, data, config.RedisDocumentStoreTTL)
	if err == nil {
		log.Debug("Saved document record to Redis")
	}
	return err
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context) (commonModels.Document, bool) {
	var doc commonModels.Document
	log := s.logger.WithTrace(ctx)
	val, err := s.store.Get(ctx, config.CurrentDocumentKey)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		log.Error("Error reading document record", "error", err)
		return doc, false
	}

	if err = json.Unmarshal([]byte(val), &doc); err != nil {
		log.Error("Corrupt document record", "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) ClearDocument(ctx context.Context) {
	if err := s.store.Del(ctx, config.CurrentDocumentKey); err != nil {
		s.logger.WithTrace(ctx).Error("Error deleting document record from Redis", "error", err)
		return
	}
	s.logger.Debug("Document record deleted from Redis")
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
