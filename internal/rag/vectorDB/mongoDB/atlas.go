package mongoDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var logger *logger_i.Logger
var mongoInstance *mongo.Client
var once sync.Once

// chunkDocument is the stored shape: text, embedding and a metadata sub-document.
type chunkDocument struct {
	ID        string        `bson:"_id"`
	Text      string        `bson:"text"`
	Embedding []float32     `bson:"embedding"`
	Metadata  chunkMetadata `bson:"metadata"`
}

type chunkMetadata struct {
	SourceDocId string `bson:"source_doc_id"`
	DocName     string `bson:"doc_name"`
	PageNum     int    `bson:"page_num"`
	ChunkOrder  int    `bson:"chunk_order"`
	IngestedAt  int64  `bson:"ingested_at"`
}

type searchHit struct {
	ID       string        `bson:"_id"`
	Text     string        `bson:"text"`
	Metadata chunkMetadata `bson:"metadata"`
	Score    float64       `bson:"score"`
}

type AtlasStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	indexName  string
	dimension  int32
}

func GetAtlasClient(ctx context.Context) *AtlasStore {
	once.Do(func() {
		logger = logger_i.NewLogger("MongoAtlas")
		mongoInstance = newClient(ctx)
		if mongoInstance != nil {
			go closeMongo(ctx, mongoInstance)
		}
	})

	if mongoInstance == nil {
		return nil
	}
	store := &AtlasStore{
		client:     mongoInstance,
		collection: mongoInstance.Database(config.MongoDatabase).Collection(config.CollectionName),
		indexName:  config.MongoVectorIndexName,
		dimension:  config.EmbeddingDimension,
	}
	if err := store.CreateCollection(ctx); err != nil {
		logger.Warn("vector index could not be ensured", "error", err)
	}
	return store
}

func newClient(ctx context.Context) *mongo.Client {
	if config.MongoURI == "" {
		logger.Error("MONGO_URI is not set")
		return nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, config.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(config.MongoURI).
		SetServerSelectionTimeout(config.MongoConnectTimeout))
	if err != nil {
		logger.Error("MongoDB connection error", "error", err)
		return nil
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", "error", err)
		_ = client.Disconnect(context.Background())
		return nil
	}
	logger.Info("Connected to MongoDB", "database", config.MongoDatabase, "collection", config.CollectionName)
	return client
}

func closeMongo(ctx context.Context, client *mongo.Client) {
	<-ctx.Done()
	logger.Info("Disconnecting MongoDB")
	if err := client.Disconnect(context.Background()); err != nil {
		logger.Error("could not disconnect MongoDB", "error", err)
	}
}

// CreateCollection makes sure the Atlas vector search index exists on the embedding field.
func (s *AtlasStore) CreateCollection(ctx context.Context) error {
	indexes, err := s.collection.SearchIndexes().List(ctx, options.SearchIndexes().SetName(s.indexName))
	if err == nil {
		defer indexes.Close(ctx)
		if indexes.Next(ctx) {
			return nil
		}
	}

	definition := bson.D{{Key: "fields", Value: bson.A{
		bson.D{
			{Key: "type", Value: "vector"},
			{Key: "path", Value: "embedding"},
			{Key: "numDimensions", Value: s.dimension},
			{Key: "similarity", Value: "cosine"},
		},
	}}}
	_, err = s.collection.SearchIndexes().CreateOne(ctx, mongo.SearchIndexModel{
		Definition: definition,
		Options:    options.SearchIndexes().SetName(s.indexName).SetType("vectorSearch"),
	})
	if err != nil {
		return fmt.Errorf("creating vector index %s: %w", s.indexName, err)
	}
	return nil
}

func (s *AtlasStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo delete failed: %w", err)
	}
	logger.WithTrace(ctx).Info("Deleted old chunks", "count", res.DeletedCount)
	return res.DeletedCount, nil
}

func (s *AtlasStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.D{})
}

func (s *AtlasStore) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]interface{}, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chunkDocument{
			ID:        chunk.ChunkId,
			Text:      chunk.Chunk,
			Embedding: vectors[i],
			Metadata: chunkMetadata{
				SourceDocId: chunk.Doc.Id,
				DocName:     chunk.Doc.Name,
				PageNum:     chunk.PageNum,
				ChunkOrder:  chunk.ChunkPageOrder,
				IngestedAt:  chunk.Doc.LastIngestTimestamp.Unix(),
			},
		}
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo insert failed: %w", err)
	}
	return nil
}

func (s *AtlasStore) Search(ctx context.Context, vectorVal []float32, limit int) ([]commonModels.SearchMatch, error) {
	if len(vectorVal) == 0 {
		return nil, errors.New("empty query vector")
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: s.indexName},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vectorVal},
			{Key: "numCandidates", Value: config.MongoNumCandidates},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "text", Value: 1},
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo vector search failed: %w", err)
	}
	var hits []searchHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("decoding vector search results: %w", err)
	}

	matches := make([]commonModels.SearchMatch, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, commonModels.SearchMatch{
			Content: h.Text,
			DocName: h.Metadata.DocName,
			PageNum: h.Metadata.PageNum,
			ChunkId: h.ID,
			Score:   float32(h.Score),
		})
	}
	return matches, nil
}
