package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once

type ClientHolder struct {
	QObj           *qdrant.Client
	collectionName string
	dimension      uint64
}

func GetQuadrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(ctx)
		if res != nil {
			quadrantInstance = res
			go closeQdrant(ctx, quadrantInstance)
		}
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj:           quadrantInstance,
		collectionName: config.CollectionName,
		dimension:      uint64(config.EmbeddingDimension),
	}
}

func newClient(ctx context.Context) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     config.QdrantHostAddr,
		Port:     config.QdrantPort,
		APIKey:   config.QdrantAPIKey,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
		GrpcOptions: []grpc.DialOption{
			grpc.WithKeepaliveParams(keepalive.ClientParameters{
				Time:                config.QdrantKeepAliveTimeout,
				Timeout:             config.QdrantConnectionTimeout,
				PermitWithoutStream: true,
			}),
		},
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	createCtx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	err = createCollection(createCtx, client, config.CollectionName, uint64(config.EmbeddingDimension))
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", config.CollectionName, "error:", err)
		_ = client.Close()
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32, limit int) ([]commonModels.SearchMatch, error) {
	loggr := logger.WithTrace(ctx)
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]commonModels.SearchMatch, 0, len(result))
	for _, hit := range result {
		matches = append(matches, commonModels.SearchMatch{
			Content: hit.Payload["content"].GetStringValue(),
			DocName: hit.Payload["doc_name"].GetStringValue(),
			PageNum: int(hit.Payload["page_num"].GetIntegerValue()),
			ChunkId: hit.Payload["chunk_id"].GetStringValue(),
			Score:   hit.Score,
		})
	}

	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) Count(ctx context.Context) (int64, error) {
	count, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count failed: %w", err)
	}
	return int64(count), nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context) error {
	return createCollection(ctx, db.QObj, db.collectionName, db.dimension)
}

// DeleteAll drops and recreates the collection, qdrant has no cheaper truncate.
func (db *ClientHolder) DeleteAll(ctx context.Context) (int64, error) {
	loggr := logger.WithTrace(ctx)
	count, err := db.Count(ctx)
	if err != nil {
		return 0, err
	}
	if err := db.QObj.DeleteCollection(ctx, db.collectionName); err != nil {
		return 0, fmt.Errorf("qdrant delete collection failed: %w", err)
	}
	loggr.Info("Deleted old chunks", "count", count)
	if err := db.CreateCollection(ctx); err != nil {
		return count, fmt.Errorf("qdrant recreate collection failed: %w", err)
	}
	return count, nil
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Chunk,
				"page_num":      chunk.PageNum,
				"source_doc_id": chunk.Doc.Id,
				"doc_name":      chunk.Doc.Name,
				"chunk_order":   chunk.ChunkPageOrder,
				"chunk_id":      chunk.ChunkId,
				"ingested_at":   chunk.Doc.LastIngestTimestamp.Unix(),
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil

}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string, dimension uint64) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
