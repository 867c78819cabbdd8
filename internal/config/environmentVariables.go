package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//server listening port
	ServerListenAddr = ":8000"

	//serverTimeouts - generation calls are slow, the write timeout has to cover a full LLM round trip
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 180 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	MaxUploadSize = 32 << 20 //32mb

	//uploads, audio and slide files land here and are never cleaned up
	DefaultUploadDir = "uploaded_files"

	//vectorDB
	DefaultVectorStore      = "qdrant"
	DefaultCollectionName   = "study_chunks"
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantGrpcPort          = 6334
	QdrantPoolSize          = 1                //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second //5 * time.Minute for prod maybe- fine tune for performance

	MongoDBName          = "rag_db"
	MongoVectorIndexName = "vector_index"
	MongoConnectTimeout  = 10 * time.Second
	MongoNumCandidates   = 100

	//retrieval
	SearchTopK = 3

	//ingestion
	MaxChunkSize       = 1000 // characters
	ChunkOverlap       = 150  // generous overlap helps semantic continuity
	EmbeddingBatchSize = 100
	PageExtractTimeout = 10 * time.Second

	//embeddings
	DefaultEmbeddingProvider            = "gemini"
	GoogleEmbeddingModel                = "gemini-embedding-001"
	OpenAIEmbeddingModel                = "text-embedding-3-small"
	EmbeddingOutputDimensionality int32 = 1536

	//llm
	DefaultLLMProvider          = "gemini"
	GeminiModelName             = "gemini-2.5-flash"
	OpenAIModelName             = "gpt-4o-mini"
	AnthropicModelName          = "claude-3-5-haiku-latest"
	AnthropicMaxTokens          = 4096
	ModelTemperature    float32 = 0.7
	ModelContext                = "You are a study assistant answering strictly from the provided document context. If the context does not contain the answer, say you don't know."

	//speech
	DefaultTTSModel = "tts-1"
	DefaultTTSVoice = "alloy"

	//shared outbound transport
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
	ProviderHTTPTimeout = 120 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisDocumentStore = 0

	RedisPingTimeout      = 3 * time.Second
	CurrentDocumentKey    = "document:current"
	RedisDocumentStoreTTL = 0 //the record lives as long as the corpus does

	//client
	DefaultAPIURL = "http://localhost:8000"
)
