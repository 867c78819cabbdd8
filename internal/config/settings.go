package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// runtime settings, defaults apply until Load overrides them from the environment
var (
	IsProd      = false
	ListenAddr  = ServerListenAddr
	UploadDir   = DefaultUploadDir
	LogFilePath = ""

	MaxUploadBytes int64 = MaxUploadSize

	//auth is bypassed when no token is configured
	AuthToken = ""

	RateLimitEnabled           = false
	RateLimitPerSecond float64 = RATE_LIMIT_PER_SECOND
	RateLimitBurst             = BURST_RATE_LIMIT_PER_SECOND

	VectorStore    = DefaultVectorStore
	CollectionName = DefaultCollectionName

	QdrantHostAddr = QdrantHost
	QdrantPort     = QdrantGrpcPort
	QdrantAPIKey   = ""
	QdrantUseTLS   = false //set for https

	MongoURI      = ""
	MongoDatabase = MongoDBName

	EmbeddingProvider        = DefaultEmbeddingProvider
	EmbeddingModel           = ""
	EmbeddingDimension int32 = EmbeddingOutputDimensionality

	LLMProvider = DefaultLLMProvider
	LLMModel    = ""

	GoogleAPIKey    = ""
	OpenAIAPIKey    = ""
	AnthropicAPIKey = ""

	TTSModel = DefaultTTSModel
	TTSVoice = DefaultTTSVoice

	RedisAddress  = RedisAddr
	RedisPassword = ""

	APIURL = DefaultAPIURL
)

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found.
func Load() bool {
	foundDotEnv := godotenv.Load() == nil

	IsProd = getEnvAsBool("IS_PROD", IsProd)
	ListenAddr = getEnv("LISTEN_ADDR", ListenAddr)
	UploadDir = getEnv("UPLOAD_DIR", UploadDir)
	LogFilePath = getEnv("LOG_FILE_PATH", LogFilePath)
	MaxUploadBytes = int64(getEnvAsInt("MAX_UPLOAD_BYTES", int(MaxUploadBytes)))
	AuthToken = getEnv("AUTH_TOKEN", AuthToken)
	RateLimitEnabled = getEnvAsBool("RATE_LIMIT_ENABLED", RateLimitEnabled)
	RateLimitPerSecond = getEnvAsFloat("RATE_LIMIT_PER_SECOND", RateLimitPerSecond)
	RateLimitBurst = getEnvAsInt("RATE_LIMIT_BURST", RateLimitBurst)

	VectorStore = strings.ToLower(getEnv("VECTOR_STORE", VectorStore))
	CollectionName = getEnv("COLLECTION_NAME", CollectionName)
	QdrantHostAddr = getEnv("QDRANT_HOST", QdrantHostAddr)
	QdrantPort = getEnvAsInt("QDRANT_PORT", QdrantPort)
	QdrantAPIKey = getEnv("QDRANT_API_KEY", QdrantAPIKey)
	QdrantUseTLS = getEnvAsBool("QDRANT_USE_TLS", QdrantUseTLS)
	MongoURI = getEnv("MONGO_URI", MongoURI)
	MongoDatabase = getEnv("MONGO_DB_NAME", MongoDatabase)

	EmbeddingProvider = strings.ToLower(getEnv("EMBEDDING_PROVIDER", EmbeddingProvider))
	EmbeddingModel = getEnv("EMBEDDING_MODEL", EmbeddingModel)
	EmbeddingDimension = int32(getEnvAsInt("EMBEDDING_DIMENSION", int(EmbeddingDimension)))
	LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", LLMProvider))
	LLMModel = getEnv("LLM_MODEL", LLMModel)

	GoogleAPIKey = getEnv("GOOGLE_API_KEY", GoogleAPIKey)
	OpenAIAPIKey = getEnv("OPENAI_API_KEY", OpenAIAPIKey)
	AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", AnthropicAPIKey)
	TTSModel = getEnv("TTS_MODEL", TTSModel)
	TTSVoice = getEnv("TTS_VOICE", TTSVoice)

	RedisAddress = getEnv("REDIS_ADDR", RedisAddress)
	RedisPassword = getEnv("REDIS_PASSWORD", RedisPassword)

	APIURL = strings.TrimRight(getEnv("API_URL", APIURL), "/")
	return foundDotEnv
}

// ResolveEmbeddingModel picks the configured model or the provider default.
func ResolveEmbeddingModel() string {
	if EmbeddingModel != "" {
		return EmbeddingModel
	}
	if EmbeddingProvider == "openai" {
		return OpenAIEmbeddingModel
	}
	return GoogleEmbeddingModel
}

// ResolveLLMModel picks the configured model or the provider default.
func ResolveLLMModel() string {
	if LLMModel != "" {
		return LLMModel
	}
	switch LLMProvider {
	case "openai":
		return OpenAIModelName
	case "anthropic":
		return AnthropicModelName
	default:
		return GeminiModelName
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
