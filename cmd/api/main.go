// @title           StudyRAG API
// @version         1.0
// @description     Upload a document and study it: questions, summaries, flashcards, quizzes, mind maps, audio and slides.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/data/store"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/handlers"
	"github.com/akolanti/StudyRAG/internal/mcpserver"
	"github.com/akolanti/StudyRAG/internal/rag"
	"github.com/akolanti/StudyRAG/internal/rag/embedding"
	"github.com/akolanti/StudyRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/StudyRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/StudyRAG/internal/rag/llm"
	"github.com/akolanti/StudyRAG/internal/rag/llm/anthropic"
	"github.com/akolanti/StudyRAG/internal/rag/llm/gemini"
	"github.com/akolanti/StudyRAG/internal/rag/llm/openai"
	"github.com/akolanti/StudyRAG/internal/rag/speech"
	"github.com/akolanti/StudyRAG/internal/rag/speech/openaiSpeech"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB/mongoDB"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/StudyRAG/internal/server"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

var logger = logger_i.NewLogger("main")

func main() {
	foundDotEnv := config.Load()

	logger_i.Init()
	defer logger_i.Close()
	if !foundDotEnv {
		logger.Debug("No .env file found, using process environment")
	}

	kinds := make([]string, 0, len(artifactModel.Kinds))
	for _, kind := range artifactModel.Kinds {
		kinds = append(kinds, string(kind))
	}
	if err := config.ValidatePrompts(kinds...); err != nil {
		logger.Error("Prompt templates are incomplete", "error", err)
		return
	}

	listenAddr := config.ListenAddr
	flag.StringVar(&listenAddr, "listen-addr", listenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	vectorStore := newVectorStore(serviceContext)
	embeddingService := newEmbedder(serviceContext)
	llmProvider := newLLM(serviceContext)

	if vectorStore == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorStore != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	documentStore := store.GetDocumentStore(serviceContext)
	ragService := rag.NewService(vectorStore, llmProvider, embeddingService, documentStore)
	if err := ragService.Restore(serviceContext); err != nil {
		logger.Warn("Could not restore the indexed document, starting empty", "error", err)
	}

	studyHandler := handlers.NewStudyHandler(ragService, newSynthesizer(), config.UploadDir)
	mcpHandler := mcpserver.NewHandler(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, studyHandler, mcpHandler)

	<-stopExecution
	logger.Info("Server stopped")
}

// the typed nil checks keep a failed client from turning into a non-nil interface
func newVectorStore(ctx context.Context) vectorDB.DataProcessor {
	switch config.VectorStore {
	case "memory":
		return memoryDB.NewStore()
	case "mongo":
		if atlas := mongoDB.GetAtlasClient(ctx); atlas != nil {
			return atlas
		}
	case "qdrant":
		if holder := qdrantDB.GetQuadrantClient(ctx); holder != nil {
			return holder
		}
	default:
		logger.Error("Unknown vector store", "store", config.VectorStore)
	}
	return nil
}

func newEmbedder(ctx context.Context) embedding.Embedder {
	model := config.ResolveEmbeddingModel()
	switch config.EmbeddingProvider {
	case "openai":
		return openaiEmbedding.NewOpenAIEmbedder(model, config.OpenAIAPIKey)
	case "gemini":
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, model, config.GoogleAPIKey)
	default:
		logger.Error("Unknown embedding provider", "provider", config.EmbeddingProvider)
		return nil
	}
}

func newLLM(ctx context.Context) llm.Provider {
	model := config.ResolveLLMModel()
	switch config.LLMProvider {
	case "openai":
		return openai.NewOpenAIClient(model, config.OpenAIAPIKey)
	case "anthropic":
		return anthropic.NewAnthropicClient(model, config.AnthropicAPIKey)
	case "gemini":
		return gemini.GetGeminiClient(ctx, model, config.GoogleAPIKey)
	default:
		logger.Error("Unknown llm provider", "provider", config.LLMProvider)
		return nil
	}
}

// audio is optional, without an OpenAI key the endpoint answers 500
func newSynthesizer() speech.Synthesizer {
	synth := openaiSpeech.NewOpenAISpeech(config.TTSModel, config.TTSVoice, config.OpenAIAPIKey)
	if synth == nil {
		logger.Warn("Speech synthesis disabled, OPENAI_API_KEY is not set")
	}
	return synth
}
