package rag

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/StudyRAG/internal/data/store"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/internal/metrics"
	"github.com/akolanti/StudyRAG/internal/rag/embedding"
	"github.com/akolanti/StudyRAG/internal/rag/ingest"
	"github.com/akolanti/StudyRAG/internal/rag/llm"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

const (
	EmptyCorpusAnswer   = "Database is empty. Please upload a PDF first."
	UnavailableAnswer   = "Sorry, I cannot answer right now."
	EmptyCorpusArtifact = "Database is empty. Upload PDF first."
	ParseFailure        = "Failed to parse model response"
)

/*
Service is the public contract; service is the private implementation holding the
store, provider clients and the query handle. Handlers, the MCP server and tests only
see Service, which lets tests swap the dependencies for mocks.
*/
type Service interface {
	IngestDocument(ctx context.Context, path string, name string) (commonModels.Document, error)
	Ask(ctx context.Context, question string) string
	Generate(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact
	Current(ctx context.Context) (commonModels.Document, bool)
	Restore(ctx context.Context) error
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	docStore    store.DocumentStore
	logger      *logger_i.Logger

	// handleMu guards handle; queries hold the read lock for their whole run so a
	// replacement never starts under an in-flight query.
	handleMu sync.RWMutex
	handle   *queryHandle

	uploadMu sync.Mutex
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, docs store.DocumentStore) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		docStore:    docs,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) Ask(ctx context.Context, question string) string {
	log := s.logger.WithTrace(ctx)

	s.handleMu.RLock()
	defer s.handleMu.RUnlock()
	if s.handle == nil {
		return EmptyCorpusAnswer
	}

	answer, err := s.handle.query(ctx, question)
	if err != nil {
		log.Error("Ask failed", "error", err)
		return UnavailableAnswer
	}
	return answer
}

func (s *service) Generate(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact {
	log := s.logger.WithTrace(ctx).With("kind", kind)

	s.handleMu.RLock()
	defer s.handleMu.RUnlock()
	if s.handle == nil {
		metrics.CaptureGenerationOutcome(string(kind), "empty_corpus")
		return artifactError(kind, EmptyCorpusArtifact, "")
	}

	instruction, err := promptFor(kind)
	if err != nil {
		log.Error("No instruction template", "error", err)
		metrics.CaptureGenerationOutcome(string(kind), "provider_error")
		return artifactError(kind, err.Error(), "")
	}

	raw, err := s.handle.query(ctx, instruction)
	if err != nil {
		log.Error("Generation failed", "error", err)
		metrics.CaptureGenerationOutcome(string(kind), "provider_error")
		return artifactError(kind, err.Error(), "")
	}

	artifact, err := decodeArtifact(kind, raw, s.handle.doc.Name)
	if err != nil {
		log.Warn("Could not parse model output", "error", err)
		metrics.CaptureGenerationOutcome(string(kind), "parse_error")
		return artifactError(kind, ParseFailure, raw)
	}
	metrics.CaptureGenerationOutcome(string(kind), "ok")
	return artifact
}

func (s *service) IngestDocument(ctx context.Context, path string, name string) (commonModels.Document, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	s.uploadMu.Lock()
	defer s.uploadMu.Unlock()

	replaced := false
	pipeline := ingest.Pipeline{
		Embedder: s.embedder,
		Store:    s.vectorDB,
		OnReplace: func() {
			replaced = true
			s.setHandle(nil)
		},
	}

	doc, err := pipeline.Run(ctx, path, name)
	if err != nil {
		s.logger.WithTrace(ctx).Error("Document ingestion failed", "error", err, "corpusCleared", replaced)
		if replaced {
			// no rollback: the old corpus is gone and the new one is incomplete
			s.docStore.ClearDocument(ctx)
			metrics.SetIndexedChunks(0)
		}
		return commonModels.Document{}, err
	}

	if err = s.docStore.SaveDocument(ctx, doc); err != nil {
		s.logger.WithTrace(ctx).Error("Could not persist document record", "error", err)
	}
	s.setHandle(s.newQueryHandle(doc))
	metrics.SetIndexedChunks(int64(doc.ChunkCount))
	return doc, nil
}

func (s *service) Current(ctx context.Context) (commonModels.Document, bool) {
	s.handleMu.RLock()
	defer s.handleMu.RUnlock()
	if s.handle == nil {
		return commonModels.Document{}, false
	}
	return s.handle.doc, true
}

// Restore rebuilds the query handle at start-up when the store already holds a corpus.
func (s *service) Restore(ctx context.Context) error {
	count, err := s.vectorDB.Count(ctx)
	if err != nil {
		return err
	}
	metrics.SetIndexedChunks(count)
	if count == 0 {
		s.logger.Info("Document store is empty, waiting for an upload")
		s.docStore.ClearDocument(ctx)
		return nil
	}

	doc, found := s.docStore.GetDocument(ctx)
	if !found {
		s.logger.Warn("Corpus found without a document record")
		doc = commonModels.Document{Name: "document"}
	}
	doc.ChunkCount = int(count)
	s.setHandle(s.newQueryHandle(doc))
	s.logger.Info("Restored existing corpus", "document", doc.Name, "chunks", count)
	return nil
}

func (s *service) setHandle(h *queryHandle) {
	s.handleMu.Lock()
	defer s.handleMu.Unlock()
	s.handle = h
}

var errNoMatches = errors.New("vector search returned no matches")
