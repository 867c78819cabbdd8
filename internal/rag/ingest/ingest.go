package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/StudyRAG/internal/adapter/utils"
	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/internal/rag/embedding"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger = logger_i.NewLogger("Document Ingestion")

var ErrUnsupportedType = errors.New("unsupported document type")
var ErrNoText = errors.New("no text could be extracted from the document")

// Pipeline turns one file into the document corpus. OnReplace runs right before the
// store is wiped so callers can drop anything bound to the old corpus.
type Pipeline struct {
	Embedder  embedding.Embedder
	Store     vectorDB.DataProcessor
	OnReplace func()
}

// Run indexes the file at docPath. Everything up to and including embedding happens
// before the old corpus is touched, so a bad file leaves the previous document in place.
func (p *Pipeline) Run(ctx context.Context, docPath string, docName string) (commonModels.Document, error) {
	log := logger.WithTrace(ctx)
	log.Debug("Processing document", "filename", docName, "path", docPath)

	docType := getDocType(docPath)
	if docType == commonModels.ERR {
		return commonModels.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, docName)
	}

	rawPages, err := extractText(docPath, docType)
	if err != nil {
		return commonModels.Document{}, err
	}
	if !hasText(rawPages) {
		return commonModels.Document{}, ErrNoText
	}

	doc := commonModels.Document{
		Id:                  utils.GetNewUUID(),
		Name:                docName,
		Path:                docPath,
		LastIngestTimestamp: time.Now(),
		ContentType:         docType,
		PageCount:           len(rawPages),
	}

	chunks := PrepareChunks(rawPages, doc, config.ResolveEmbeddingModel())
	log.Debug("Processing document", "pages", len(rawPages), "chunks", len(chunks))

	vectors, err := EmbedChunks(ctx, chunks, p.Embedder)
	if err != nil {
		return commonModels.Document{}, err
	}

	if err = p.Store.CreateCollection(ctx); err != nil {
		return commonModels.Document{}, fmt.Errorf("creating collection failed: %w", err)
	}

	if p.OnReplace != nil {
		p.OnReplace()
	}
	if err = ReplaceCorpus(ctx, p.Store, chunks, vectors); err != nil {
		return commonModels.Document{}, err
	}

	doc.ChunkCount = len(chunks)
	log.Info("Document indexed", "filename", docName, "chunks", doc.ChunkCount)
	return doc, nil
}

func hasText(pages []rawPage) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Content) != "" {
			return true
		}
	}
	return false
}
