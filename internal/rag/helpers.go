package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/internal/metrics"
	"github.com/akolanti/StudyRAG/internal/rag/embedding"
	"github.com/akolanti/StudyRAG/internal/rag/extract"
	"github.com/akolanti/StudyRAG/internal/rag/llm"
	"github.com/akolanti/StudyRAG/internal/rag/vectorDB"
)

// queryHandle binds the current corpus to the clients able to query it.
type queryHandle struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	doc         commonModels.Document
}

func (s *service) newQueryHandle(doc commonModels.Document) *queryHandle {
	return &queryHandle{
		vectorDB:    s.vectorDB,
		llmProvider: s.llmProvider,
		embedder:    s.embedder,
		doc:         doc,
	}
}

func (h *queryHandle) query(ctx context.Context, question string) (string, error) {
	vector, err := h.executeEmbeddingStep(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding failed: %w", err)
	}

	matches, err := h.executeVectorSearchStep(ctx, vector)
	if err != nil {
		return "", fmt.Errorf("vector search failed: %w", err)
	}
	if len(matches) == 0 {
		return "", errNoMatches
	}

	answer, err := h.executeLLMStep(ctx, question, matches)
	if err != nil {
		return "", fmt.Errorf("llm generation failed: %w", err)
	}
	return answer, nil
}

func (h *queryHandle) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return h.embedder.GetEmbedding(ctx, question)
}

func (h *queryHandle) executeVectorSearchStep(ctx context.Context, vector []float32) ([]string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	found, err := h.vectorDB.Search(ctx, vector, config.SearchTopK)
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0, len(found))
	for _, m := range found {
		matches = append(matches, m.Content)
	}
	return matches, nil
}

func (h *queryHandle) executeLLMStep(ctx context.Context, question string, matches []string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return h.llmProvider.Generate(ctx, question, matches)
}

func promptFor(kind artifactModel.Kind) (string, error) {
	return config.Prompt(string(kind))
}

func artifactError(kind artifactModel.Kind, message string, raw string) artifactModel.Artifact {
	return artifactModel.Artifact{
		Kind: kind,
		Err:  &artifactModel.ArtifactError{Message: message, Raw: raw},
	}
}

// decodeArtifact extracts the bracketed span for kind and decodes it into the typed artifact.
func decodeArtifact(kind artifactModel.Kind, raw string, docName string) (artifactModel.Artifact, error) {
	artifact := artifactModel.Artifact{Kind: kind}
	var err error

	switch kind {
	case artifactModel.Summary:
		artifact.Summary = strings.TrimSpace(raw)
		if artifact.Summary == "" {
			err = extract.ErrNoSpan
		}
	case artifactModel.Flashcards:
		artifact.Flashcards, err = decodeSpan[[]artifactModel.Flashcard](raw, extract.JSONArray)
	case artifactModel.Quiz:
		artifact.Quiz, err = decodeSpan[[]artifactModel.QuizQuestion](raw, extract.JSONArray)
	case artifactModel.Slides:
		artifact.Slides, err = decodeSpan[[]artifactModel.Slide](raw, extract.JSONArray)
	case artifactModel.MindMap:
		var tree artifactModel.MindMapTree
		tree, err = decodeSpan[artifactModel.MindMapTree](raw, extract.JSONObject)
		if err == nil {
			if strings.TrimSpace(tree.Filename) == "" {
				tree.Filename = docName
			}
			artifact.MindMap = &tree
		}
	default:
		err = fmt.Errorf("unknown artifact kind %q", kind)
	}
	return artifact, err
}

func decodeSpan[T any](raw string, span func(string) (string, error)) (T, error) {
	var out T
	text, err := span(raw)
	if err != nil {
		return out, err
	}
	if err = json.Unmarshal([]byte(text), &out); err != nil {
		return out, fmt.Errorf("decoding %T: %w", out, err)
	}
	return out, nil
}
