package adapter

import (
	"github.com/akolanti/StudyRAG/internal/api"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
)

// ToArtifactResponse maps an artifact to the body its endpoint returns.
func ToArtifactResponse(a artifactModel.Artifact) any {
	if a.Failed() {
		return ToErrorResponse(a.Err.Message, a.Err.Raw)
	}

	switch a.Kind {
	case artifactModel.Summary:
		return api.SummaryResponse{Summary: a.Summary}
	case artifactModel.Flashcards:
		return api.FlashcardsResponse{Flashcards: nonNil(a.Flashcards)}
	case artifactModel.Quiz:
		return api.QuizResponse{Quiz: nonNil(a.Quiz)}
	case artifactModel.MindMap:
		return api.MindMapResponse{InteractiveData: a.MindMap}
	default:
		return ToErrorResponse("unsupported artifact kind "+string(a.Kind), "")
	}
}

func ToErrorResponse(message string, raw string) api.ErrorResponse {
	return api.ErrorResponse{Error: message, Raw: raw}
}

func ToDocumentResponse(doc commonModels.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:          doc.Id,
		Name:        doc.Name,
		ContentType: string(doc.ContentType),
		PageCount:   doc.PageCount,
		ChunkCount:  doc.ChunkCount,
		IngestedAt:  doc.LastIngestTimestamp,
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
