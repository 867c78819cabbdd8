package api

import (
	"time"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
)

type MessageResponse struct {
	Message string `json:"message" example:"start"`
}

type UploadResponse struct {
	Message  string `json:"message" example:"File upload"`
	Filename string `json:"filename" example:"biology.pdf"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Failed to parse model response"`
	Raw   string `json:"raw,omitempty" example:"I cannot answer"`
}

type AskResponse struct {
	Answer string `json:"answer" example:"Mitochondria produce ATP."`
}

type SummaryResponse struct {
	Summary string `json:"summary" example:"# Overview"`
}

type FlashcardsResponse struct {
	Flashcards []artifactModel.Flashcard `json:"flashcards"`
}

type QuizResponse struct {
	Quiz []artifactModel.QuizQuestion `json:"quiz"`
}

type MindMapResponse struct {
	InteractiveData *artifactModel.MindMapTree `json:"interactive_data"`
}

type DocumentResponse struct {
	Id          string    `json:"id" example:"3f1c0a4e-7c55-4f0e-9d43-9d3a7e1f1a22"`
	Name        string    `json:"name" example:"biology.pdf"`
	ContentType string    `json:"content_type" example:"PDF"`
	PageCount   int       `json:"page_count" example:"12"`
	ChunkCount  int       `json:"chunk_count" example:"48"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// requests---------------------

type AskRequest struct {
	Question string `json:"question" validate:"required" example:"What do mitochondria do?"`
}

type AudioRequest struct {
	Text string `json:"text" validate:"required" example:"Cells are the basic unit of life."`
}
