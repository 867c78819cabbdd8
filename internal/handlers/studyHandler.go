package handlers

import (
	"github.com/akolanti/StudyRAG/internal/rag"
	"github.com/akolanti/StudyRAG/internal/rag/speech"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

// StudyHandler maps the HTTP endpoints onto the study service.
type StudyHandler struct {
	service   rag.Service
	speech    speech.Synthesizer
	uploadDir string
}

// NewStudyHandler wires the handler; synth may be nil, in which case audio requests fail with 500.
func NewStudyHandler(service rag.Service, synth speech.Synthesizer, uploadDir string) *StudyHandler {
	logRH.Info("Starting study handler", "uploadDir", uploadDir, "speech", synth != nil)
	return &StudyHandler{service: service, speech: synth, uploadDir: uploadDir}
}
