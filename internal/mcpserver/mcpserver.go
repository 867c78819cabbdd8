package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/rag"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = logger_i.NewLogger("mcp")

type AskInput struct {
	Question string `json:"question" jsonschema:"question about the uploaded document"`
}

type AskOutput struct {
	Answer string `json:"answer"`
}

type ArtifactInput struct {
	Kind string `json:"kind" jsonschema:"one of summary, flashcards, quiz, mindmap, slides"`
}

type ArtifactOutput struct {
	Kind       string                       `json:"kind"`
	Summary    string                       `json:"summary,omitempty"`
	Flashcards []artifactModel.Flashcard    `json:"flashcards,omitempty"`
	Quiz       []artifactModel.QuizQuestion `json:"quiz,omitempty"`
	MindMap    *artifactModel.MindMapTree   `json:"mind_map,omitempty"`
	Slides     []artifactModel.Slide        `json:"slides,omitempty"`
	Error      string                       `json:"error,omitempty"`
	Raw        string                       `json:"raw,omitempty"`
}

type DocumentInput struct{}

type DocumentOutput struct {
	Loaded     bool   `json:"loaded"`
	Id         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	PageCount  int    `json:"page_count,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	IngestedAt string `json:"ingested_at,omitempty"`
}

// NewServer exposes the study service as MCP tools.
func NewServer(service rag.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "studyrag", Version: "1.0.0"}, nil)
	tools := &toolSet{service: service}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question using the currently uploaded document as context.",
	}, tools.ask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_artifact",
		Description: "Generate a study artifact (summary, flashcards, quiz, mindmap or slides outline) from the uploaded document.",
	}, tools.generate)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "current_document",
		Description: "Describe the document that is currently indexed.",
	}, tools.current)
	return server
}

// NewHandler serves the MCP server over streamable HTTP.
func NewHandler(service rag.Service) http.Handler {
	server := NewServer(service)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

type toolSet struct {
	service rag.Service
}

func (t *toolSet) ask(ctx context.Context, _ *mcp.CallToolRequest, in AskInput) (*mcp.CallToolResult, AskOutput, error) {
	if in.Question == "" {
		return nil, AskOutput{}, errors.New("question is required")
	}
	logger.WithTrace(ctx).Debug("ask_document called")
	return nil, AskOutput{Answer: t.service.Ask(ctx, in.Question)}, nil
}

func (t *toolSet) generate(ctx context.Context, _ *mcp.CallToolRequest, in ArtifactInput) (*mcp.CallToolResult, ArtifactOutput, error) {
	kind, err := artifactModel.ParseKind(in.Kind)
	if err != nil {
		return nil, ArtifactOutput{}, err
	}
	logger.WithTrace(ctx).Debug("generate_artifact called", "kind", kind)
	return nil, toArtifactOutput(t.service.Generate(ctx, kind)), nil
}

func (t *toolSet) current(ctx context.Context, _ *mcp.CallToolRequest, _ DocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, ok := t.service.Current(ctx)
	if !ok {
		return nil, DocumentOutput{Loaded: false}, nil
	}
	return nil, DocumentOutput{
		Loaded:     true,
		Id:         doc.Id,
		Name:       doc.Name,
		PageCount:  doc.PageCount,
		ChunkCount: doc.ChunkCount,
		IngestedAt: doc.LastIngestTimestamp.Format(time.RFC3339),
	}, nil
}

func toArtifactOutput(a artifactModel.Artifact) ArtifactOutput {
	out := ArtifactOutput{Kind: string(a.Kind)}
	if a.Failed() {
		out.Error = a.Err.Message
		out.Raw = a.Err.Raw
		return out
	}
	out.Summary = a.Summary
	out.Flashcards = a.Flashcards
	out.Quiz = a.Quiz
	out.MindMap = a.MindMap
	out.Slides = a.Slides
	return out
}
