package mcpserver

import (
	"context"
	"testing"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mockService struct {
	OnAsk      func(ctx context.Context, q string) string
	OnGenerate func(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact
	doc        *commonModels.Document
}

func (m *mockService) IngestDocument(ctx context.Context, path string, name string) (commonModels.Document, error) {
	return commonModels.Document{}, nil
}
func (m *mockService) Ask(ctx context.Context, q string) string {
	if m.OnAsk != nil {
		return m.OnAsk(ctx, q)
	}
	return "mocked answer"
}
func (m *mockService) Generate(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, kind)
	}
	return artifactModel.Artifact{Kind: kind}
}
func (m *mockService) Current(ctx context.Context) (commonModels.Document, bool) {
	if m.doc == nil {
		return commonModels.Document{}, false
	}
	return *m.doc, true
}
func (m *mockService) Restore(ctx context.Context) error { return nil }

func connect(t *testing.T, svc *mockService) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	if _, err := NewServer(svc).Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func structured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned an error: %+v", res.Content)
	}
	m, ok := res.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("structured content is %T", res.StructuredContent)
	}
	return m
}

func TestTools_Listed(t *testing.T) {
	session := connect(t, &mockService{})
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"ask_document", "generate_artifact", "current_document"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestAskDocument(t *testing.T) {
	var gotQuestion string
	svc := &mockService{OnAsk: func(ctx context.Context, q string) string {
		gotQuestion = q
		return "ATP"
	}}
	session := connect(t, svc)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "ask_document",
		Arguments: map[string]any{"question": "What do mitochondria make?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out := structured(t, res); out["answer"] != "ATP" {
		t.Errorf("answer = %v", out["answer"])
	}
	if gotQuestion != "What do mitochondria make?" {
		t.Errorf("question forwarded as %q", gotQuestion)
	}
}

func TestGenerateArtifact(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		artifact  artifactModel.Artifact
		wantKey   string
		wantError bool
	}{
		{
			name:     "flashcards",
			kind:     "flashcards",
			artifact: artifactModel.Artifact{Kind: artifactModel.Flashcards, Flashcards: []artifactModel.Flashcard{{Front: "Q", Back: "A"}}},
			wantKey:  "flashcards",
		},
		{
			name:     "parse failure keeps raw",
			kind:     "quiz",
			artifact: artifactModel.Artifact{Kind: artifactModel.Quiz, Err: &artifactModel.ArtifactError{Message: "Failed to parse model response", Raw: "I cannot answer"}},
			wantKey:  "raw",
		},
		{
			name:      "unknown kind",
			kind:      "poem",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{OnGenerate: func(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact {
				return tt.artifact
			}}
			session := connect(t, svc)

			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "generate_artifact",
				Arguments: map[string]any{"kind": tt.kind},
			})
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantError {
				if !res.IsError {
					t.Error("expected a tool error for an unknown kind")
				}
				return
			}
			if _, ok := structured(t, res)[tt.wantKey]; !ok {
				t.Errorf("output missing %q", tt.wantKey)
			}
		})
	}
}

func TestCurrentDocument(t *testing.T) {
	session := connect(t, &mockService{doc: &commonModels.Document{Id: "doc-1", Name: "biology.pdf", ChunkCount: 4}})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "current_document", Arguments: map[string]any{}})
	if err != nil {
		t.Fatal(err)
	}
	out := structured(t, res)
	if out["loaded"] != true || out["name"] != "biology.pdf" {
		t.Errorf("output = %v", out)
	}
}
