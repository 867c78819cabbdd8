package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/domain/commonModels"
	"github.com/akolanti/StudyRAG/internal/handlers"
	"github.com/go-chi/chi/v5"
)

type stubService struct{}

func (stubService) IngestDocument(ctx context.Context, path string, name string) (commonModels.Document, error) {
	return commonModels.Document{Name: name}, nil
}
func (stubService) Ask(ctx context.Context, q string) string { return "stub" }
func (stubService) Generate(ctx context.Context, kind artifactModel.Kind) artifactModel.Artifact {
	return artifactModel.Artifact{Kind: kind, Summary: "# stub"}
}
func (stubService) Current(ctx context.Context) (commonModels.Document, bool) {
	return commonModels.Document{}, false
}
func (stubService) Restore(ctx context.Context) error { return nil }

func TestRegisterRoutes(t *testing.T) {
	r := chi.NewRouter()
	mcpCalled := false
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mcpCalled = true
		w.WriteHeader(http.StatusAccepted)
	})
	RegisterRoutes(r, handlers.NewStudyHandler(stubService{}, nil, t.TempDir()), mcp)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/document", http.StatusNotFound},
		{http.MethodGet, "/generate/summary", http.StatusOK},
		{http.MethodGet, "/generate/quiz", http.StatusOK},
		{http.MethodPost, "/generate/summary", http.StatusMethodNotAllowed},
		{http.MethodGet, "/ask", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodPost, "/mcp", http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if !mcpCalled {
		t.Error("mcp handler was not mounted")
	}
}
