package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
)

func newTestServer(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL, "secret", srv.Client())
}

func TestClient_UploadSendsMultipartAndToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(f)
		if string(content) != "cells" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "File upload", "filename": header.Filename})
	})
	c := newTestServer(t, mux)

	path := filepath.Join(t.TempDir(), "biology.txt")
	os.WriteFile(path, []byte("cells"), 0644)

	resp, err := c.Upload(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Filename != "biology.txt" || resp.Message != "File upload" {
		t.Errorf("response = %+v", resp)
	}
}

func TestClient_GenerateDecodesEitherShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /generate/quiz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quiz":[{"question":"Q","options":["a","b"],"answer":"b"}]}`))
	})
	mux.HandleFunc("GET /generate/mindmap", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Database is empty. Upload PDF first."}`))
	})
	c := newTestServer(t, mux)

	quiz, err := c.Generate(context.Background(), artifactModel.Quiz)
	if err != nil || len(quiz.Quiz) != 1 || quiz.Quiz[0].Answer != "b" {
		t.Errorf("quiz = %+v, err %v", quiz, err)
	}
	empty, err := c.Generate(context.Background(), artifactModel.MindMap)
	if err != nil || empty.Error != "Database is empty. Upload PDF first." || empty.InteractiveData != nil {
		t.Errorf("mindmap = %+v, err %v", empty, err)
	}
}

func TestClient_ErrorStatusBecomesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate/slides", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to parse model response","raw":"nope"}`))
	})
	c := newTestServer(t, mux)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	err := c.Slides(context.Background(), out)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Raw != "nope" {
		t.Errorf("api error = %+v", apiErr)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no file should be written on failure")
	}
}

func TestClient_AudioWritesFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate/audio", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3:" + body["text"]))
	})
	c := newTestServer(t, mux)

	out := filepath.Join(t.TempDir(), "nested", "summary.mp3")
	if err := c.Audio(context.Background(), "hello", out); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "mp3:hello" {
		t.Errorf("file = %q", data)
	}
}
