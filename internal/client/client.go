package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/akolanti/StudyRAG/internal/api"
	"github.com/akolanti/StudyRAG/internal/customHttpClient"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
)

// Client talks to the StudyRAG HTTP API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// APIError is a non-2xx answer carrying the server's error body.
type APIError struct {
	Status  int
	Message string
	Raw     string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Status)
	}
	return e.Message
}

// ArtifactResponse is the union of every generate body. Error is set when
// the server reported an empty corpus or a generation failure.
type ArtifactResponse struct {
	Summary         string                       `json:"summary,omitempty"`
	Flashcards      []artifactModel.Flashcard    `json:"flashcards,omitempty"`
	Quiz            []artifactModel.QuizQuestion `json:"quiz,omitempty"`
	InteractiveData *artifactModel.MindMapTree   `json:"interactive_data,omitempty"`
	Error           string                       `json:"error,omitempty"`
	Raw             string                       `json:"raw,omitempty"`
}

// New uses the shared pooled transport when hc is nil.
func New(baseURL string, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = customHttpClient.GetClient()
	}
	return &Client{baseURL: baseURL, token: token, http: hc}
}

func (c *Client) Upload(ctx context.Context, path string) (api.UploadResponse, error) {
	var out api.UploadResponse

	f, err := os.Open(path)
	if err != nil {
		return out, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return out, err
	}
	if _, err = io.Copy(part, f); err != nil {
		return out, err
	}
	if err = mw.Close(); err != nil {
		return out, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/upload", mw.FormDataContentType(), &body)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	return out, json.NewDecoder(resp.Body).Decode(&out)
}

func (c *Client) Ask(ctx context.Context, question string) (api.AskResponse, error) {
	var out api.AskResponse
	err := c.doJSON(ctx, http.MethodPost, "/ask", api.AskRequest{Question: question}, &out)
	return out, err
}

// Generate fetches one of the JSON artifacts. Slides are binary, use Slides.
func (c *Client) Generate(ctx context.Context, kind artifactModel.Kind) (ArtifactResponse, error) {
	var out ArtifactResponse
	if kind == artifactModel.Slides {
		return out, fmt.Errorf("slides are returned as a file")
	}
	err := c.doJSON(ctx, http.MethodGet, "/generate/"+string(kind), nil, &out)
	return out, err
}

func (c *Client) Document(ctx context.Context) (api.DocumentResponse, error) {
	var out api.DocumentResponse
	err := c.doJSON(ctx, http.MethodGet, "/document", nil, &out)
	return out, err
}

// Slides downloads the generated deck to outPath.
func (c *Client) Slides(ctx context.Context, outPath string) error {
	resp, err := c.do(ctx, http.MethodPost, "/generate/slides", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return writeFile(outPath, resp.Body)
}

// Audio narrates text and stores the mp3 at outPath.
func (c *Client) Audio(ctx context.Context, text string, outPath string) error {
	payload, err := json.Marshal(api.AudioRequest{Text: text})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/generate/audio", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return writeFile(outPath, resp.Body)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}
	resp, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do returns the response only for 2xx statuses, the caller closes the body.
func (c *Client) do(ctx context.Context, method string, path string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	var errBody api.ErrorResponse
	if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
		apiErr.Message = errBody.Error
		apiErr.Raw = errBody.Raw
	}
	return nil, apiErr
}

func writeFile(path string, src io.Reader) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
