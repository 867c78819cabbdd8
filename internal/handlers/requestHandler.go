package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/StudyRAG/internal/adapter"
	"github.com/akolanti/StudyRAG/internal/adapter/utils"
	"github.com/akolanti/StudyRAG/internal/api"
	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/internal/metrics"
	"github.com/akolanti/StudyRAG/internal/slides"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// RootHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Router       / [get]
func RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.MessageResponse{Message: "start"})
}

// Upload godoc
// @Summary      Upload and index a document
// @Description  Stores the file under the upload directory and replaces the indexed corpus with it.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF (or docx/odt/rtf/txt) to index"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "Missing file"
// @Failure      413  {object}  api.ErrorResponse "Body over the upload limit"
// @Failure      500  {object}  api.ErrorResponse "File could not be stored or indexed"
// @Router       /upload [post]
func (h *StudyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := logRH.WithTrace(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large, the limit is %d bytes", tooLarge.Limit))
			return
		}
		WriteErrorResponse(w, http.StatusBadRequest, "Bad request")
		return
	}
	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := cleanFilename(fileMetadata.Filename)
	if filename == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	targetDir, err := getTargetDirectory(h.uploadDir)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Could not save file: %v", err))
		return
	}
	filePath := filepath.Join(targetDir, filename)
	if err = saveFile(filePath, fileReader); err != nil {
		log.Error("Could not save upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Could not save file: %v", err))
		return
	}

	if _, err = h.service.IngestDocument(r.Context(), filePath, filename); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Error processing PDF: %v", err))
		return
	}
	writeJsonResponse(w, http.StatusOK, api.UploadResponse{Message: "File upload", Filename: filename})
}

// Ask godoc
// @Summary      Ask a question about the uploaded document
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "The question"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse "Malformed body"
// @Router       /ask [post]
func (h *StudyHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	var requestData api.AskRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	writeJsonResponse(w, http.StatusOK, api.AskResponse{Answer: h.service.Ask(r.Context(), requestData.Question)})
}

// Summary godoc
// @Summary      Markdown summary of the document
// @Tags         Generate
// @Produce      json
// @Success      200  {object}  api.SummaryResponse
// @Success      200  {object}  api.ErrorResponse "Empty corpus or provider failure"
// @Router       /generate/summary [get]
func (h *StudyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, artifactModel.Summary)
}

// Flashcards godoc
// @Summary      Flashcards drawn from the document
// @Tags         Generate
// @Produce      json
// @Success      200  {object}  api.FlashcardsResponse
// @Success      200  {object}  api.ErrorResponse "Empty corpus or unparseable model output"
// @Router       /generate/flashcards [get]
func (h *StudyHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, artifactModel.Flashcards)
}

// Quiz godoc
// @Summary      Multiple choice quiz drawn from the document
// @Tags         Generate
// @Produce      json
// @Success      200  {object}  api.QuizResponse
// @Success      200  {object}  api.ErrorResponse "Empty corpus or unparseable model output"
// @Router       /generate/quiz [get]
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, artifactModel.Quiz)
}

// MindMap godoc
// @Summary      Topic tree of the document
// @Tags         Generate
// @Produce      json
// @Success      200  {object}  api.MindMapResponse
// @Success      200  {object}  api.ErrorResponse "Empty corpus or unparseable model output"
// @Router       /generate/mindmap [get]
func (h *StudyHandler) MindMap(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, artifactModel.MindMap)
}

func (h *StudyHandler) generate(w http.ResponseWriter, r *http.Request, kind artifactModel.Kind) {
	if !validateContext(r.Context()) {
		return
	}
	artifact := h.service.Generate(r.Context(), kind)
	writeJsonResponse(w, http.StatusOK, adapter.ToArtifactResponse(artifact))
}

// Slides godoc
// @Summary      Slide deck built from the document
// @Description  Generates a slide outline and returns it as a .pptx file.
// @Tags         Generate
// @Produce      application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Success      200  {file}    binary
// @Failure      500  {object}  api.ErrorResponse "Empty corpus, unparseable model output or write failure"
// @Router       /generate/slides [post]
func (h *StudyHandler) Slides(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	artifact := h.service.Generate(r.Context(), artifactModel.Slides)
	if artifact.Failed() {
		writeJsonResponse(w, http.StatusInternalServerError, adapter.ToErrorResponse(artifact.Err.Message, artifact.Err.Raw))
		return
	}

	targetDir, err := getTargetDirectory(h.uploadDir)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	filePath := filepath.Join(targetDir, fmt.Sprintf("presentation_%s.pptx", utils.GetNewUUID()))
	if err = slides.BuildDeck(artifact.Slides).WriteFile(filePath); err != nil {
		logRH.WithTrace(r.Context()).Error("Could not write deck", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	serveFile(w, r, filePath, pptxContentType, "presentation.pptx")
}

// Audio godoc
// @Summary      Narrate text as MP3
// @Tags         Generate
// @Accept       json
// @Produce      audio/mpeg
// @Param        request  body      api.AudioRequest  true  "Text to narrate"
// @Success      200      {file}    binary
// @Failure      400      {object}  api.ErrorResponse "Malformed body"
// @Failure      500      {object}  api.ErrorResponse "Speech provider missing or failed"
// @Router       /generate/audio [post]
func (h *StudyHandler) Audio(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	var requestData api.AudioRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if h.speech == nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "speech synthesis is not configured")
		return
	}

	start := time.Now()
	stream, err := h.speech.Synthesize(r.Context(), requestData.Text)
	metrics.CaptureExecutionMetrics("speech_synthesis", time.Since(start))
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer stream.Close()

	targetDir, err := getTargetDirectory(h.uploadDir)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	fileName := fmt.Sprintf("audio_%s.mp3", utils.GetNewUUID())
	filePath := filepath.Join(targetDir, fileName)
	if err = saveFile(filePath, stream); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	serveFile(w, r, filePath, "audio/mpeg", fileName)
}

// Document godoc
// @Summary      Metadata of the indexed document
// @Tags         Query
// @Produce      json
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse "Nothing uploaded yet"
// @Router       /document [get]
func (h *StudyHandler) Document(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	doc, ok := h.service.Current(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusNotFound, "no document has been uploaded")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logRH.WithTrace(r.Context()).Warn("Bad request body", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

func saveFile(path string, src io.Reader) error {
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
