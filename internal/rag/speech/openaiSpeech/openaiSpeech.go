package openaiSpeech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/akolanti/StudyRAG/internal/customHttpClient"
	"github.com/akolanti/StudyRAG/internal/rag/speech"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// maxInputChars is the longest input the speech endpoint accepts in one call.
const maxInputChars = 4096

type synthesizer struct {
	speak  func(ctx context.Context, input string) (io.ReadCloser, error)
	logger *logger_i.Logger
}

func NewOpenAISpeech(model string, voice string, apikey string) speech.Synthesizer {
	logger := logger_i.NewLogger("speech_openai")
	if apikey == "" {
		logger.Warn("OPENAI_API_KEY is not set, audio narration disabled")
		return nil
	}
	client := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithHTTPClient(customHttpClient.GetClient()),
	)
	return &synthesizer{
		speak: func(ctx context.Context, input string) (io.ReadCloser, error) {
			resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
				Input:          input,
				Model:          openai.SpeechModel(model),
				Voice:          openai.AudioSpeechNewParamsVoice(voice),
				ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
			})
			if err != nil {
				return nil, err
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("speech endpoint answered %s", resp.Status)
			}
			return resp.Body, nil
		},
		logger: logger,
	}
}

// Synthesize narrates text of any length. Longer inputs are spoken piece by piece
// and the MP3 outputs are joined, which players handle as one stream.
func (s *synthesizer) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	pieces := splitForSpeech(text, maxInputChars)
	if len(pieces) == 0 {
		return nil, errors.New("no text to synthesize")
	}
	if len(pieces) == 1 {
		return s.speakPiece(ctx, pieces[0])
	}

	s.logger.WithTrace(ctx).Debug("Narrating in pieces", "pieces", len(pieces))
	var audio bytes.Buffer
	for i, piece := range pieces {
		body, err := s.speakPiece(ctx, piece)
		if err != nil {
			return nil, fmt.Errorf("piece %d of %d: %w", i+1, len(pieces), err)
		}
		_, err = io.Copy(&audio, body)
		body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading piece %d of %d: %w", i+1, len(pieces), err)
		}
	}
	return io.NopCloser(&audio), nil
}

func (s *synthesizer) speakPiece(ctx context.Context, piece string) (io.ReadCloser, error) {
	body, err := s.speak(ctx, piece)
	if err != nil {
		s.logger.WithTrace(ctx).Error("OpenAI speech failed", "error", err)
		return nil, err
	}
	return body, nil
}

// splitForSpeech cuts text into pieces of at most limit runes, preferring sentence
// ends, then line breaks, then spaces. Words longer than limit are hard cut.
func splitForSpeech(text string, limit int) []string {
	var pieces []string
	rest := []rune(strings.TrimSpace(text))
	for len(rest) > limit {
		cut := lastBoundary(rest[:limit+1])
		piece := strings.TrimSpace(string(rest[:cut]))
		if piece != "" {
			pieces = append(pieces, piece)
		}
		rest = []rune(strings.TrimLeftFunc(string(rest[cut:]), unicode.IsSpace))
	}
	if len(rest) > 0 {
		pieces = append(pieces, string(rest))
	}
	return pieces
}

// lastBoundary returns the cut position inside window, which holds limit+1 runes
// so a space right after the limit still counts.
func lastBoundary(window []rune) int {
	limit := len(window) - 1
	space := -1
	for i := limit; i > 0; i-- {
		if !unicode.IsSpace(window[i]) {
			continue
		}
		switch window[i-1] {
		case '.', '!', '?', '\n':
			return i
		}
		if window[i] == '\n' {
			return i
		}
		if space < 0 {
			space = i
		}
	}
	if space > 0 {
		return space
	}
	return limit
}
