// Package extract pulls a JSON span out of free-text model output.
// It is a substring heuristic and does not parse or repair JSON.
package extract

import (
	"errors"
	"strings"
)

var ErrNoSpan = errors.New("no bracketed span found in model output")

var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// StripFences removes markdown code fence markers, keeping their content.
func StripFences(text string) string {
	return strings.TrimSpace(fenceReplacer.Replace(text))
}

// Span returns text from the first open to the last close bracket, both included.
func Span(text string, open, close byte) (string, error) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end < start {
		return "", ErrNoSpan
	}
	return text[start : end+1], nil
}

func JSONArray(text string) (string, error) {
	return Span(StripFences(text), '[', ']')
}

func JSONObject(text string) (string, error) {
	return Span(StripFences(text), '{', '}')
}
