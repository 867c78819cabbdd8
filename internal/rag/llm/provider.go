package llm

import (
	"context"
	"fmt"
	"strings"
)

type Provider interface {
	Generate(ctx context.Context, query string, matches []string) (string, error)
}

// UserPrompt joins the retrieved chunks and the question into the user turn every backend sends.
func UserPrompt(query string, matches []string) string {
	contextText := strings.Join(matches, "\n\n")
	return fmt.Sprintf("Context:\n%s\n\nUser Question: %s", contextText, query)
}
