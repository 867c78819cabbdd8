package anthropic

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/customHttpClient"
	"github.com/akolanti/StudyRAG/internal/rag/llm"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type llmClient struct {
	client    anthropic.Client
	modelName string
	logger    *logger_i.Logger
}

func NewAnthropicClient(modelName string, apikey string) llm.Provider {
	logger := logger_i.NewLogger("llm_anthropic")
	if apikey == "" {
		logger.Error("ANTHROPIC_API_KEY is not set")
		return nil
	}
	logger.Info("Anthropic client created", "model", modelName)
	return &llmClient{
		client: anthropic.NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.GetClient()),
		),
		modelName: modelName,
		logger:    logger,
	}
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.modelName),
		MaxTokens:   config.AnthropicMaxTokens,
		Temperature: anthropic.Float(float64(config.ModelTemperature)),
		System:      []anthropic.TextBlockParam{{Text: config.ModelContext}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(llm.UserPrompt(userQuery, matches))),
		},
	})
	if err != nil {
		c.logger.WithTrace(ctx).Error("Anthropic message failed", "error", err)
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic returned no text content")
	}
	return sb.String(), nil
}
