package openai

import (
	"context"
	"errors"

	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/customHttpClient"
	"github.com/akolanti/StudyRAG/internal/rag/llm"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewOpenAIClient(modelName string, apikey string) llm.Provider {
	logger := logger_i.NewLogger("llm_openai")
	if apikey == "" {
		logger.Error("OPENAI_API_KEY is not set")
		return nil
	}
	logger.Info("OpenAI client created", "model", modelName)
	return &llmClient{
		client: openai.NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.GetClient()),
		),
		modelName: modelName,
		logger:    logger,
	}
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(llm.UserPrompt(userQuery, matches)),
		},
		Model:       openai.ChatModel(c.modelName),
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		c.logger.WithTrace(ctx).Error("OpenAI chat completion failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("openai returned an empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
