package neural

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultOpenAIModel   = openai.GPT4oMini
	openAIMaxTokens      = 512
	openAITemperature    = 0.2
	openAIPromptTemplate = "Translate the following text from %s to %s. Respond with only the translation, nothing else.\n\n%s"
)

// OpenAI uses a chat completion model of any OpenAI compatible API as the engine.
type OpenAI struct {
	client *openai.Client
	config *Config
	model  string
	logger *zap.Logger
}

func NewOpenAI(config *Config, logger *zap.Logger) *OpenAI {
	if logger == nil {
		logger = zap.NewNop()
	}
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		model:  model,
		logger: logger.With(zap.String("engine", string(EngineOpenAI))),
	}
}

func (o *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	response, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(openAIPromptTemplate, o.config.SourceLang, o.config.TargetLang, text),
			},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", ErrEmptyTranslation
	}
	translation := strings.TrimSpace(response.Choices[0].Message.Content)
	if translation == "" {
		return "", ErrEmptyTranslation
	}
	o.logger.Debug("chat completion finished",
		zap.String("model", o.model),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)
	return translation, nil
}

func (o *OpenAI) CheckHealth(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("can not list models: %w", err)
	}
	return nil
}

func (o *OpenAI) Close(ctx context.Context) error {
	return nil
}
