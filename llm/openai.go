package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/santiagomed/synapse/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultDeepSeekURL   = "https://api.deepseek.com"
	DefaultDeepSeekModel = "deepseek-chat"
)

// OpenAIClient serves OpenAI and any OpenAI compatible API.
type OpenAIClient struct {
	openAIClient *openai.Client
	name         string
	model        string
	logger       logger.Logger
}

// NewOpenAIClient creates a client for the OpenAI API, or for cfg.BaseURL
// when one is set.
func NewOpenAIClient(cfg *LlmConfig, l logger.Logger) (LlmClient, error) {
	return newOpenAICompatible("OpenAI", cfg.APIKey, cfg.BaseURL, orDefault(cfg.ModelName, DefaultOpenAIModel), l)
}

// NewDeepSeekClient creates a client for the OpenAI compatible DeepSeek API.
func NewDeepSeekClient(cfg *LlmConfig, l logger.Logger) (LlmClient, error) {
	return newOpenAICompatible("DeepSeek", cfg.APIKey, orDefault(cfg.BaseURL, DefaultDeepSeekURL), orDefault(cfg.ModelName, DefaultDeepSeekModel), l)
}

func newOpenAICompatible(name, apiKey, baseURL, model string, l logger.Logger) (LlmClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s API key is required", ErrMissingCredential, name)
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	l.Info(fmt.Sprintf("%s client initialized", name))
	return &OpenAIClient{
		openAIClient: openai.NewClientWithConfig(clientCfg),
		name:         name,
		model:        model,
		logger:       l,
	}, nil
}

func (c *OpenAIClient) Name() string  { return c.name }
func (c *OpenAIClient) Model() string { return c.model }

// GetCompletion sends a request to the chat completions API and returns the generated text
func (c *OpenAIClient) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	resp, err := c.openAIClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: SystemPrompt(),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)

	e := &openai.APIError{}
	if errors.As(err, &e) {
		switch e.HTTPStatusCode {
		case 401:
			return Completion{}, fmt.Errorf("%w: unauthorized: invalid %s API key", ErrBackend, c.name)
		case 429:
			return Completion{}, fmt.Errorf("%w: rate limited by %s API", ErrBackend, c.name)
		case 500:
			return Completion{}, fmt.Errorf("%w: %s server error", ErrBackend, c.name)
		default:
			return Completion{}, fmt.Errorf("%w: %s API error: %v", ErrBackend, c.name, e)
		}
	}
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, ErrEmptyResponse
	}
	return Completion{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
