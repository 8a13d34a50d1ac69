package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santiagomed/synapse/logger"
)

const (
	DefaultAnthropicURL   = "https://api.anthropic.com"
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
	anthropicVersion      = "2023-06-01"
	anthropicMaxTokens    = 4096
)

type AnthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"content"`
	ID         string `json:"id"`
	Model      string `json:"model"`
	Role       string `json:"role"`
	StopReason string `json:"stop_reason"`
	Type       string `json:"type"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type AnthropicErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type AnthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AnthropicClient struct {
	apiKey     string
	endpoint   string
	model      string
	logger     logger.Logger
	httpClient *http.Client
}

func NewAnthropicClient(cfg *LlmConfig, l logger.Logger) (LlmClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", ErrMissingCredential)
	}
	l.Info("Anthropic client initialized")
	return &AnthropicClient{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(orDefault(cfg.BaseURL, DefaultAnthropicURL), "/") + "/v1/messages",
		model:      orDefault(cfg.ModelName, DefaultAnthropicModel),
		logger:     l,
		httpClient: &http.Client{},
	}, nil
}

func (a *AnthropicClient) Name() string  { return "Anthropic" }
func (a *AnthropicClient) Model() string { return a.model }

func (a *AnthropicClient) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	req := AnthropicRequest{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		System:    SystemPrompt(),
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return Completion{}, fmt.Errorf("error marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Completion{}, fmt.Errorf("%w: error creating request: %v", ErrBackend, err)
	}

	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: error reading response body: %v", ErrBackend, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp AnthropicErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return Completion{}, fmt.Errorf("%w: anthropic returned %s", ErrBackend, resp.Status)
		}
		return Completion{}, fmt.Errorf("%w: anthropic API error: %s - %s", ErrBackend, errResp.Error.Type, errResp.Error.Message)
	}

	var anthropicResp AnthropicResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return Completion{}, fmt.Errorf("%w: error unmarshaling response: %v", ErrBackend, err)
	}

	var text strings.Builder
	for _, block := range anthropicResp.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return Completion{}, ErrEmptyResponse
	}

	return Completion{
		Text:             text.String(),
		PromptTokens:     anthropicResp.Usage.InputTokens,
		CompletionTokens: anthropicResp.Usage.OutputTokens,
	}, nil
}
