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
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama3"
)

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response        *string `json:"response"`
	Error           string  `json:"error"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

// OllamaClient talks to a local Ollama server. Nothing is checked at
// construction; an unreachable server surfaces on the first completion.
type OllamaClient struct {
	endpoint   string
	model      string
	logger     logger.Logger
	httpClient *http.Client
}

func NewOllamaClient(cfg *LlmConfig, l logger.Logger) LlmClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultOllamaModel
	}
	l.Info(fmt.Sprintf("Ollama client initialized for %s", baseURL))
	return &OllamaClient{
		endpoint:   baseURL + "/api/generate",
		model:      model,
		logger:     l,
		httpClient: &http.Client{},
	}
}

func (o *OllamaClient) Name() string  { return "Ollama" }
func (o *OllamaClient) Model() string { return o.model }

func (o *OllamaClient) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	jsonData, err := json.Marshal(ollamaRequest{Model: o.model, Prompt: prompt, Stream: false})
	if err != nil {
		return Completion{}, fmt.Errorf("error marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Completion{}, fmt.Errorf("%w: error creating request: %v", ErrBackend, err)
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: error reading response body: %v", ErrBackend, err)
	}

	var out ollamaResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return Completion{}, fmt.Errorf("%w: ollama returned %s: %s", ErrBackend, resp.Status, msg)
	}
	if decodeErr != nil {
		return Completion{}, fmt.Errorf("%w: error unmarshaling response: %v", ErrBackend, decodeErr)
	}
	if out.Response == nil {
		return Completion{}, fmt.Errorf("%w: no 'response' key in Ollama output", ErrBackend)
	}

	return Completion{
		Text:             *out.Response,
		PromptTokens:     out.PromptEvalCount,
		CompletionTokens: out.EvalCount,
	}, nil
}
