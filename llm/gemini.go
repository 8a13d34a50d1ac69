package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/santiagomed/synapse/logger"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-1.5-pro-latest"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli    *genai.Client
	model  string
	logger logger.Logger
}

// NewGeminiClient fails with ErrMissingCredential before touching the
// network when no API key is configured.
func NewGeminiClient(ctx context.Context, cfg *LlmConfig, l logger.Logger) (LlmClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key for Gemini is missing", ErrMissingCredential)
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultGeminiModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing Gemini: %w", err)
	}
	l.Info("Gemini client initialized")
	return &GeminiClient{cli: cli, model: model, logger: l}, nil
}

func (g *GeminiClient) Name() string  { return "Gemini" }
func (g *GeminiClient) Model() string { return g.model }

func (g *GeminiClient) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Completion{}, ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	c := Completion{Text: b.String()}
	if resp.UsageMetadata != nil {
		c.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		c.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return c, nil
}
