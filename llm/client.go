package llm

import (
	"context"
	"fmt"

	"github.com/santiagomed/synapse/config"
	"github.com/santiagomed/synapse/logger"
	"github.com/santiagomed/synapse/utils"
)

// Providers lists the provider names NewClient understands.
var Providers = []string{"ollama", "gemini", "openai", "deepseek", "anthropic"}

// NewClient builds the client of the configured active provider. It is
// called once per run; an error means the run cannot continue.
func NewClient(ctx context.Context, cfg *config.Config, l logger.Logger) (LlmClient, error) {
	p := cfg.Provider(cfg.ActiveProvider)
	llmCfg := &LlmConfig{
		APIKey:    p.APIKey,
		BaseURL:   p.BaseURL,
		ModelName: p.Model,
	}

	var (
		client LlmClient
		err    error
	)
	switch cfg.ActiveProvider {
	case "ollama":
		client = NewOllamaClient(llmCfg, l)
	case "gemini":
		client, err = NewGeminiClient(ctx, llmCfg, l)
	case "openai":
		client, err = NewOpenAIClient(llmCfg, l)
	case "deepseek":
		client, err = NewDeepSeekClient(llmCfg, l)
	case "anthropic":
		client, err = NewAnthropicClient(llmCfg, l)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedProvider, cfg.ActiveProvider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.TellmURL != "" {
		client = NewRecorder(client, cfg.TellmURL, utils.EnsureBatchID(cfg.TellmBatch), l)
	}
	return client, nil
}
