package llm

import "context"

// Completion is the text produced for one prompt. Token counts are zero
// when the backend does not report them.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// LlmClient is a text generation backend.
type LlmClient interface {
	Name() string
	Model() string
	GetCompletion(ctx context.Context, prompt string) (Completion, error)
}

// LlmConfig holds the settings a client is built from.
type LlmConfig struct {
	APIKey    string
	BaseURL   string
	ModelName string
}
