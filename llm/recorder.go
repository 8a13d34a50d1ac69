package llm

import (
	"context"

	"github.com/santiagomed/synapse/logger"
	tellm "github.com/santiagomed/tellm/sdk"
)

// Recorder logs every successful completion of the wrapped client to a
// tellm server. Logging failures are reported as warnings only.
type Recorder struct {
	next        LlmClient
	tellmClient *tellm.Client
	batchID     string
	logger      logger.Logger
}

func NewRecorder(next LlmClient, tellmURL, batchID string, l logger.Logger) *Recorder {
	return &Recorder{
		next:        next,
		tellmClient: tellm.NewClient(tellmURL),
		batchID:     batchID,
		logger:      l,
	}
}

func (r *Recorder) Name() string  { return r.next.Name() }
func (r *Recorder) Model() string { return r.next.Model() }

func (r *Recorder) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	c, err := r.next.GetCompletion(ctx, prompt)
	if err != nil {
		return c, err
	}
	l := r.logger.WithField("batch", r.batchID).
		WithField("model", r.next.Model()).
		WithField("prompt_tokens", c.PromptTokens).
		WithField("completion_tokens", c.CompletionTokens)
	if err := r.tellmClient.Log(r.batchID, prompt, c.Text); err != nil {
		l.WithField("warning", err.Error()).Warn("failed to log to tellm")
		return c, nil
	}
	l.Debug("Completion logged to tellm")
	return c, nil
}
