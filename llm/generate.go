package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santiagomed/synapse/logger"
	"github.com/santiagomed/synapse/utils"
)

// EmptyResponseText replaces an empty or filtered backend answer.
const EmptyResponseText = "Error: Received an empty response from the API. This might be due to a safety block."

// Result is what a generation hands back to the caller. Text is never
// empty: on failure it holds a message describing the error, and Err is set
// so the caller knows there is nothing worth saving.
type Result struct {
	Text string
	Err  error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Generate sends prompt to client and never fails: transport and backend
// errors come back as error text in the Result.
func Generate(ctx context.Context, client LlmClient, prompt string, l logger.Logger) Result {
	l = l.WithField("provider", client.Name()).WithField("model", client.Model())
	l.Debug(fmt.Sprintf("Sending prompt: %s", utils.TruncateString(prompt, 120)))

	start := time.Now()
	c, err := client.GetCompletion(ctx, prompt)
	if err != nil {
		l.WithField("error", err.Error()).Error("Generation failed")
		return Result{Text: ErrorText(client.Name(), err), Err: err}
	}
	if strings.TrimSpace(c.Text) == "" {
		l.Warn("Backend returned an empty response")
		return Result{Text: EmptyResponseText, Err: ErrEmptyResponse}
	}

	l.Info(fmt.Sprintf("Generation completed in %v (%d prompt / %d completion tokens)", time.Since(start), c.PromptTokens, c.CompletionTokens))
	return Result{Text: c.Text}
}

// ErrorText renders err as the message shown in place of generated text.
func ErrorText(provider string, err error) string {
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return EmptyResponseText
	case errors.Is(err, ErrConnectionUnavailable):
		return fmt.Sprintf("Error: Could not connect to the %s server. Is it running? Details: %v", provider, err)
	default:
		return fmt.Sprintf("Error: Could not get a response from %s. Details: %v", provider, err)
	}
}

// CleanCode removes a markdown code fence wrapping the whole text, which
// models add despite being asked not to.
func CleanCode(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n") + "\n"
}
