package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/santiagomed/synapse/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudClientsRequireCredential(t *testing.T) {
	l := logger.NewNullLogger()
	cfg := &LlmConfig{ModelName: "m"}

	_, err := NewGeminiClient(context.Background(), cfg, l)
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewOpenAIClient(cfg, l)
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewDeepSeekClient(cfg, l)
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewAnthropicClient(cfg, l)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestGeminiClientDefaults(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), &LlmConfig{APIKey: "test-key"}, logger.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "Gemini", client.Name())
	assert.Equal(t, DefaultGeminiModel, client.Model())
}

func TestOpenAICompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "hello", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","model":"gpt-test",
			"choices":[{"index":0,"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&LlmConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1", ModelName: "gpt-test"}, logger.NewNullLogger())
	require.NoError(t, err)

	c, err := client.GetCompletion(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, Completion{Text: "hi there", PromptTokens: 3, CompletionTokens: 2}, c)
}

func TestOpenAIUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client, err := NewDeepSeekClient(&LlmConfig{APIKey: "bad", BaseURL: server.URL}, logger.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "DeepSeek", client.Name())
	assert.Equal(t, DefaultDeepSeekModel, client.Model())

	_, err = client.GetCompletion(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestOpenAIEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&LlmConfig{APIKey: "sk", BaseURL: server.URL}, logger.NewNullLogger())
	require.NoError(t, err)
	_, err = client.GetCompletion(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req AnthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.Equal(t, SystemPrompt(), req.System)
		assert.Equal(t, []Message{{Role: "user", Content: "hello"}}, req.Messages)

		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"hi"},{"type":"text","text":" there"}],
			"usage":{"input_tokens":4,"output_tokens":2}}`))
	}))
	defer server.Close()

	client, err := NewAnthropicClient(&LlmConfig{APIKey: "ak-test", BaseURL: server.URL, ModelName: "claude-test"}, logger.NewNullLogger())
	require.NoError(t, err)

	c, err := client.GetCompletion(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, Completion{Text: "hi there", PromptTokens: 4, CompletionTokens: 2}, c)
}

func TestAnthropicErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens too large"}}`))
	}))
	defer server.Close()

	client, err := NewAnthropicClient(&LlmConfig{APIKey: "ak", BaseURL: server.URL}, logger.NewNullLogger())
	require.NoError(t, err)

	_, err = client.GetCompletion(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "max_tokens too large")
}

func TestAnthropicUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewAnthropicClient(&LlmConfig{APIKey: "ak", BaseURL: url}, logger.NewNullLogger())
	require.NoError(t, err)
	_, err = client.GetCompletion(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
}
