package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLM is a mock implementation of the LLM client
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Name() string  { return "Mock" }
func (m *MockLLM) Model() string { return "mock-model" }

func (m *MockLLM) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	args := m.Called(prompt)
	return args.Get(0).(Completion), args.Error(1)
}
