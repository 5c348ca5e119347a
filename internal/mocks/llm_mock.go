package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jalnangage/marketing-agent/internal/llm"
)

// MockGenerator is a mock implementation of the llm.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Chat(ctx context.Context, message string, history []llm.Message) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateStrategyText(ctx context.Context, history []llm.Message) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}
