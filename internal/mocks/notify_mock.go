package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jalnangage/marketing-agent/internal/notify"
)

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, summary notify.BatchSummary, recipient string) error {
	args := m.Called(ctx, summary, recipient)
	return args.Error(0)
}

func (m *MockNotifier) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockNotifier) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}
