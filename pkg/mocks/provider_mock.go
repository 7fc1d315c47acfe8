package mocks

import (
	"context"

	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of llm.Provider interface.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, messages []llm.Message, opts llm.CompletionOptions) (string, error) {
	args := m.Called(ctx, messages, opts)

	return args.String(0), args.Error(1)
}

// OnPurpose registers an expectation for completions with the given purpose.
func (m *MockProvider) OnPurpose(purpose llm.Purpose) *mock.Call {
	return m.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(opts llm.CompletionOptions) bool {
		return opts.Purpose == purpose
	}))
}
