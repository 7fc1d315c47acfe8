package cmd

import (
	"log/slog"
	"testing"

	"github.com/dukex/flowsmith/pkg/config"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		breaker  bool
		observer llm.Observer
		check    func(t *testing.T, provider llm.Provider)
	}{
		{
			name: "plain openai",
			check: func(t *testing.T, provider llm.Provider) {
				t.Helper()
				assert.IsType(t, &llm.OpenAIProvider{}, provider)
			},
		},
		{
			name:    "behind a breaker",
			breaker: true,
			check: func(t *testing.T, provider llm.Provider) {
				t.Helper()
				assert.IsType(t, &llm.BreakerProvider{}, provider)
			},
		},
		{
			name:     "observed",
			breaker:  true,
			observer: metrics.NewCollector("test"),
			check: func(t *testing.T, provider llm.Provider) {
				t.Helper()
				assert.IsType(t, &llm.ObservedProvider{}, provider)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider, err := NewProvider(config.Config{
				OpenAIAPIKey:   "sk-test",
				OpenAIModel:    "gpt-4o",
				CircuitBreaker: tt.breaker,
			}, tt.observer, slog.Default())
			require.NoError(t, err)

			tt.check(t, provider)
		})
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(config.Config{OpenAIModel: "gpt-4o"}, nil, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestNewPersistence_SeedsTemplates(t *testing.T) {
	t.Parallel()

	store := NewPersistence(t.Context(), slog.Default())

	list, err := store.TemplateRepository().List(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, int64(1), list[0].ID)
}
