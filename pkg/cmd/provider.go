// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/dukex/flowsmith/pkg/config"
	"github.com/dukex/flowsmith/pkg/llm"
)

// NewProvider builds the model provider chain: OpenAI, optionally behind a
// circuit breaker, reporting every call to observer when one is given.
func NewProvider(cfg config.Config, observer llm.Observer, logger *slog.Logger) (llm.Provider, error) {
	openAI, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.LLMTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai provider: %w", err)
	}

	logger.Info("model provider configured", "model", openAI.Model(), "circuit_breaker", cfg.CircuitBreaker)

	var provider llm.Provider = openAI

	if cfg.CircuitBreaker {
		provider = llm.NewBreakerProvider(provider, llm.DefaultBreakerConfig(), logger)
	}

	if observer != nil {
		provider = llm.NewObservedProvider(provider, observer)
	}

	return provider, nil
}
