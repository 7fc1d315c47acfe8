package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig controls when the provider circuit opens.
type BreakerConfig struct {
	Name string
	// ConsecutiveFailures trips the breaker once reached.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a probe.
	OpenTimeout time.Duration
	// Interval clears the closed-state counters. Zero never clears them.
	Interval time.Duration
}

// DefaultBreakerConfig returns the configuration used by the API server.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                "llm",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		Interval:            time.Minute,
	}
}

// BreakerProvider fails fast while the upstream model keeps failing. It never
// retries: a rejected call returns gobreaker.ErrOpenState or
// gobreaker.ErrTooManyRequests.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a circuit breaker.
func NewBreakerProvider(next Provider, cfg BreakerConfig, logger *slog.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		// A caller giving up is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerProvider) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.Complete(ctx, messages, opts)
	})
	if err != nil {
		return "", err
	}

	text, _ := out.(string)

	return text, nil
}

// State reports the current breaker state.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
