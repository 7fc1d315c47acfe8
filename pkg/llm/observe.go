package llm

import (
	"context"
	"time"
)

// Observer receives the outcome of every completion call.
type Observer interface {
	ObserveCompletion(purpose Purpose, duration time.Duration, err error)
}

// ObservedProvider reports call latency and outcome to an Observer.
type ObservedProvider struct {
	next     Provider
	observer Observer
	now      func() time.Time
}

// NewObservedProvider wraps next so that every call is reported to observer.
func NewObservedProvider(next Provider, observer Observer) *ObservedProvider {
	return &ObservedProvider{next: next, observer: observer, now: time.Now}
}

func (o *ObservedProvider) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	start := o.now()
	text, err := o.next.Complete(ctx, messages, opts)
	o.observer.ObserveCompletion(opts.Purpose, o.now().Sub(start), err)

	return text, err
}
