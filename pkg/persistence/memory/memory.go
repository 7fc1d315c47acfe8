// Package memory provides the volatile, process-scoped persistence
// implementation. All state is lost on restart; templates are reseeded at
// startup.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dukex/flowsmith/pkg/persistence"
)

var _ persistence.Persistence = (*Persistence)(nil)

// Option configures the in-memory persistence.
type Option func(*Persistence)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Persistence) {
		p.now = now
	}
}

// Persistence implements persistence.Persistence with mutex-guarded maps and
// atomic id counters, safe for concurrent request handlers.
type Persistence struct {
	now    func() time.Time
	closed atomic.Bool

	workflowRepo     *WorkflowRepository
	conversationRepo *ConversationRepository
	templateRepo     *TemplateRepository
}

// NewPersistence creates an empty store.
func NewPersistence(opts ...Option) *Persistence {
	p := &Persistence{now: time.Now}

	for _, opt := range opts {
		opt(p)
	}

	clock := func() time.Time { return p.now().UTC() }

	p.workflowRepo = NewWorkflowRepository(clock)
	p.conversationRepo = NewConversationRepository(clock)
	p.templateRepo = NewTemplateRepository()

	return p
}

// WorkflowRepository returns the workflow repository.
func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

// ConversationRepository returns the conversation repository.
func (p *Persistence) ConversationRepository() persistence.ConversationRepository {
	return p.conversationRepo
}

// TemplateRepository returns the template repository.
func (p *Persistence) TemplateRepository() persistence.TemplateRepository {
	return p.templateRepo
}

// HealthCheck reports ErrClosed once Close has been called.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if p.closed.Load() {
		return persistence.ErrClosed
	}

	return nil
}

// Close marks the store closed. Data stays readable until the process exits.
func (p *Persistence) Close(_ context.Context) error {
	p.closed.Store(true)

	return nil
}
