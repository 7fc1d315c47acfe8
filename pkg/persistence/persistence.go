// Package persistence provides the storage abstraction for generated workflows,
// conversations and templates.
package persistence

import (
	"context"

	"github.com/dukex/flowsmith/pkg/models"
)

// DefaultRecentLimit is used by ListRecent when the caller passes a
// non-positive limit.
const DefaultRecentLimit = 10

// Persistence groups the repositories behind one lifecycle.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	ConversationRepository() ConversationRepository
	TemplateRepository() TemplateRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores generated workflows. Records are immutable once
// created.
type WorkflowRepository interface {
	// Create assigns the next id and the creation time, stores the record and
	// returns the stored copy.
	Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error)
	GetByID(ctx context.Context, id int64) (*models.Workflow, error)
	// ListRecent returns workflows newest first, truncated to limit.
	ListRecent(ctx context.Context, limit int) ([]*models.Workflow, error)
}

// ConversationRepository stores conversation histories. Messages are only
// ever appended.
type ConversationRepository interface {
	Create(ctx context.Context, messages []models.ChatMessage, workflowID *int64) (*models.Conversation, error)
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	// Append adds messages to an existing conversation. The full message list
	// is swapped in a single step so readers never observe a partial append.
	Append(ctx context.Context, id int64, messages []models.ChatMessage) (*models.Conversation, error)
}

// TemplateRepository serves the read-only template library.
type TemplateRepository interface {
	// Seed stores templates, assigning ids in order.
	Seed(ctx context.Context, templates []models.Template) error
	List(ctx context.Context) ([]*models.Template, error)
	GetByID(ctx context.Context, id int64) (*models.Template, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Template, error)
}
