package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
)

// ConversationRepository keeps conversation histories keyed by id.
type ConversationRepository struct {
	mu      sync.RWMutex
	lastID  atomic.Int64
	records map[int64]*models.Conversation
	now     func() time.Time
}

// NewConversationRepository creates an empty conversation repository.
func NewConversationRepository(now func() time.Time) *ConversationRepository {
	return &ConversationRepository{
		records: make(map[int64]*models.Conversation),
		now:     now,
	}
}

func (r *ConversationRepository) Create(
	_ context.Context,
	messages []models.ChatMessage,
	workflowID *int64,
) (*models.Conversation, error) {
	stored := (&models.Conversation{
		Messages:   messages,
		WorkflowID: workflowID,
	}).Clone()

	if stored.Messages == nil {
		stored.Messages = []models.ChatMessage{}
	}

	stored.ID = r.lastID.Add(1)
	stored.CreatedAt = r.now()

	r.mu.Lock()
	r.records[stored.ID] = stored
	r.mu.Unlock()

	return stored.Clone(), nil
}

func (r *ConversationRepository) GetByID(_ context.Context, id int64) (*models.Conversation, error) {
	r.mu.RLock()
	stored, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return nil, persistence.NewConversationError("GetByID", id, persistence.ErrConversationNotFound)
	}

	return stored.Clone(), nil
}

func (r *ConversationRepository) Append(
	_ context.Context,
	id int64,
	messages []models.ChatMessage,
) (*models.Conversation, error) {
	incoming := models.CloneMessages(messages)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, persistence.NewConversationError("Append", id, persistence.ErrConversationNotFound)
	}

	merged := make([]models.ChatMessage, 0, len(stored.Messages)+len(incoming))
	merged = append(merged, stored.Messages...)
	merged = append(merged, incoming...)

	updated := *stored
	updated.Messages = merged
	r.records[id] = &updated

	return updated.Clone(), nil
}
