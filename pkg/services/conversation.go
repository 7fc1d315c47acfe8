package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/go-playground/validator/v10"
)

// Conversations maintains append-only chat histories.
type Conversations struct {
	repository persistence.ConversationRepository
	validate   *validator.Validate
}

func NewConversations(repository persistence.ConversationRepository) *Conversations {
	return &Conversations{
		repository: repository,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create starts a conversation seeded with messages.
func (c *Conversations) Create(
	ctx context.Context,
	messages []models.ChatMessage,
	workflowID *int64,
) (*models.Conversation, error) {
	if err := c.validateMessages("Create", messages); err != nil {
		return nil, err
	}

	conversation, err := c.repository.Create(ctx, messages, workflowID)
	if err != nil {
		return nil, newServiceError("Create", CodePersistence, "", err)
	}

	return conversation, nil
}

// Append adds messages to an existing conversation. A missing conversation is
// reported with persistence.ErrConversationNotFound in the chain.
func (c *Conversations) Append(ctx context.Context, id int64, messages []models.ChatMessage) (*models.Conversation, error) {
	if err := c.validateMessages("Append", messages); err != nil {
		return nil, err
	}

	conversation, err := c.repository.Append(ctx, id, messages)
	if err != nil {
		if persistence.IsConversationNotFound(err) {
			return nil, err
		}

		return nil, newServiceError("Append", CodePersistence, "", err)
	}

	return conversation, nil
}

func (c *Conversations) Get(ctx context.Context, id int64) (*models.Conversation, error) {
	return c.repository.GetByID(ctx, id)
}

// Thread appends messages to the conversation named by rawID, or creates a
// new one when rawID is empty, not numeric or unknown. The boolean reports
// whether a conversation was created.
func (c *Conversations) Thread(
	ctx context.Context,
	rawID string,
	messages []models.ChatMessage,
	workflowID *int64,
) (*models.Conversation, bool, error) {
	if id, ok := parseConversationID(rawID); ok {
		conversation, err := c.Append(ctx, id, messages)
		if err == nil {
			return conversation, false, nil
		}

		if !persistence.IsConversationNotFound(err) {
			return nil, false, err
		}
	}

	conversation, err := c.Create(ctx, messages, workflowID)
	if err != nil {
		return nil, false, err
	}

	return conversation, true, nil
}

func (c *Conversations) validateMessages(op string, messages []models.ChatMessage) error {
	for i := range messages {
		if err := c.validate.Struct(messages[i]); err != nil {
			return newServiceError(op, CodeInvalidMessage, "", fmt.Errorf("%w %d: %w", ErrInvalidMessage, i, err))
		}
	}

	return nil
}

func parseConversationID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
