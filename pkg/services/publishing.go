package services

import (
	"context"
	"strconv"

	"github.com/dukex/flowsmith/pkg/events"
	"github.com/dukex/flowsmith/pkg/models"
)

// publishGenerated is best effort: a failed publish is logged and the
// generation still succeeds.
func (g *Generation) publishGenerated(ctx context.Context, workflow *models.Workflow, conversationID int64, promptLength int) {
	if g.publisher == nil {
		return
	}

	event := events.WorkflowGenerated{
		BaseEvent:      events.NewBaseEvent(events.WorkflowGeneratedEvent),
		WorkflowID:     workflow.ID,
		ConversationID: conversationID,
		Title:          workflow.Title,
		NodeCount:      workflow.NodeCount,
		Integrations:   workflow.Integrations,
		PromptLength:   promptLength,
	}

	if err := g.publisher.Publish(ctx, strconv.FormatInt(workflow.ID, 10), event); err != nil {
		g.logger.Error("failed to publish workflow generated event", "workflow_id", workflow.ID, "error", err)
	}
}

func (g *Generation) publishConversation(
	ctx context.Context,
	conversation *models.Conversation,
	created bool,
	messages []models.ChatMessage,
) {
	if g.publisher == nil {
		return
	}

	event := events.ConversationUpdated{
		BaseEvent:      events.NewBaseEvent(events.ConversationUpdatedEvent),
		ConversationID: conversation.ID,
		WorkflowID:     conversation.WorkflowID,
		Created:        created,
		Messages:       messages,
	}

	if err := g.publisher.Publish(ctx, strconv.FormatInt(conversation.ID, 10), event); err != nil {
		g.logger.Error("failed to publish conversation updated event", "conversation_id", conversation.ID, "error", err)
	}
}
