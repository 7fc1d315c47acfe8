// Package events defines the notifications published after a generation is
// persisted.
package events

import (
	"time"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/google/uuid"
)

type EventType string

const Topic = "flowsmith.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowGeneratedEvent   EventType = "workflow.generated"
	ConversationUpdatedEvent EventType = "conversation.updated"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowGenerated is published once a generated workflow is stored.
type WorkflowGenerated struct {
	BaseEvent

	WorkflowID     int64    `json:"workflow_id"`
	ConversationID int64    `json:"conversation_id"`
	Title          string   `json:"title"`
	NodeCount      int      `json:"node_count"`
	Integrations   []string `json:"integrations,omitempty"`
	PromptLength   int      `json:"prompt_length"`
}

func (w WorkflowGenerated) GetType() EventType {
	return WorkflowGeneratedEvent
}

// ConversationUpdated carries the turns appended to a conversation.
// Created is true when the conversation was started by this exchange.
type ConversationUpdated struct {
	BaseEvent

	ConversationID int64                `json:"conversation_id"`
	WorkflowID     *int64               `json:"workflow_id,omitempty"`
	Created        bool                 `json:"created"`
	Messages       []models.ChatMessage `json:"messages"`
}

func (c ConversationUpdated) GetType() EventType {
	return ConversationUpdatedEvent
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
