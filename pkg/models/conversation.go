package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation. Assistant turns that produced a
// workflow carry it in WorkflowData.
type ChatMessage struct {
	ID           string                 `json:"id"                     validate:"required"`
	Role         Role                   `json:"role"                   validate:"required,oneof=user assistant"`
	Content      string                 `json:"content"`
	Timestamp    time.Time              `json:"timestamp"`
	WorkflowData *WorkflowConfiguration `json:"workflowData,omitempty"`
}

// Conversation is the ordered turn history optionally linked to a workflow.
type Conversation struct {
	ID         int64         `json:"id"`
	Messages   []ChatMessage `json:"messages"             validate:"dive"`
	WorkflowID *int64        `json:"workflowId,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Clone returns a deep copy of the conversation record.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = CloneMessages(c.Messages)

	if c.WorkflowID != nil {
		id := *c.WorkflowID
		out.WorkflowID = &id
	}

	return &out
}

// CloneMessages deep-copies a message list, including embedded workflows.
func CloneMessages(in []ChatMessage) []ChatMessage {
	if in == nil {
		return nil
	}

	out := make([]ChatMessage, len(in))
	for i, msg := range in {
		if msg.WorkflowData != nil {
			data := msg.WorkflowData.Clone()
			msg.WorkflowData = &data
		}

		out[i] = msg
	}

	return out
}
