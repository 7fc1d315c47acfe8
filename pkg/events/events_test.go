package events

import (
	"encoding/json"
	"testing"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowGenerated_GetType(t *testing.T) {
	event := WorkflowGenerated{}
	assert.Equal(t, WorkflowGeneratedEvent, event.GetType())
}

func TestWorkflowGenerated_JSONSerialization(t *testing.T) {
	original := &WorkflowGenerated{
		BaseEvent:      NewBaseEvent(WorkflowGeneratedEvent),
		WorkflowID:     4,
		ConversationID: 2,
		Title:          "Receive Gmail Emails Automation",
		NodeCount:      3,
		Integrations:   []string{"Gmail", "Slack"},
		PromptLength:   42,
	}

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"type":"workflow.generated"`)
	assert.Contains(t, string(jsonData), `"workflow_id":4`)

	var deserialized WorkflowGenerated

	require.NoError(t, json.Unmarshal(jsonData, &deserialized))
	assert.Equal(t, original.ID, deserialized.ID)
	assert.Equal(t, original.Title, deserialized.Title)
	assert.Equal(t, original.Integrations, deserialized.Integrations)
	assert.True(t, original.Timestamp.Equal(deserialized.Timestamp))
}

func TestConversationUpdated_CarriesMessages(t *testing.T) {
	workflowID := int64(9)
	original := &ConversationUpdated{
		BaseEvent:      NewBaseEvent(ConversationUpdatedEvent),
		ConversationID: 3,
		WorkflowID:     &workflowID,
		Created:        true,
		Messages: []models.ChatMessage{
			{ID: "msg_1_user", Role: models.RoleUser, Content: "send me a digest"},
			{ID: "msg_1_assistant", Role: models.RoleAssistant, Content: "Workflow generated successfully"},
		},
	}

	assert.Equal(t, ConversationUpdatedEvent, original.GetType())

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)

	var deserialized ConversationUpdated

	require.NoError(t, json.Unmarshal(jsonData, &deserialized))
	assert.Equal(t, int64(3), deserialized.ConversationID)
	require.NotNil(t, deserialized.WorkflowID)
	assert.Equal(t, workflowID, *deserialized.WorkflowID)
	require.Len(t, deserialized.Messages, 2)
	assert.Equal(t, models.RoleAssistant, deserialized.Messages[1].Role)
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	first := NewBaseEvent(WorkflowGeneratedEvent)
	second := NewBaseEvent(WorkflowGeneratedEvent)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, WorkflowGeneratedEvent, first.Type)
	assert.False(t, first.Timestamp.IsZero())
}
