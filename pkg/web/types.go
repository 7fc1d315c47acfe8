// Package web provides the HTTP handlers of the generator API.
package web

import (
	"github.com/dukex/flowsmith/pkg/classifier"
	"github.com/dukex/flowsmith/pkg/models"
)

// Envelope wraps every API response. Analysis is only set on failed
// generation requests.
type Envelope struct {
	Success  bool                 `json:"success"`
	Data     any                  `json:"data,omitempty"`
	Error    string               `json:"error,omitempty"`
	Analysis *classifier.Analysis `json:"analysis,omitempty"`
}

// GenerateWorkflowRequest represents the request body for generating a workflow.
type GenerateWorkflowRequest struct {
	Prompt         string `json:"prompt"                   validate:"required,min=10"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ValidateWorkflowRequest represents the request body for reviewing a workflow.
type ValidateWorkflowRequest struct {
	Workflow *models.WorkflowConfiguration `json:"workflow"`
}
