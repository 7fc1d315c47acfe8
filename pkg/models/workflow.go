// Package models defines the domain records for prompt-driven n8n workflow generation.
package models

import "time"

// Workflow is a generated artifact. It is immutable once created.
type Workflow struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"        validate:"required"`
	Description  string                `json:"description"`
	UserPrompt   string                `json:"userPrompt"   validate:"required"`
	N8nJSON      WorkflowConfiguration `json:"n8nJson"`
	NodeCount    int                   `json:"nodeCount"    validate:"gte=0"`
	Integrations []string              `json:"integrations"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// Clone returns a deep copy of the workflow record.
func (w *Workflow) Clone() *Workflow {
	out := *w
	out.N8nJSON = w.N8nJSON.Clone()
	out.Integrations = cloneStrings(w.Integrations)

	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}

	return append([]string(nil), in...)
}
