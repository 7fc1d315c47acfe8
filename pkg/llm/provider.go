// Package llm talks to the text-completion model: it builds the generation and
// review prompts, calls the provider and checks the shape of what comes back.
package llm

import (
	"context"
	"errors"
)

// Role is the author of a prompt message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Purpose labels a completion call for metrics and tracing.
type Purpose string

const (
	PurposeGenerate Purpose = "generate"
	PurposeValidate Purpose = "validate"
)

// ErrEmptyResponse is returned when the model produced no choices.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Message is one prompt message sent to the model.
type Message struct {
	Role    Role
	Content string
}

// CompletionOptions tunes a single completion call.
type CompletionOptions struct {
	Purpose      Purpose
	Temperature  float32
	MaxTokens    int
	JSONResponse bool
}

// Provider performs a chat completion and returns the raw text of the first
// choice.
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}
