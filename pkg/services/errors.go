// Package services holds the orchestration the HTTP and CLI surfaces call into.
package services

import (
	"errors"
	"fmt"
)

// MinPromptLength is the shortest request, in characters, worth sending to the model.
const MinPromptLength = 10

// Validation errors, surfaced as 400 responses.
var (
	ErrPromptTooShort   = errors.New("prompt must be at least 10 characters")
	ErrInvalidMessage   = errors.New("invalid chat message")
	ErrInvalidReference = errors.New("invalid identifier")
	ErrInvalidWorkflow  = errors.New("invalid workflow record")
)

const (
	CodeInvalidPrompt   = "invalid_prompt"
	CodeInvalidMessage  = "invalid_message"
	CodePersistence     = "persistence_failure"
	CodeInvalidArgument = "invalid_argument"
	CodeInvalidWorkflow = "invalid_workflow"
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPromptTooShort) ||
		errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrInvalidWorkflow)
}

func newServiceError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
