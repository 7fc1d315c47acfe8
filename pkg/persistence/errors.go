package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence errors that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrConversationNotFound indicates a conversation was not found by the given identifier.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrTemplateNotFound indicates a template was not found by the given identifier.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNilRecord indicates a nil record was passed to a write operation.
	ErrNilRecord = errors.New("record cannot be nil")

	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("persistence is closed")
)

// RecordError wraps repository errors with the operation and record context.
type RecordError struct {
	Op   string // Operation being performed (e.g., "GetByID", "Append")
	Kind string // Record kind: workflow, conversation or template
	ID   int64  // Record ID if applicable
	Err  error  // Underlying error
}

func (e *RecordError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s operation failed for %s: %v", e.Op, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s operation failed for %s %d: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is implements error comparison against the wrapped sentinel.
func (e *RecordError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewWorkflowError creates a workflow error with context.
func NewWorkflowError(op string, id int64, err error) *RecordError {
	return &RecordError{Op: op, Kind: "workflow", ID: id, Err: err}
}

// NewConversationError creates a conversation error with context.
func NewConversationError(op string, id int64, err error) *RecordError {
	return &RecordError{Op: op, Kind: "conversation", ID: id, Err: err}
}

// NewTemplateError creates a template error with context.
func NewTemplateError(op string, id int64, err error) *RecordError {
	return &RecordError{Op: op, Kind: "template", ID: id, Err: err}
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsConversationNotFound checks if an error indicates a conversation was not found.
func IsConversationNotFound(err error) bool {
	return errors.Is(err, ErrConversationNotFound)
}

// IsTemplateNotFound checks if an error indicates a template was not found.
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// IsNotFound checks if an error indicates any record was not found.
func IsNotFound(err error) bool {
	return IsWorkflowNotFound(err) || IsConversationNotFound(err) || IsTemplateNotFound(err)
}
