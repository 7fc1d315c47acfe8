// Package transcript appends conversation turns to per-conversation NDJSON
// files so exchanges survive a restart for offline review.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dukex/flowsmith/pkg/events"
	"github.com/dukex/flowsmith/pkg/models"
)

// Entry is one line of a transcript file.
type Entry struct {
	ConversationID int64              `json:"conversation_id"`
	WorkflowID     *int64             `json:"workflow_id,omitempty"`
	RecordedAt     time.Time          `json:"recorded_at"`
	Message        models.ChatMessage `json:"message"`
}

// Writer appends ConversationUpdated messages under dir.
type Writer struct {
	dir    string
	logger *slog.Logger

	mu sync.Mutex
}

// NewWriter creates dir if needed.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory %s: %w", dir, err)
	}

	return &Writer{dir: dir, logger: logger}, nil
}

// Path returns the transcript file of a conversation.
func (w *Writer) Path(conversationID int64) string {
	return filepath.Join(w.dir, "conversation-"+strconv.FormatInt(conversationID, 10)+".ndjson")
}

// HandleConversationUpdated is an event bus handler for ConversationUpdated.
func (w *Writer) HandleConversationUpdated(_ context.Context, event any) error {
	updated, ok := event.(*events.ConversationUpdated)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	return w.Append(updated.ConversationID, updated.WorkflowID, updated.Messages)
}

// Append writes one line per message.
func (w *Writer) Append(conversationID int64, workflowID *int64, messages []models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := w.Path(conversationID)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	recordedAt := time.Now().UTC()

	for _, message := range messages {
		if err := encoder.Encode(Entry{
			ConversationID: conversationID,
			WorkflowID:     workflowID,
			RecordedAt:     recordedAt,
			Message:        message,
		}); err != nil {
			return fmt.Errorf("failed to write transcript %s: %w", path, err)
		}
	}

	w.logger.Debug("transcript updated", "conversation_id", conversationID, "messages", len(messages))

	return nil
}
