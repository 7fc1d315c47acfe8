package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/flowsmith/pkg/channels/gochannel"
	"github.com/dukex/flowsmith/pkg/eventbus"
	"github.com/dukex/flowsmith/pkg/events"
	"github.com/dukex/flowsmith/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *eventbus.WatermillEventBus {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub, logger)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_DeliversTypedEvents(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)

	var (
		mu        sync.Mutex
		generated []*events.WorkflowGenerated
		updated   []*events.ConversationUpdated
	)

	require.NoError(t, bus.Handle(events.WorkflowGeneratedEvent, func(_ context.Context, event any) error {
		mu.Lock()
		defer mu.Unlock()

		generated = append(generated, event.(*events.WorkflowGenerated))

		return nil
	}))
	require.NoError(t, bus.Handle(events.ConversationUpdatedEvent, func(_ context.Context, event any) error {
		mu.Lock()
		defer mu.Unlock()

		updated = append(updated, event.(*events.ConversationUpdated))

		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	require.NoError(t, bus.Publish(ctx, "1", events.WorkflowGenerated{
		BaseEvent:  events.NewBaseEvent(events.WorkflowGeneratedEvent),
		WorkflowID: 1,
		Title:      "Daily Report Automation",
		NodeCount:  2,
	}))
	require.NoError(t, bus.Publish(ctx, "1", events.ConversationUpdated{
		BaseEvent:      events.NewBaseEvent(events.ConversationUpdatedEvent),
		ConversationID: 1,
		Created:        true,
		Messages:       []models.ChatMessage{{ID: "msg_1_user", Role: models.RoleUser}},
	}))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, generated, 1)
	assert.Equal(t, "Daily Report Automation", generated[0].Title)
	require.Len(t, updated, 1)
	assert.True(t, updated[0].Created)
	assert.Len(t, updated[0].Messages, 1)
}

func TestWatermillEventBus_HandlerErrorDoesNotBlock(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)

	calls := 0

	require.NoError(t, bus.Handle(events.WorkflowGeneratedEvent, func(context.Context, any) error {
		calls++

		return errors.New("consumer down")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	for range 2 {
		require.NoError(t, bus.Publish(ctx, "1", events.WorkflowGenerated{
			BaseEvent: events.NewBaseEvent(events.WorkflowGeneratedEvent),
		}))
	}

	assert.Equal(t, 2, calls)
}

func TestWatermillEventBus_RejectsDuplicateHandler(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)
	noop := func(context.Context, any) error { return nil }

	require.NoError(t, bus.Handle(events.WorkflowGeneratedEvent, noop))
	assert.Error(t, bus.Handle(events.WorkflowGeneratedEvent, noop))
}
