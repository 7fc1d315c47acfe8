package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/flowsmith/pkg/channels/gochannel"
	"github.com/dukex/flowsmith/pkg/eventbus"
)

// NewEventBus creates the in-process event bus.
func NewEventBus(logger *slog.Logger) *eventbus.WatermillEventBus {
	pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
	if err != nil {
		panic(fmt.Errorf("failed to create gochannel pub/sub: %w", err))
	}

	return eventbus.NewWatermillEventBus(pub, sub, logger)
}
