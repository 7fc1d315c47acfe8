package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/flowsmith/pkg/persistence/memory"
	"github.com/dukex/flowsmith/pkg/templates"
)

// NewPersistence creates the in-memory store seeded with the built-in
// templates.
func NewPersistence(ctx context.Context, logger *slog.Logger) *memory.Persistence {
	store := memory.NewPersistence()

	defaults, err := templates.Defaults()
	if err != nil {
		panic(fmt.Errorf("failed to load default templates: %w", err))
	}

	if err := store.TemplateRepository().Seed(ctx, defaults); err != nil {
		panic(fmt.Errorf("failed to seed templates: %w", err))
	}

	logger.DebugContext(ctx, "persistence ready", "templates", len(defaults))

	return store
}
