package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/flowsmith/pkg/cmd"
	"github.com/dukex/flowsmith/pkg/config"
	"github.com/dukex/flowsmith/pkg/eventbus"
	"github.com/dukex/flowsmith/pkg/events"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/metrics"
	"github.com/dukex/flowsmith/pkg/otelhelper"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/dukex/flowsmith/pkg/transcript"
)

// application holds the components shared by the server and the generate
// subcommand.
type application struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	metrics     *metrics.Collector
	transcripts *transcript.Writer
	generation  *services.Generation
	shutdown    otelhelper.ShutdownFunc
}

func newApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		logger:  logger,
		metrics: metrics.NewCollector(config.ServiceName),
	}

	tracer := otelhelper.NoopTracer(config.ServiceName)

	if cfg.Tracing {
		t, shutdown, err := otelhelper.NewTracer(ctx, config.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}

		tracer = t
		app.shutdown = shutdown
	}

	if cfg.TranscriptDir != "" {
		writer, err := transcript.NewWriter(cfg.TranscriptDir, logger.With("component", "transcript"))
		if err != nil {
			return nil, err
		}

		app.transcripts = writer
	}

	provider, err := cmd.NewProvider(cfg, app.metrics, logger.With("component", "llm"))
	if err != nil {
		return nil, err
	}

	generator, err := llm.NewGenerator(provider, tracer, logger.With("component", "generator"))
	if err != nil {
		return nil, err
	}

	reviewer := llm.NewReviewer(provider, tracer, logger.With("component", "reviewer"))

	app.persistence = cmd.NewPersistence(ctx, logger)
	app.eventBus = cmd.NewEventBus(logger.With("component", "eventbus"))

	app.generation = services.NewGeneration(generator, reviewer, app.persistence, logger.With("component", "generation"),
		services.WithPublisher(app.eventBus),
		services.WithTracer(tracer),
	)

	return app, nil
}

// Subscribe registers the event consumers and starts dispatching.
func (a *application) Subscribe(ctx context.Context) error {
	err := a.eventBus.Handle(events.WorkflowGeneratedEvent, a.metrics.HandleWorkflowGenerated)
	if err != nil {
		return err
	}

	if a.transcripts != nil {
		err = a.eventBus.Handle(events.ConversationUpdatedEvent, a.transcripts.HandleConversationUpdated)
		if err != nil {
			return err
		}
	}

	return a.eventBus.Subscribe(ctx)
}

func (a *application) Close(ctx context.Context) {
	if err := a.eventBus.Close(); err != nil {
		a.logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
	}

	if err := a.persistence.Close(ctx); err != nil {
		a.logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
	}

	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
		}
	}
}
