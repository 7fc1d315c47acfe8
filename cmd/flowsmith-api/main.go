package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dukex/flowsmith/pkg/config"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/log"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cmd := &cli.Command{
		Name:                  "flowsmith-api",
		Usage:                 "Generate n8n workflows from natural language",
		EnableShellCompletion: true,
		Flags:                 flags(),
		Commands: []*cli.Command{
			GenerateCommand(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg, err := configFromCommand(command)
			if err != nil {
				return err
			}

			logger := log.WithModule("api")
			logger.InfoContext(ctx, "Initializing flowsmith API", "port", cfg.Port, "model", cfg.OpenAIModel)

			app, err := newApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}

			defer app.Close(ctx)

			if err := app.Subscribe(ctx); err != nil {
				return err
			}

			api := NewAPI(logger, app.generation, app.metrics)

			err = api.Start(cfg.Port)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return err
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		slog.Error("flowsmith-api exited with error", "error", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to run the API server on",
			Value:   config.DefaultPort,
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   config.DefaultLogLevel,
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format (text, json)",
			Value:   config.DefaultLogFormat,
			Sources: cli.EnvVars("LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "API key for the OpenAI chat completion API",
			Sources: cli.EnvVars("OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:    "openai-model",
			Usage:   "Model used for generation and review",
			Value:   llm.DefaultModel,
			Sources: cli.EnvVars("OPENAI_MODEL"),
		},
		&cli.StringFlag{
			Name:    "openai-base-url",
			Usage:   "Alternative base URL for an OpenAI compatible API",
			Sources: cli.EnvVars("OPENAI_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:    "llm-timeout",
			Usage:   "Timeout for each model call, 0 disables it",
			Sources: cli.EnvVars("LLM_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:    "circuit-breaker",
			Usage:   "Fail fast while the model API keeps failing",
			Sources: cli.EnvVars("LLM_CIRCUIT_BREAKER"),
		},
		&cli.StringFlag{
			Name:    "transcript-dir",
			Usage:   "Directory for NDJSON conversation transcripts, empty disables them",
			Sources: cli.EnvVars("TRANSCRIPT_DIR"),
		},
		&cli.BoolFlag{
			Name:    "tracing",
			Usage:   "Export traces over OTLP/HTTP",
			Sources: cli.EnvVars("OTEL_TRACING_ENABLED"),
		},
	}
}

// configFromCommand reads the flags, sets up logging and validates the result.
func configFromCommand(command *cli.Command) (config.Config, error) {
	cfg := config.Config{
		Port:           command.Int("port"),
		LogLevel:       command.String("log-level"),
		LogFormat:      command.String("log-format"),
		OpenAIAPIKey:   command.String("openai-api-key"),
		OpenAIModel:    command.String("openai-model"),
		OpenAIBaseURL:  command.String("openai-base-url"),
		LLMTimeout:     command.Duration("llm-timeout"),
		CircuitBreaker: command.Bool("circuit-breaker"),
		TranscriptDir:  command.String("transcript-dir"),
		Tracing:        command.Bool("tracing"),
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	log.Setup(cfg.LogLevel, cfg.LogFormat)

	return cfg, nil
}
