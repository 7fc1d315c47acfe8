package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/flowsmith/pkg/classifier"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/log"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/urfave/cli/v3"
)

// GenerateCommand runs a single generation and prints the result as JSON.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"g"},
		Usage:     "Generate one workflow from a prompt and print it",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "conversation-id",
				Usage: "Existing conversation to append the exchange to",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			prompt := strings.Join(command.Args().Slice(), " ")
			if prompt == "" {
				return errors.New("a prompt is required")
			}

			cfg, err := configFromCommand(command)
			if err != nil {
				return err
			}

			logger := log.WithModule("generate")

			app, err := newApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}

			defer app.Close(ctx)

			if err := app.Subscribe(ctx); err != nil {
				return err
			}

			output, err := app.generation.Generate(ctx, services.GenerateInput{
				Prompt:         prompt,
				ConversationID: command.String("conversation-id"),
			})
			if err != nil {
				return describeFailure(err)
			}

			encoder := json.NewEncoder(command.Root().Writer)
			encoder.SetIndent("", "  ")

			return encoder.Encode(output)
		},
	}
}

// describeFailure appends the classifier's advice to a generation error.
func describeFailure(err error) error {
	raw := ""
	if genErr, ok := llm.AsGenerationError(err); ok {
		raw = genErr.RawResponse
	}

	analysis := classifier.Analyze(err, raw)

	return fmt.Errorf("%w\n%s\n- %s", err, analysis.UserFriendlyMessage,
		strings.Join(classifier.Suggestions(analysis), "\n- "))
}
