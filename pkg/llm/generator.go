package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/otelhelper"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultExplanation is used when the model omits the explanation.
const DefaultExplanation = "Workflow generated successfully"

// maxSchemaErrors caps how many schema violations are quoted in an error.
const maxSchemaErrors = 3

// FailureReason classifies a GenerationError.
type FailureReason string

const (
	ReasonUpstream         FailureReason = "upstream"
	ReasonEmptyResponse    FailureReason = "empty_response"
	ReasonInvalidJSON      FailureReason = "invalid_json"
	ReasonInvalidStructure FailureReason = "invalid_structure"
)

// ErrInvalidStructure marks model output that parsed but did not match the
// expected response shape.
var ErrInvalidStructure = errors.New("invalid workflow structure generated")

// GenerationError is returned for every generation failure. RawResponse holds
// the model text, if any, so callers can inspect what the model said.
type GenerationError struct {
	Reason      FailureReason
	Err         error
	RawResponse string
}

func (e *GenerationError) Error() string {
	return "failed to generate workflow: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// AsGenerationError extracts a GenerationError from an error chain.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}

	return nil, false
}

// GenerationResult is a successfully generated and shape-checked workflow.
type GenerationResult struct {
	Workflow     models.WorkflowConfiguration `json:"workflow"`
	Explanation  string                       `json:"explanation"`
	NodeCount    int                          `json:"nodeCount"`
	Integrations []string                     `json:"integrations"`
	Suggestions  []string                     `json:"suggestions"`
	Assumptions  []string                     `json:"assumptionsMade"`
	Pitfalls     []string                     `json:"potentialPitfalls"`
}

// generationEnvelope mirrors the JSON object the model is asked to return.
// Optional fields are pointers so absence can be told apart from zero values.
type generationEnvelope struct {
	Workflow     *models.WorkflowConfiguration `json:"workflow"`
	Explanation  *string                       `json:"explanation"`
	NodeCount    *float64                      `json:"nodeCount"`
	Integrations []string                      `json:"integrations"`
	Suggestions  []string                      `json:"suggestions"`
	Assumptions  []string                      `json:"assumptionsMade"`
	Pitfalls     []string                      `json:"potentialPitfalls"`
}

// Generator turns a natural-language request into a workflow configuration.
// It performs exactly one completion call and never retries.
type Generator struct {
	provider Provider
	schema   *gojsonschema.Schema
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewGenerator compiles the response schema and returns a Generator.
func NewGenerator(provider Provider, tracer trace.Tracer, logger *slog.Logger) (*Generator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(GenerationResponseSchema()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation schema: %w", err)
	}

	return &Generator{
		provider: provider,
		schema:   schema,
		tracer:   tracer,
		logger:   logger,
	}, nil
}

// Generate asks the model for a workflow and validates the response shape.
// Every error it returns is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, prompt string) (*GenerationResult, error) {
	ctx, span := otelhelper.StartSpan(ctx, g.tracer, "llm.generate",
		attribute.String(otelhelper.LLMPurposeKey, string(PurposeGenerate)),
		attribute.Int(otelhelper.PromptLengthKey, len(prompt)),
	)
	defer span.End()

	raw, err := g.provider.Complete(ctx, generationMessages(prompt), CompletionOptions{
		Purpose:      PurposeGenerate,
		Temperature:  generationTemperature,
		MaxTokens:    generationMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		reason := ReasonUpstream
		if errors.Is(err, ErrEmptyResponse) {
			reason = ReasonEmptyResponse
		}

		return nil, g.fail(span, &GenerationError{Reason: reason, Err: err})
	}

	result, genErr := g.parse(raw)
	if genErr != nil {
		return nil, g.fail(span, genErr)
	}

	otelhelper.SetOK(span, attribute.Int(otelhelper.NodeCountKey, result.NodeCount))

	return result, nil
}

func (g *Generator) fail(span trace.Span, err *GenerationError) error {
	otelhelper.SetError(span, err, attribute.String(otelhelper.FailureReasonKey, string(err.Reason)))
	g.logger.Error("workflow generation failed", "reason", err.Reason, "error", err.Err)

	return err
}

func (g *Generator) parse(raw string) (*GenerationResult, *GenerationError) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, &GenerationError{Reason: ReasonEmptyResponse, Err: ErrEmptyResponse, RawResponse: raw}
	}

	var document any
	if err := json.Unmarshal([]byte(text), &document); err != nil {
		return nil, &GenerationError{
			Reason:      ReasonInvalidJSON,
			Err:         fmt.Errorf("model response is not valid JSON: %w", err),
			RawResponse: raw,
		}
	}

	validation, err := g.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, &GenerationError{Reason: ReasonInvalidStructure, Err: err, RawResponse: raw}
	}

	if !validation.Valid() {
		return nil, &GenerationError{
			Reason:      ReasonInvalidStructure,
			Err:         fmt.Errorf("%w: %s", ErrInvalidStructure, describeSchemaErrors(validation.Errors())),
			RawResponse: raw,
		}
	}

	var envelope generationEnvelope

	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, &GenerationError{
			Reason:      ReasonInvalidStructure,
			Err:         fmt.Errorf("%w: %w", ErrInvalidStructure, err),
			RawResponse: raw,
		}
	}

	workflow := *envelope.Workflow

	result := &GenerationResult{
		Workflow:     workflow,
		Explanation:  DefaultExplanation,
		NodeCount:    len(workflow.Nodes),
		Integrations: nonNil(envelope.Integrations),
		Suggestions:  nonNil(envelope.Suggestions),
		Assumptions:  nonNil(envelope.Assumptions),
		Pitfalls:     nonNil(envelope.Pitfalls),
	}

	if envelope.Explanation != nil && *envelope.Explanation != "" {
		result.Explanation = *envelope.Explanation
	}

	if envelope.NodeCount != nil && *envelope.NodeCount > 0 {
		result.NodeCount = int(*envelope.NodeCount)
	}

	if result.Workflow.Connections == nil {
		result.Workflow.Connections = map[string]models.NodeConnections{}
	}

	if result.Workflow.Settings == nil {
		result.Workflow.Settings = map[string]any{}
	}

	return result, nil
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, maxSchemaErrors)

	for i, e := range errs {
		if i == maxSchemaErrors {
			parts = append(parts, fmt.Sprintf("and %d more", len(errs)-maxSchemaErrors))

			break
		}

		parts = append(parts, e.String())
	}

	return strings.Join(parts, "; ")
}

// stripCodeFence removes a surrounding ``` or ```json fence some models add
// even when asked for bare JSON.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if newline := strings.IndexByte(text, '\n'); newline >= 0 {
		text = text[newline+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}

	return in
}
