package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/otelhelper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReviewFailedMessage is the only error reported when the review itself fails.
const ReviewFailedMessage = "Failed to validate workflow"

// ValidationReport is the advisory critique of a workflow configuration.
type ValidationReport struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// FailedReport is returned whenever the review call or its decoding fails.
func FailedReport() ValidationReport {
	return ValidationReport{
		Valid:       false,
		Errors:      []string{ReviewFailedMessage},
		Suggestions: []string{},
	}
}

type reviewEnvelope struct {
	Valid       *bool    `json:"valid"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// Reviewer asks the model for a second opinion on a workflow. Review never
// fails: problems with the review call collapse into FailedReport.
type Reviewer struct {
	provider Provider
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewReviewer creates a Reviewer.
func NewReviewer(provider Provider, tracer trace.Tracer, logger *slog.Logger) *Reviewer {
	return &Reviewer{provider: provider, tracer: tracer, logger: logger}
}

// Review critiques workflow. Connection names that do not resolve to a node
// are reported alongside the model's findings and mark the report invalid.
func (r *Reviewer) Review(ctx context.Context, workflow models.WorkflowConfiguration) ValidationReport {
	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "llm.review",
		attribute.String(otelhelper.LLMPurposeKey, string(PurposeValidate)),
		attribute.Int(otelhelper.NodeCountKey, len(workflow.Nodes)),
	)
	defer span.End()

	report, err := r.review(ctx, workflow)
	if err != nil {
		otelhelper.SetError(span, err)
		r.logger.Warn("workflow review failed, returning default report", "error", err)

		return FailedReport()
	}

	for _, issue := range workflow.ConnectionIssues() {
		report.Valid = false
		report.Errors = append(report.Errors, issue.String())
	}

	otelhelper.SetOK(span, attribute.Bool("flowsmith.review.valid", report.Valid))

	return report
}

func (r *Reviewer) review(ctx context.Context, workflow models.WorkflowConfiguration) (ValidationReport, error) {
	messages, err := validationMessages(workflow)
	if err != nil {
		return ValidationReport{}, err
	}

	raw, err := r.provider.Complete(ctx, messages, CompletionOptions{
		Purpose:      PurposeValidate,
		Temperature:  validationTemperature,
		MaxTokens:    validationMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		return ValidationReport{}, err
	}

	text := stripCodeFence(raw)
	if text == "" {
		return ValidationReport{}, ErrEmptyResponse
	}

	var envelope reviewEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return ValidationReport{}, fmt.Errorf("failed to decode review: %w", err)
	}

	report := ValidationReport{
		Errors:      nonNil(envelope.Errors),
		Suggestions: nonNil(envelope.Suggestions),
	}

	if envelope.Valid != nil {
		report.Valid = *envelope.Valid
	}

	return report, nil
}
