package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dukex/flowsmith/pkg/eventbus"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/otelhelper"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WorkflowGenerator produces a workflow from a prompt.
type WorkflowGenerator interface {
	Generate(ctx context.Context, prompt string) (*llm.GenerationResult, error)
}

// WorkflowReviewer critiques a generated workflow. It must not fail.
type WorkflowReviewer interface {
	Review(ctx context.Context, workflow models.WorkflowConfiguration) llm.ValidationReport
}

// GenerateInput is a single generation request. ConversationID is optional.
type GenerateInput struct {
	Prompt         string
	ConversationID string
}

// GenerateOutput is returned for a successful generation.
type GenerateOutput struct {
	Workflow       models.WorkflowConfiguration `json:"workflow"`
	Explanation    string                       `json:"explanation"`
	Suggestions    []string                     `json:"suggestions"`
	ConversationID string                       `json:"conversationId"`
	WorkflowID     int64                        `json:"workflowId"`
}

type GenerationOption func(*Generation)

// WithPublisher publishes WorkflowGenerated and ConversationUpdated events
// after each successful generation.
func WithPublisher(publisher eventbus.EventPublisher) GenerationOption {
	return func(g *Generation) {
		g.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) GenerationOption {
	return func(g *Generation) {
		g.tracer = tracer
	}
}

func WithClock(now func() time.Time) GenerationOption {
	return func(g *Generation) {
		g.now = now
	}
}

// Generation turns prompts into stored workflows threaded into conversations.
type Generation struct {
	generator     WorkflowGenerator
	reviewer      WorkflowReviewer
	persistence   persistence.Persistence
	conversations *Conversations
	publisher     eventbus.EventPublisher
	validate      *validator.Validate
	tracer        trace.Tracer
	logger        *slog.Logger
	now           func() time.Time
}

func NewGeneration(
	generator WorkflowGenerator,
	reviewer WorkflowReviewer,
	persistence persistence.Persistence,
	logger *slog.Logger,
	opts ...GenerationOption,
) *Generation {
	g := &Generation{
		generator:     generator,
		reviewer:      reviewer,
		persistence:   persistence,
		conversations: NewConversations(persistence.ConversationRepository()),
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		tracer:        otelhelper.NoopTracer("flowsmith.services"),
		logger:        logger,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate runs one generation. Nothing is stored when the model call fails;
// the *llm.GenerationError is returned as is. The review is advisory and only
// contributes suggestions.
func (g *Generation) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	ctx, span := otelhelper.StartSpan(ctx, g.tracer, "services.generate",
		attribute.Int(otelhelper.PromptLengthKey, utf8.RuneCountInString(input.Prompt)),
	)
	defer span.End()

	prompt := input.Prompt
	if utf8.RuneCountInString(prompt) < MinPromptLength {
		err := newServiceError("Generate", CodeInvalidPrompt, "Prompt must be at least 10 characters", ErrPromptTooShort)
		otelhelper.SetError(span, err)

		return nil, err
	}

	result, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	report := g.reviewer.Review(ctx, result.Workflow)

	record := &models.Workflow{
		Title:        DeriveTitle(prompt),
		Description:  result.Explanation,
		UserPrompt:   prompt,
		N8nJSON:      result.Workflow,
		NodeCount:    result.NodeCount,
		Integrations: result.Integrations,
	}

	if err := g.validate.Struct(record); err != nil {
		err = newServiceError("Generate", CodeInvalidWorkflow, "", fmt.Errorf("%w: %w", ErrInvalidWorkflow, err))
		otelhelper.SetError(span, err)

		return nil, err
	}

	workflow, err := g.persistence.WorkflowRepository().Create(ctx, record)
	if err != nil {
		err = newServiceError("Generate", CodePersistence, "", fmt.Errorf("failed to store workflow: %w", err))
		otelhelper.SetError(span, err)

		return nil, err
	}

	messages := g.exchange(prompt, result)

	conversation, created, err := g.conversations.Thread(ctx, input.ConversationID, messages, &workflow.ID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	suggestions := make([]string, 0, len(result.Suggestions)+len(report.Suggestions))
	suggestions = append(suggestions, result.Suggestions...)
	suggestions = append(suggestions, report.Suggestions...)

	g.publishGenerated(ctx, workflow, conversation.ID, utf8.RuneCountInString(prompt))
	g.publishConversation(ctx, conversation, created, messages)

	otelhelper.SetOK(span,
		attribute.Int64(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.Int64(otelhelper.ConversationIDKey, conversation.ID),
		attribute.Int(otelhelper.NodeCountKey, workflow.NodeCount),
	)

	g.logger.Info("workflow generated",
		"workflow_id", workflow.ID,
		"conversation_id", conversation.ID,
		"new_conversation", created,
		"node_count", workflow.NodeCount,
		"review_valid", report.Valid,
	)

	return &GenerateOutput{
		Workflow:       result.Workflow,
		Explanation:    result.Explanation,
		Suggestions:    suggestions,
		ConversationID: strconv.FormatInt(conversation.ID, 10),
		WorkflowID:     workflow.ID,
	}, nil
}

// exchange builds the user and assistant turns for one generation.
func (g *Generation) exchange(prompt string, result *llm.GenerationResult) []models.ChatMessage {
	now := g.now().UTC()
	millis := now.UnixMilli()
	configuration := result.Workflow.Clone()

	return []models.ChatMessage{
		{
			ID:        messageID(millis, models.RoleUser),
			Role:      models.RoleUser,
			Content:   prompt,
			Timestamp: now,
		},
		{
			ID:           messageID(millis, models.RoleAssistant),
			Role:         models.RoleAssistant,
			Content:      result.Explanation,
			Timestamp:    now,
			WorkflowData: &configuration,
		},
	}
}

func messageID(millis int64, role models.Role) string {
	return fmt.Sprintf("msg_%d_%s_%s", millis, role, uuid.NewString()[:8])
}

// Validate asks the reviewer for an advisory report on workflow.
func (g *Generation) Validate(ctx context.Context, workflow models.WorkflowConfiguration) llm.ValidationReport {
	return g.reviewer.Review(ctx, workflow)
}

// HealthCheck checks the health of the persistence layer.
func (g *Generation) HealthCheck(ctx context.Context) (string, bool) {
	if g.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := g.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}
