package web

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// GenerationService is the part of services.Generation the handlers use.
type GenerationService interface {
	Generate(ctx context.Context, input services.GenerateInput) (*services.GenerateOutput, error)
	Validate(ctx context.Context, workflow models.WorkflowConfiguration) llm.ValidationReport
	RecentWorkflows(ctx context.Context, limit int) ([]*models.Workflow, error)
	Workflow(ctx context.Context, id int64) (*models.Workflow, error)
	Conversation(ctx context.Context, id int64) (*models.Conversation, error)
	Templates(ctx context.Context, category string) ([]*models.Template, error)
	Template(ctx context.Context, id int64) (*models.Template, error)
}

// NodeCatalog serves node descriptors.
type NodeCatalog interface {
	All() []models.NodeDescriptor
	ByType(nodeType string) (models.NodeDescriptor, bool)
	ByCategory(category string) []models.NodeDescriptor
	Search(query string) []models.NodeDescriptor
}

type APIHandlers struct {
	generation GenerationService
	catalog    NodeCatalog
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewAPIHandlers(
	generation GenerationService,
	catalog NodeCatalog,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		generation: generation,
		catalog:    catalog,
		validator:  validator,
		logger:     logger,
	}
}

func (h *APIHandlers) GenerateWorkflow(c fiber.Ctx) error {
	var req GenerateWorkflowRequest

	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return failure(c, fiber.StatusBadRequest, msgInvalidBody)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return failure(c, fiber.StatusBadRequest, msgPromptTooShort)
	}

	output, err := h.generation.Generate(c.Context(), services.GenerateInput{
		Prompt:         req.Prompt,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		if errors.Is(err, services.ErrPromptTooShort) {
			return failure(c, fiber.StatusBadRequest, msgPromptTooShort)
		}

		h.logger.Warn("generate workflow failed", "error", err)

		return generationFailure(c, err)
	}

	return success(c, output)
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	templates, err := h.generation.Templates(c.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("fetch templates failed", "error", err)

		return failure(c, fiber.StatusInternalServerError, msgTemplatesFailed)
	}

	return success(c, templates)
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return failure(c, fiber.StatusBadRequest, msgInvalidTemplateID)
	}

	template, err := h.generation.Template(c.Context(), id)
	if err != nil {
		if persistence.IsTemplateNotFound(err) {
			return failure(c, fiber.StatusNotFound, msgTemplateNotFound)
		}

		h.logger.Error("fetch template failed", "template_id", id, "error", err)

		return failure(c, fiber.StatusInternalServerError, msgTemplateFailed)
	}

	return success(c, template)
}

func (h *APIHandlers) GetRecentWorkflows(c fiber.Ctx) error {
	limit := persistence.DefaultRecentLimit

	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return failure(c, fiber.StatusBadRequest, msgInvalidLimit)
		}

		limit = parsed
	}

	workflows, err := h.generation.RecentWorkflows(c.Context(), limit)
	if err != nil {
		h.logger.Error("fetch recent workflows failed", "error", err)

		return failure(c, fiber.StatusInternalServerError, msgRecentFailed)
	}

	return success(c, workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return failure(c, fiber.StatusBadRequest, msgInvalidWorkflowID)
	}

	workflow, err := h.generation.Workflow(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return failure(c, fiber.StatusNotFound, msgWorkflowNotFound)
		}

		h.logger.Error("fetch workflow failed", "workflow_id", id, "error", err)

		return failure(c, fiber.StatusInternalServerError, msgWorkflowFailed)
	}

	return success(c, workflow)
}

func (h *APIHandlers) GetConversation(c fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return failure(c, fiber.StatusBadRequest, msgInvalidConversation)
	}

	conversation, err := h.generation.Conversation(c.Context(), id)
	if err != nil {
		if persistence.IsConversationNotFound(err) {
			return failure(c, fiber.StatusNotFound, msgConversationNotFound)
		}

		h.logger.Error("fetch conversation failed", "conversation_id", id, "error", err)

		return failure(c, fiber.StatusInternalServerError, msgConversationFailed)
	}

	return success(c, conversation)
}

// ValidateWorkflow reviews a client-supplied workflow. The review is advisory
// and never fails once a workflow is present.
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req ValidateWorkflowRequest

	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return failure(c, fiber.StatusBadRequest, msgInvalidBody)
		}
	}

	if req.Workflow == nil {
		return failure(c, fiber.StatusBadRequest, msgWorkflowRequired)
	}

	return success(c, h.generation.Validate(c.Context(), *req.Workflow))
}

// GetNodes lists node descriptors. category wins over search when both are set.
func (h *APIHandlers) GetNodes(c fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		return success(c, h.catalog.ByCategory(category))
	}

	if search := c.Query("search"); search != "" {
		return success(c, h.catalog.Search(search))
	}

	return success(c, h.catalog.All())
}

func (h *APIHandlers) GetNode(c fiber.Ctx) error {
	descriptor, ok := h.catalog.ByType(c.Params("type"))
	if !ok {
		return failure(c, fiber.StatusNotFound, msgNodeTypeNotFound)
	}

	return success(c, descriptor)
}

// parseID accepts positive base-10 integers only.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
