package web

import (
	"errors"
	"log/slog"

	"github.com/dukex/flowsmith/pkg/classifier"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

// Response messages.
const (
	msgPromptTooShort       = "Prompt must be at least 10 characters"
	msgInvalidBody          = "Invalid request body"
	msgGenerationFailed     = "Failed to generate workflow"
	msgTemplatesFailed      = "Failed to fetch templates"
	msgTemplateFailed       = "Failed to fetch template"
	msgInvalidTemplateID    = "Invalid template ID"
	msgTemplateNotFound     = "Template not found"
	msgRecentFailed         = "Failed to fetch recent workflows"
	msgInvalidLimit         = "Invalid limit"
	msgInvalidWorkflowID    = "Invalid workflow ID"
	msgWorkflowNotFound     = "Workflow not found"
	msgWorkflowFailed       = "Failed to fetch workflow"
	msgInvalidConversation  = "Invalid conversation ID"
	msgConversationNotFound = "Conversation not found"
	msgConversationFailed   = "Failed to fetch conversation"
	msgWorkflowRequired     = "Workflow data is required"
	msgNodeTypeNotFound     = "Node type not found"
)

func success(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func failure(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}

// generationFailure reports a failed generation with the classifier's view
// of what went wrong.
func generationFailure(c fiber.Ctx, err error) error {
	raw := ""
	if genErr, ok := llm.AsGenerationError(err); ok {
		raw = genErr.RawResponse
	}

	analysis := classifier.Analyze(err, raw)

	message := err.Error()
	if message == "" {
		message = msgGenerationFailed
	}

	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success:  false,
		Error:    message,
		Analysis: &analysis,
	})
}

// ErrorHandler renders errors that escape the handlers, such as unknown
// routes or oversized bodies, as problem documents.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		problem := problems.NewStatusProblem(status).WithInstance(c.Path())

		switch {
		case status == fiber.StatusNotFound:
			problem = problem.WithType("not_found").WithDetail(err.Error())
		case status < fiber.StatusInternalServerError:
			problem = problem.WithType("request_error").WithDetail(err.Error())
		default:
			logger.Error("unhandled request error", "path", c.Path(), "method", c.Method(), "error", err)
			problem = problem.WithType("internal_error")
		}

		return c.Status(status).JSON(problem, problems.ProblemMediaType)
	}
}
