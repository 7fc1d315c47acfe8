package services

import (
	"context"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
)

// RecentWorkflows lists stored workflows newest first. A non-positive limit
// selects persistence.DefaultRecentLimit.
func (g *Generation) RecentWorkflows(ctx context.Context, limit int) ([]*models.Workflow, error) {
	if limit <= 0 {
		limit = persistence.DefaultRecentLimit
	}

	return g.persistence.WorkflowRepository().ListRecent(ctx, limit)
}

func (g *Generation) Workflow(ctx context.Context, id int64) (*models.Workflow, error) {
	if id <= 0 {
		return nil, newServiceError("Workflow", CodeInvalidArgument, "", ErrInvalidReference)
	}

	return g.persistence.WorkflowRepository().GetByID(ctx, id)
}

func (g *Generation) Conversation(ctx context.Context, id int64) (*models.Conversation, error) {
	if id <= 0 {
		return nil, newServiceError("Conversation", CodeInvalidArgument, "", ErrInvalidReference)
	}

	return g.conversations.Get(ctx, id)
}

// Templates lists the template library, filtered by category when one is given.
func (g *Generation) Templates(ctx context.Context, category string) ([]*models.Template, error) {
	if category == "" {
		return g.persistence.TemplateRepository().List(ctx)
	}

	return g.persistence.TemplateRepository().ListByCategory(ctx, category)
}

func (g *Generation) Template(ctx context.Context, id int64) (*models.Template, error) {
	if id <= 0 {
		return nil, newServiceError("Template", CodeInvalidArgument, "", ErrInvalidReference)
	}

	return g.persistence.TemplateRepository().GetByID(ctx, id)
}
