package services_test

import (
	"testing"

	"github.com/dukex/flowsmith/pkg/mocks"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/dukex/flowsmith/pkg/templates"
	"github.com/dukex/flowsmith/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_RecentWorkflows(t *testing.T) {
	t.Parallel()

	service, store := newTestGeneration(t, &mocks.MockProvider{})

	for range 12 {
		_, err := store.WorkflowRepository().Create(t.Context(), testutil.CreateTestWorkflow())
		require.NoError(t, err)
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{limit: 0, expected: persistence.DefaultRecentLimit},
		{limit: -5, expected: persistence.DefaultRecentLimit},
		{limit: 3, expected: 3},
		{limit: 50, expected: 12},
	}

	for _, tt := range tests {
		workflows, err := service.RecentWorkflows(t.Context(), tt.limit)
		require.NoError(t, err)
		assert.Len(t, workflows, tt.expected, "limit %d", tt.limit)
	}
}

func TestGeneration_Lookups(t *testing.T) {
	t.Parallel()

	service, store := newTestGeneration(t, &mocks.MockProvider{})

	created, err := store.WorkflowRepository().Create(t.Context(), testutil.CreateTestWorkflow(testutil.WithTitle("Lookup Automation")))
	require.NoError(t, err)

	workflow, err := service.Workflow(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lookup Automation", workflow.Title)

	_, err = service.Workflow(t.Context(), 99)
	assert.True(t, persistence.IsWorkflowNotFound(err))

	_, err = service.Workflow(t.Context(), 0)
	assert.ErrorIs(t, err, services.ErrInvalidReference)

	_, err = service.Conversation(t.Context(), 5)
	assert.True(t, persistence.IsConversationNotFound(err))

	_, err = service.Conversation(t.Context(), -1)
	assert.ErrorIs(t, err, services.ErrInvalidReference)
}

func TestGeneration_Templates(t *testing.T) {
	t.Parallel()

	service, store := newTestGeneration(t, &mocks.MockProvider{})

	defaults, err := templates.Defaults()
	require.NoError(t, err)
	require.NoError(t, store.TemplateRepository().Seed(t.Context(), defaults))

	all, err := service.Templates(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, all, len(defaults))

	category := defaults[0].Category

	filtered, err := service.Templates(t.Context(), category)
	require.NoError(t, err)
	require.NotEmpty(t, filtered)

	for _, template := range filtered {
		assert.Equal(t, category, template.Category)
	}

	none, err := service.Templates(t.Context(), "no-such-category")
	require.NoError(t, err)
	assert.Empty(t, none)

	first, err := service.Template(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, defaults[0].Name, first.Name)

	_, err = service.Template(t.Context(), 100)
	assert.True(t, persistence.IsTemplateNotFound(err))
}
