package catalog

import (
	"testing"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(descriptors []models.NodeDescriptor) []string {
	types := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		types = append(types, d.Type)
	}

	return types
}

func TestDefault_ContainsBuiltinNodes(t *testing.T) {
	t.Parallel()

	c := Default()

	all := c.All()
	assert.Len(t, all, 19)
	assert.Equal(t, "n8n-nodes-base.webhook", all[0].Type)
	assert.Equal(t, "n8n-nodes-base.twitter", all[len(all)-1].Type)

	assert.Equal(t, []models.NodeCategory{
		models.NodeCategoryTrigger,
		models.NodeCategoryCommunication,
		models.NodeCategoryData,
		models.NodeCategoryFile,
		models.NodeCategoryLogic,
		models.NodeCategoryNetwork,
		models.NodeCategorySales,
		models.NodeCategorySocial,
	}, c.Categories())
}

func TestCatalog_ByType(t *testing.T) {
	t.Parallel()

	c := Default()

	slack, ok := c.ByType("n8n-nodes-base.slack")
	require.True(t, ok)
	assert.Equal(t, "Slack", slack.Name)
	assert.Equal(t, []string{"slackApi"}, slack.Credentials)
	assert.True(t, slack.RequiresCredentials())

	_, ok = c.ByType("n8n-nodes-base.unknown")
	assert.False(t, ok)
}

func TestCatalog_ByCategory(t *testing.T) {
	t.Parallel()

	c := Default()

	tests := []struct {
		name     string
		category string
		expected []string
	}{
		{
			name:     "triggers",
			category: "Trigger",
			expected: []string{"n8n-nodes-base.webhook", "n8n-nodes-base.cron", "n8n-nodes-base.manualTrigger"},
		},
		{
			name:     "exact match only",
			category: "trigger",
			expected: []string{},
		},
		{
			name:     "files",
			category: "File",
			expected: []string{"n8n-nodes-base.googleDrive", "n8n-nodes-base.dropbox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, typesOf(c.ByCategory(tt.category)))
		})
	}
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	c := Default()

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "matches name case-insensitively",
			query:    "SLACK",
			expected: []string{"n8n-nodes-base.slack"},
		},
		{
			name:     "matches description",
			query:    "imap server",
			expected: []string{"n8n-nodes-base.emailReadImap"},
		},
		{
			name:     "matches common use",
			query:    "lead management",
			expected: []string{"n8n-nodes-base.hubspot"},
		},
		{
			name:     "matches across fields",
			query:    "email",
			expected: []string{"n8n-nodes-base.gmail", "n8n-nodes-base.emailReadImap"},
		},
		{
			name:     "no match",
			query:    "mainframe",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, typesOf(c.Search(tt.query)))
		})
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := New(
		models.NodeDescriptor{Type: "n8n-nodes-base.set", Name: "Set"},
		models.NodeDescriptor{Type: "n8n-nodes-base.set", Name: "Set again"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")

	_, err = New(models.NodeDescriptor{Name: "Nameless"})
	require.Error(t, err)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()

	all := c.All()
	all[0] = models.NodeDescriptor{Type: "mutated"}

	assert.Equal(t, "n8n-nodes-base.webhook", c.All()[0].Type)
}
