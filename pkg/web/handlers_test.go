package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukex/flowsmith/pkg/catalog"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/dukex/flowsmith/pkg/mocks"
	"github.com/dukex/flowsmith/pkg/persistence/memory"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/dukex/flowsmith/pkg/templates"
	"github.com/dukex/flowsmith/pkg/testutil"
	"github.com/dukex/flowsmith/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const generatedResponse = `{
  "workflow": {
    "nodes": [
      {"id": "1", "name": "Webhook", "type": "n8n-nodes-base.webhook", "position": [240, 300], "parameters": {"path": "lead"}},
      {"id": "2", "name": "HubSpot", "type": "n8n-nodes-base.hubspot", "position": [460, 300], "parameters": {}}
    ],
    "connections": {"Webhook": {"main": [[{"node": "HubSpot", "type": "main", "index": 0}]]}},
    "active": false,
    "settings": {}
  },
  "explanation": "Creates HubSpot contacts from webhook submissions.",
  "nodeCount": 2,
  "integrations": ["HubSpot"],
  "suggestions": ["Deduplicate contacts"]
}`

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
	Analysis *struct {
		Category            string `json:"category"`
		IsAILimitation      bool   `json:"isAILimitation"`
		UserFriendlyMessage string `json:"userFriendlyMessage"`
	} `json:"analysis"`
}

func setupTestApp(t *testing.T) (*fiber.App, *mocks.MockProvider, *memory.Persistence) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	provider := &mocks.MockProvider{}

	generator, err := llm.NewGenerator(provider, tracer, logger)
	require.NoError(t, err)

	store := memory.NewPersistence()

	defaults, err := templates.Defaults()
	require.NoError(t, err)
	require.NoError(t, store.TemplateRepository().Seed(t.Context(), defaults))

	generation := services.NewGeneration(generator, llm.NewReviewer(provider, tracer, logger), store, logger,
		services.WithTracer(tracer))

	handlers := web.NewAPIHandlers(generation, catalog.Default(), validator.New(validator.WithRequiredStructEnabled()), logger)

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logger)})
	web.RegisterRoutes(app, handlers)

	return app, provider, store
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded envelope
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))

	return resp.StatusCode, decoded
}

func TestAPIHandlers_GenerateWorkflow(t *testing.T) {
	t.Parallel()

	app, provider, _ := setupTestApp(t)
	provider.OnPurpose(llm.PurposeGenerate).Return(generatedResponse, nil).Once()
	provider.OnPurpose(llm.PurposeValidate).Return(`{"valid": true, "errors": [], "suggestions": ["Add a retry"]}`, nil).Once()

	status, body := do(t, app, http.MethodPost, "/api/generate-workflow", web.GenerateWorkflowRequest{
		Prompt: "Create a HubSpot contact for every form submission",
	})

	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Nil(t, body.Analysis)

	var output services.GenerateOutput
	require.NoError(t, json.Unmarshal(body.Data, &output))
	assert.Equal(t, "1", output.ConversationID)
	assert.Equal(t, int64(1), output.WorkflowID)
	assert.Equal(t, []string{"Deduplicate contacts", "Add a retry"}, output.Suggestions)
	assert.Len(t, output.Workflow.Nodes, 2)

	provider.AssertExpectations(t)
}

func TestAPIHandlers_GenerateWorkflow_RejectsShortPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body any
	}{
		{name: "short prompt", body: web.GenerateWorkflowRequest{Prompt: "Slack"}},
		{name: "missing prompt", body: map[string]any{"conversationId": "1"}},
		{name: "empty body", body: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, provider, _ := setupTestApp(t)

			status, body := do(t, app, http.MethodPost, "/api/generate-workflow", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, body.Success)
			assert.Equal(t, "Prompt must be at least 10 characters", body.Error)
			provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAPIHandlers_GenerateWorkflow_MalformedBody(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/generate-workflow", `{"prompt": 12`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", body.Error)
}

func TestAPIHandlers_GenerateWorkflow_FailureCarriesAnalysis(t *testing.T) {
	t.Parallel()

	app, provider, store := setupTestApp(t)
	provider.OnPurpose(llm.PurposeGenerate).
		Return("I'm unable to create a workflow that spans twelve different systems.", nil).Once()

	status, body := do(t, app, http.MethodPost, "/api/generate-workflow", web.GenerateWorkflowRequest{
		Prompt: "Connect every tool we use to every other tool automatically",
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.True(t, strings.HasPrefix(body.Error, "failed to generate workflow: "), body.Error)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, "ai_limitation", body.Analysis.Category)
	assert.True(t, body.Analysis.IsAILimitation)
	assert.Contains(t, body.Analysis.UserFriendlyMessage, "complex request")

	recent, err := store.WorkflowRepository().ListRecent(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestAPIHandlers_Templates(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedError  string
		expectedCount  int
	}{
		{name: "all templates", path: "/api/templates", expectedStatus: http.StatusOK, expectedCount: 5},
		{name: "by category", path: "/api/templates?category=Lead%20Management", expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "unknown category", path: "/api/templates?category=Gardening", expectedStatus: http.StatusOK, expectedCount: 0},
		{name: "single template", path: "/api/templates/2", expectedStatus: http.StatusOK},
		{name: "invalid id", path: "/api/templates/two", expectedStatus: http.StatusBadRequest, expectedError: "Invalid template ID"},
		{name: "missing template", path: "/api/templates/42", expectedStatus: http.StatusNotFound, expectedError: "Template not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := do(t, app, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedError, body.Error)

			if tt.expectedStatus == http.StatusOK && !strings.Contains(tt.path, "/templates/") {
				var list []map[string]any
				require.NoError(t, json.Unmarshal(body.Data, &list))
				assert.Len(t, list, tt.expectedCount)
			}
		})
	}
}

func TestAPIHandlers_TemplatesStoreFailure(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	provider := &mocks.MockProvider{}

	generator, err := llm.NewGenerator(provider, tracer, logger)
	require.NoError(t, err)

	store := mocks.NewMockPersistence()
	store.Templates.On("List", mock.Anything).Return(nil, assert.AnError).Once()
	store.Templates.On("ListByCategory", mock.Anything, "Social Media").Return(nil, assert.AnError).Once()

	generation := services.NewGeneration(generator, llm.NewReviewer(provider, tracer, logger), store, logger)
	handlers := web.NewAPIHandlers(generation, catalog.Default(), validator.New(validator.WithRequiredStructEnabled()), logger)

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logger)})
	web.RegisterRoutes(app, handlers)

	for _, path := range []string{"/api/templates", "/api/templates?category=Social%20Media"} {
		status, body := do(t, app, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.False(t, body.Success)
		assert.Equal(t, "Failed to fetch templates", body.Error)
	}

	store.AssertRepositoryExpectations(t)
}

func TestAPIHandlers_Workflows(t *testing.T) {
	t.Parallel()

	app, _, store := setupTestApp(t)

	for _, title := range []string{"First Automation", "Second Automation", "Third Automation"} {
		_, err := store.WorkflowRepository().Create(t.Context(), testutil.CreateTestWorkflow(testutil.WithTitle(title)))
		require.NoError(t, err)
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedError  string
		expectedTitles []string
		expectedTitle  string
	}{
		{
			name:           "recent default limit",
			path:           "/api/workflows/recent",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Third Automation", "Second Automation", "First Automation"},
		},
		{
			name:           "recent with limit",
			path:           "/api/workflows/recent?limit=1",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Third Automation"},
		},
		{name: "invalid limit", path: "/api/workflows/recent?limit=ten", expectedStatus: http.StatusBadRequest, expectedError: "Invalid limit"},
		{name: "by id", path: "/api/workflows/2", expectedStatus: http.StatusOK, expectedTitle: "Second Automation"},
		{name: "invalid id", path: "/api/workflows/abc", expectedStatus: http.StatusBadRequest, expectedError: "Invalid workflow ID"},
		{name: "zero id", path: "/api/workflows/0", expectedStatus: http.StatusBadRequest, expectedError: "Invalid workflow ID"},
		{name: "missing", path: "/api/workflows/404", expectedStatus: http.StatusNotFound, expectedError: "Workflow not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := do(t, app, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedError, body.Error)

			if tt.expectedTitles != nil {
				var list []struct {
					Title string `json:"title"`
				}
				require.NoError(t, json.Unmarshal(body.Data, &list))

				titles := make([]string, 0, len(list))
				for _, item := range list {
					titles = append(titles, item.Title)
				}

				assert.Equal(t, tt.expectedTitles, titles)
			}

			if tt.expectedTitle != "" {
				var workflow struct {
					Title   string         `json:"title"`
					N8nJSON map[string]any `json:"n8nJson"`
				}
				require.NoError(t, json.Unmarshal(body.Data, &workflow))
				assert.Equal(t, tt.expectedTitle, workflow.Title)
				assert.Contains(t, workflow.N8nJSON, "nodes")
			}
		})
	}
}

func TestAPIHandlers_Conversations(t *testing.T) {
	t.Parallel()

	app, _, store := setupTestApp(t)

	_, err := store.ConversationRepository().Create(t.Context(), testutil.CreateTestExchange("Archive Dropbox uploads"), nil)
	require.NoError(t, err)

	status, body := do(t, app, http.MethodGet, "/api/conversations/1", nil)
	require.Equal(t, http.StatusOK, status)

	var conversation struct {
		ID       int64 `json:"id"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &conversation))
	assert.Equal(t, int64(1), conversation.ID)
	require.Len(t, conversation.Messages, 2)
	assert.Equal(t, "Archive Dropbox uploads", conversation.Messages[0].Content)

	status, body = do(t, app, http.MethodGet, "/api/conversations/x1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid conversation ID", body.Error)

	status, body = do(t, app, http.MethodGet, "/api/conversations/9", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Conversation not found", body.Error)
}

func TestAPIHandlers_ValidateWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("missing workflow", func(t *testing.T) {
		t.Parallel()

		app, provider, _ := setupTestApp(t)

		for _, body := range []any{nil, map[string]any{}, map[string]any{"workflow": nil}} {
			status, decoded := do(t, app, http.MethodPost, "/api/validate-workflow", body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Workflow data is required", decoded.Error)
		}

		provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		app, provider, _ := setupTestApp(t)

		for _, body := range []any{`not json`, `{"workflow": {"nodes": "x"}}`, `{"workflow": {"connections": {"A": {"main": 1}}}}`} {
			status, decoded := do(t, app, http.MethodPost, "/api/validate-workflow", body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Invalid request body", decoded.Error)
		}

		provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("report with local findings", func(t *testing.T) {
		t.Parallel()

		app, provider, _ := setupTestApp(t)
		provider.OnPurpose(llm.PurposeValidate).
			Return(`{"valid": true, "errors": [], "suggestions": ["Name the Slack channel"]}`, nil).Once()

		cfg := testutil.CreateTestConfiguration(testutil.WithConnection("Notify Slack", "Archive"))

		status, body := do(t, app, http.MethodPost, "/api/validate-workflow", map[string]any{"workflow": cfg})
		require.Equal(t, http.StatusOK, status)

		var report llm.ValidationReport
		require.NoError(t, json.Unmarshal(body.Data, &report))
		assert.False(t, report.Valid)
		assert.Equal(t, []string{`connection from "Notify Slack" targets unknown node "Archive"`}, report.Errors)
		assert.Equal(t, []string{"Name the Slack channel"}, report.Suggestions)
	})

	t.Run("review failure is a successful response", func(t *testing.T) {
		t.Parallel()

		app, provider, _ := setupTestApp(t)
		provider.OnPurpose(llm.PurposeValidate).Return("", assert.AnError).Once()

		status, body := do(t, app, http.MethodPost, "/api/validate-workflow",
			map[string]any{"workflow": testutil.CreateTestConfiguration()})
		require.Equal(t, http.StatusOK, status)

		var report llm.ValidationReport
		require.NoError(t, json.Unmarshal(body.Data, &report))
		assert.Equal(t, llm.FailedReport(), report)
	})
}

func TestAPIHandlers_Nodes(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	tests := []struct {
		name          string
		path          string
		expectedCount int
		check         func(t *testing.T, nodes []map[string]any)
	}{
		{name: "all", path: "/api/nodes", expectedCount: 19},
		{
			name:          "by category",
			path:          "/api/nodes?category=Trigger",
			expectedCount: 3,
			check: func(t *testing.T, nodes []map[string]any) {
				t.Helper()

				for _, node := range nodes {
					assert.Equal(t, "Trigger", node["category"])
				}
			},
		},
		{name: "category wins over search", path: "/api/nodes?category=Trigger&search=slack", expectedCount: 3},
		{name: "category is exact", path: "/api/nodes?category=trigger", expectedCount: 0},
		{
			name:          "search",
			path:          "/api/nodes?search=SLACK",
			expectedCount: 1,
			check: func(t *testing.T, nodes []map[string]any) {
				t.Helper()
				assert.Equal(t, "n8n-nodes-base.slack", nodes[0]["type"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := do(t, app, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, status)

			var nodes []map[string]any
			require.NoError(t, json.Unmarshal(body.Data, &nodes))
			assert.Len(t, nodes, tt.expectedCount)

			if tt.check != nil {
				tt.check(t, nodes)
			}
		})
	}
}

func TestAPIHandlers_GetNode(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/nodes/n8n-nodes-base.httpRequest", nil)
	require.Equal(t, http.StatusOK, status)

	var node map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &node))
	assert.Equal(t, "Network", node["category"])

	status, body = do(t, app, http.MethodGet, "/api/nodes/n8n-nodes-base.fax", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Node type not found", body.Error)
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var problem map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, "not_found", problem["type"])
	assert.Equal(t, "/api/unknown", problem["instance"])
	assert.InDelta(t, 404, problem["status"], 0)
}
