// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/google/uuid"
)

// CreateTestNode creates a test node with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.Node)) models.Node {
	node := models.Node{
		ID:         uuid.New().String(),
		Name:       "Manual Trigger",
		Type:       "n8n-nodes-base.manualTrigger",
		Position:   models.Position{240, 300},
		Parameters: map[string]any{},
	}

	for _, override := range overrides {
		override(&node)
	}

	return node
}

// WithNodeName sets the node display name.
func WithNodeName(name string) func(*models.Node) {
	return func(n *models.Node) {
		n.Name = name
	}
}

// WithNodeType sets the dotted node type.
func WithNodeType(nodeType string) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = nodeType
	}
}

// WithParameters sets the node parameter bag.
func WithParameters(params map[string]any) func(*models.Node) {
	return func(n *models.Node) {
		n.Parameters = params
	}
}

// CreateTestConfiguration creates a two-node trigger to Slack configuration.
func CreateTestConfiguration(overrides ...func(*models.WorkflowConfiguration)) models.WorkflowConfiguration {
	trigger := CreateTestNode(WithNodeName("Webhook"), WithNodeType("n8n-nodes-base.webhook"))
	slack := CreateTestNode(
		WithNodeName("Notify Slack"),
		WithNodeType("n8n-nodes-base.slack"),
		WithParameters(map[string]any{"channel": "#alerts", "text": "{{ $json.body }}"}),
	)
	slack.Position = models.Position{460, 300}

	cfg := models.WorkflowConfiguration{
		Nodes: []models.Node{trigger, slack},
		Connections: map[string]models.NodeConnections{
			"Webhook": {models.MainPort: [][]models.ConnectionTarget{{{Node: "Notify Slack", Type: models.MainPort}}}},
		},
		Active:   true,
		Settings: map[string]any{},
	}

	for _, override := range overrides {
		override(&cfg)
	}

	return cfg
}

// WithConnection adds a main-port connection from source to target.
func WithConnection(source, target string) func(*models.WorkflowConfiguration) {
	return func(cfg *models.WorkflowConfiguration) {
		if cfg.Connections == nil {
			cfg.Connections = map[string]models.NodeConnections{}
		}

		conns := cfg.Connections[source]
		if conns == nil {
			conns = models.NodeConnections{}
		}

		outputs := conns[models.MainPort]
		if len(outputs) == 0 {
			outputs = [][]models.ConnectionTarget{{}}
		}

		outputs[0] = append(outputs[0], models.ConnectionTarget{Node: target, Type: models.MainPort})
		conns[models.MainPort] = outputs
		cfg.Connections[source] = conns
	}
}

// CreateTestWorkflow creates a workflow record with default values that can be overridden.
func CreateTestWorkflow(overrides ...func(*models.Workflow)) *models.Workflow {
	cfg := CreateTestConfiguration()

	workflow := &models.Workflow{
		Title:        "Webhook Slack Automation",
		Description:  "Posts webhook payloads to Slack",
		UserPrompt:   "Post every webhook payload to our Slack alerts channel",
		N8nJSON:      cfg,
		NodeCount:    len(cfg.Nodes),
		Integrations: []string{"Webhook", "Slack"},
	}

	for _, override := range overrides {
		override(workflow)
	}

	return workflow
}

// WithTitle sets the workflow title.
func WithTitle(title string) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Title = title
	}
}

// CreateTestExchange returns a user turn with the given content followed by
// an assistant turn carrying a configuration.
func CreateTestExchange(content string) []models.ChatMessage {
	cfg := CreateTestConfiguration()
	now := time.Now().UTC()
	suffix := uuid.NewString()

	return []models.ChatMessage{
		{ID: "msg_user_" + suffix, Role: models.RoleUser, Content: content, Timestamp: now},
		{ID: "msg_assistant_" + suffix, Role: models.RoleAssistant, Content: "Generated workflow", Timestamp: now, WorkflowData: &cfg},
	}
}
