package llm

import "github.com/dukex/flowsmith/pkg/models"

func ptr[T any](v T) *T {
	return &v
}

// GenerationResponseSchema describes the JSON object the model must return.
// Only workflow and its node list are required; every other field may be
// absent, but when present it must have the declared type.
func GenerationResponseSchema() *models.JSONSchema {
	stringList := &models.Property{Type: "array", Items: &models.Property{Type: "string"}}
	nonEmpty := func() *models.Property { return &models.Property{Type: "string", MinLength: ptr(1)} }

	target := &models.Property{
		Type:     "object",
		Required: []string{"node"},
		Properties: map[string]*models.Property{
			"node":  {Type: "string"},
			"type":  {Type: "string"},
			"index": {Type: "integer", Minimum: ptr(0.0)},
		},
	}

	node := &models.Property{
		Type:     "object",
		Required: []string{"name", "type"},
		Properties: map[string]*models.Property{
			"id":          {Type: "string"},
			"name":        nonEmpty(),
			"type":        nonEmpty(),
			"typeVersion": {Type: "number"},
			"position": {
				Type:     "array",
				Items:    &models.Property{Type: "number"},
				MinItems: ptr(2),
				MaxItems: ptr(2),
			},
			"parameters":  {Type: "object"},
			"credentials": {Type: "object"},
			"webhookId":   {Type: "string"},
			"disabled":    {Type: "boolean"},
			"notes":       {Type: "string"},
		},
	}

	workflow := &models.Property{
		Type:     "object",
		Required: []string{"nodes"},
		Properties: map[string]*models.Property{
			"id":    {Type: "string"},
			"name":  {Type: "string"},
			"nodes": {Type: "array", Items: node},
			"connections": {
				Type: "object",
				AdditionalProperties: &models.Property{
					Type: "object",
					AdditionalProperties: &models.Property{
						Type:  "array",
						Items: &models.Property{Type: "array", Items: target},
					},
				},
			},
			"active":   {Type: "boolean"},
			"settings": {Type: "object"},
			"pinData":  {Type: "object"},
			"meta":     {Type: "object"},
		},
	}

	return &models.JSONSchema{
		Schema:   "http://json-schema.org/draft-07/schema#",
		Type:     "object",
		Title:    "n8n workflow generation response",
		Required: []string{"workflow"},
		Properties: map[string]*models.Property{
			"workflow":          workflow,
			"explanation":       {Type: "string"},
			"nodeCount":         {Type: "integer", Minimum: ptr(0.0)},
			"integrations":      stringList,
			"suggestions":       stringList,
			"assumptionsMade":   stringList,
			"potentialPitfalls": stringList,
		},
	}
}
