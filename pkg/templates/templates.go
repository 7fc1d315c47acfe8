// Package templates provides the built-in workflow templates seeded into the
// template repository at startup.
package templates

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/go-playground/validator/v10"
)

//go:embed defaults.json
var defaultsJSON []byte

// Defaults decodes and validates the built-in templates. The returned slice
// is freshly decoded on each call so callers may keep or mutate it.
func Defaults() ([]models.Template, error) {
	return Parse(defaultsJSON)
}

// Parse decodes a JSON array of templates and validates each entry.
func Parse(data []byte) ([]models.Template, error) {
	var templates []models.Template

	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	for i := range templates {
		if err := validate.Struct(&templates[i]); err != nil {
			return nil, fmt.Errorf("template %d (%s) is invalid: %w", i, templates[i].Name, err)
		}

		if issues := templates[i].N8nJSON.ConnectionIssues(); len(issues) > 0 {
			return nil, fmt.Errorf("template %d (%s) has broken connections: %s", i, templates[i].Name, issues[0])
		}

		if templates[i].NodeCount == 0 {
			templates[i].NodeCount = len(templates[i].N8nJSON.Nodes)
		}
	}

	return templates, nil
}
