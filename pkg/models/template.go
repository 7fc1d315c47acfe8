package models

// Template is a canned prompt and configuration pair shown in the catalog.
type Template struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"         validate:"required"`
	Description  string                `json:"description"`
	Category     string                `json:"category"     validate:"required"`
	Prompt       string                `json:"prompt"       validate:"required,min=10"`
	N8nJSON      WorkflowConfiguration `json:"n8nJson"`
	NodeCount    int                   `json:"nodeCount"`
	Integrations []string              `json:"integrations"`
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() *Template {
	out := *t
	out.N8nJSON = t.N8nJSON.Clone()
	out.Integrations = cloneStrings(t.Integrations)

	return &out
}
