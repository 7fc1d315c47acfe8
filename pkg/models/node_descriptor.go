package models

// NodeCategory groups node descriptors in the catalog.
type NodeCategory string

const (
	NodeCategoryTrigger       NodeCategory = "Trigger"
	NodeCategoryCommunication NodeCategory = "Communication"
	NodeCategoryData          NodeCategory = "Data"
	NodeCategoryFile          NodeCategory = "File"
	NodeCategoryLogic         NodeCategory = "Logic"
	NodeCategoryNetwork       NodeCategory = "Network"
	NodeCategorySales         NodeCategory = "Sales"
	NodeCategorySocial        NodeCategory = "Social"
)

// NodeDescriptor documents an n8n node type: its default parameters, the
// credential types it needs and typical uses.
type NodeDescriptor struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Category    NodeCategory   `json:"category"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Credentials []string       `json:"credentials,omitempty"`
	CommonUse   []string       `json:"commonUse"`
}

// RequiresCredentials reports whether the node type needs authentication.
func (d NodeDescriptor) RequiresCredentials() bool {
	return len(d.Credentials) > 0
}
