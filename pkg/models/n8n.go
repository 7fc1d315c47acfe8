package models

import (
	"fmt"
	"maps"
	"slices"
)

// MainPort is the default output port. Other ports, such as the AI
// sub-node ports, are kept as the model wrote them.
const MainPort = "main"

// WorkflowConfiguration is the importable n8n document: an ordered node list
// plus a connection map keyed by the source node's display name.
type WorkflowConfiguration struct {
	ID          string                     `json:"id,omitempty"`
	Name        string                     `json:"name,omitempty"`
	Nodes       []Node                     `json:"nodes"             validate:"required,dive"`
	Connections map[string]NodeConnections `json:"connections"`
	Active      bool                       `json:"active"`
	Settings    map[string]any             `json:"settings"`
	PinData     map[string]any             `json:"pinData,omitempty"`
	Meta        map[string]any             `json:"meta,omitempty"`

	// Extra holds top-level keys not modelled above, such as tags or
	// versionId. They are written back unchanged.
	Extra map[string]any `json:"-"`
}

// Node is one configured step. Parameters are interpreted by the node type.
type Node struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"                  validate:"required"`
	Type        string         `json:"type"                  validate:"required"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Position    Position       `json:"position"`
	Parameters  map[string]any `json:"parameters"`
	Credentials map[string]any `json:"credentials,omitempty"`
	WebhookID   string         `json:"webhookId,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Notes       string         `json:"notes,omitempty"`

	// Extra holds node keys not modelled above, such as retryOnFail or onError.
	Extra map[string]any `json:"-"`
}

// Position is the canvas coordinate of a node, encoded as [x, y].
type Position [2]float64

// NodeConnections maps an output port name to the downstream targets of each
// output index on that port.
type NodeConnections map[string][][]ConnectionTarget

// Main returns the targets of the main port.
func (c NodeConnections) Main() [][]ConnectionTarget {
	return c[MainPort]
}

// ConnectionTarget references a downstream node by display name.
type ConnectionTarget struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// ConnectionIssue describes a connection that references a node name absent
// from the node list.
type ConnectionIssue struct {
	Source string
	Target string
}

func (i ConnectionIssue) String() string {
	if i.Target == "" {
		return fmt.Sprintf("connection source %q does not match any node", i.Source)
	}

	return fmt.Sprintf("connection from %q targets unknown node %q", i.Source, i.Target)
}

// HasNode reports whether a node with the given display name exists.
func (w *WorkflowConfiguration) HasNode(name string) bool {
	for _, node := range w.Nodes {
		if node.Name == name {
			return true
		}
	}

	return false
}

// ConnectionIssues walks the connection map in node order, and each source's
// ports in name order, and reports every source or target name that does not
// resolve to a node.
func (w *WorkflowConfiguration) ConnectionIssues() []ConnectionIssue {
	names := make(map[string]struct{}, len(w.Nodes))
	for _, node := range w.Nodes {
		names[node.Name] = struct{}{}
	}

	var issues []ConnectionIssue

	for _, source := range w.connectionSources() {
		if _, ok := names[source]; !ok {
			issues = append(issues, ConnectionIssue{Source: source})
		}

		ports := w.Connections[source]
		for _, port := range slices.Sorted(maps.Keys(ports)) {
			for _, outputs := range ports[port] {
				for _, target := range outputs {
					if _, ok := names[target.Node]; !ok {
						issues = append(issues, ConnectionIssue{Source: source, Target: target.Node})
					}
				}
			}
		}
	}

	return issues
}

// connectionSources returns the connection map keys, known nodes first in
// node order, then unknown sources sorted for stable output.
func (w *WorkflowConfiguration) connectionSources() []string {
	sources := make([]string, 0, len(w.Connections))
	visited := make(map[string]struct{}, len(w.Connections))

	for _, node := range w.Nodes {
		if _, ok := w.Connections[node.Name]; ok {
			if _, dup := visited[node.Name]; dup {
				continue
			}

			visited[node.Name] = struct{}{}
			sources = append(sources, node.Name)
		}
	}

	var unknown []string

	for source := range w.Connections {
		if _, ok := visited[source]; !ok {
			unknown = append(unknown, source)
		}
	}

	slices.Sort(unknown)

	return append(sources, unknown...)
}

// Clone returns a deep copy so stored configurations cannot be mutated
// through references handed to callers.
func (w *WorkflowConfiguration) Clone() WorkflowConfiguration {
	out := WorkflowConfiguration{
		ID:       w.ID,
		Name:     w.Name,
		Active:   w.Active,
		Settings: cloneMap(w.Settings),
		PinData:  cloneMap(w.PinData),
		Meta:     cloneMap(w.Meta),
		Extra:    cloneMap(w.Extra),
	}

	if w.Nodes != nil {
		out.Nodes = make([]Node, len(w.Nodes))
		for i, node := range w.Nodes {
			node.Parameters = cloneMap(node.Parameters)
			node.Credentials = cloneMap(node.Credentials)
			node.Extra = cloneMap(node.Extra)
			out.Nodes[i] = node
		}
	}

	if w.Connections != nil {
		out.Connections = make(map[string]NodeConnections, len(w.Connections))
		for source, ports := range w.Connections {
			cloned := make(NodeConnections, len(ports))
			for port, outputs := range ports {
				copied := make([][]ConnectionTarget, len(outputs))
				for i, targets := range outputs {
					copied[i] = append([]ConnectionTarget(nil), targets...)
				}

				cloned[port] = copied
			}

			out.Connections[source] = cloned
		}
	}

	return out
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}

		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}
