package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

var (
	nodeKeys     = jsonKeys(reflect.TypeFor[Node]())
	workflowKeys = jsonKeys(reflect.TypeFor[WorkflowConfiguration]())
)

type (
	nodeFields     Node
	workflowFields WorkflowConfiguration
)

func (n *Node) UnmarshalJSON(data []byte) error {
	var fields nodeFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	extra, err := unknownKeys(data, nodeKeys)
	if err != nil {
		return err
	}

	*n = Node(fields)
	n.Extra = extra

	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(nodeFields(n))
	if err != nil {
		return nil, err
	}

	return withExtra(encoded, n.Extra)
}

func (w *WorkflowConfiguration) UnmarshalJSON(data []byte) error {
	var fields workflowFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	extra, err := unknownKeys(data, workflowKeys)
	if err != nil {
		return err
	}

	*w = WorkflowConfiguration(fields)
	w.Extra = extra

	return nil
}

func (w WorkflowConfiguration) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(workflowFields(w))
	if err != nil {
		return nil, err
	}

	return withExtra(encoded, w.Extra)
}

// jsonKeys lists the object keys a struct type encodes.
func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())

	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		keys[name] = struct{}{}
	}

	return keys
}

func unknownKeys(data []byte, known map[string]struct{}) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	var extra map[string]any

	for key, value := range all {
		if _, ok := known[key]; ok {
			continue
		}

		if extra == nil {
			extra = make(map[string]any)
		}

		extra[key] = value
	}

	return extra, nil
}

// withExtra adds extra keys to an encoded object. Modelled fields win on a
// key collision.
func withExtra(encoded []byte, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return encoded, nil
	}

	var object map[string]any
	if err := json.Unmarshal(encoded, &object); err != nil {
		return nil, err
	}

	for key, value := range extra {
		if _, ok := object[key]; !ok {
			object[key] = value
		}
	}

	return json.Marshal(object)
}
