// Package catalog holds the registry of n8n node descriptors offered to users
// and referenced when generating workflows.
package catalog

import (
	"fmt"
	"strings"

	"github.com/dukex/flowsmith/pkg/models"
)

// Catalog is a read-mostly registry of node descriptors keyed by node type.
// Registration happens at construction time; lookups are safe for concurrent use.
type Catalog struct {
	nodes  []models.NodeDescriptor
	byType map[string]int
}

// New builds a catalog from the given descriptors, rejecting duplicate types.
func New(descriptors ...models.NodeDescriptor) (*Catalog, error) {
	c := &Catalog{
		nodes:  make([]models.NodeDescriptor, 0, len(descriptors)),
		byType: make(map[string]int, len(descriptors)),
	}

	for _, descriptor := range descriptors {
		if descriptor.Type == "" {
			return nil, fmt.Errorf("node %q has no type", descriptor.Name)
		}

		if _, exists := c.byType[descriptor.Type]; exists {
			return nil, fmt.Errorf("node type '%s' registered twice", descriptor.Type)
		}

		c.byType[descriptor.Type] = len(c.nodes)
		c.nodes = append(c.nodes, descriptor)
	}

	return c, nil
}

// Default returns the catalog of built-in node descriptors.
func Default() *Catalog {
	c, err := New(builtinNodes()...)
	if err != nil {
		panic(err)
	}

	return c
}

// All returns every descriptor in registration order.
func (c *Catalog) All() []models.NodeDescriptor {
	return append([]models.NodeDescriptor(nil), c.nodes...)
}

// ByType looks up a descriptor by its dotted node type.
func (c *Catalog) ByType(nodeType string) (models.NodeDescriptor, bool) {
	idx, ok := c.byType[nodeType]
	if !ok {
		return models.NodeDescriptor{}, false
	}

	return c.nodes[idx], true
}

// ByCategory returns descriptors whose category matches exactly.
func (c *Catalog) ByCategory(category string) []models.NodeDescriptor {
	return c.filter(func(d models.NodeDescriptor) bool {
		return string(d.Category) == category
	})
}

// Search matches the query case-insensitively against name, description and
// each common use.
func (c *Catalog) Search(query string) []models.NodeDescriptor {
	q := strings.ToLower(query)

	return c.filter(func(d models.NodeDescriptor) bool {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			return true
		}

		for _, use := range d.CommonUse {
			if strings.Contains(strings.ToLower(use), q) {
				return true
			}
		}

		return false
	})
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []models.NodeCategory {
	seen := make(map[models.NodeCategory]struct{})

	var categories []models.NodeCategory

	for _, d := range c.nodes {
		if _, ok := seen[d.Category]; ok {
			continue
		}

		seen[d.Category] = struct{}{}
		categories = append(categories, d.Category)
	}

	return categories
}

func (c *Catalog) filter(keep func(models.NodeDescriptor) bool) []models.NodeDescriptor {
	out := make([]models.NodeDescriptor, 0)

	for _, d := range c.nodes {
		if keep(d) {
			out = append(out, d)
		}
	}

	return out
}
