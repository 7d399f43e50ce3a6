package tools

import (
	"fmt"
	"strings"
)

// Registry holds the tools available to the reasoning loop. It preserves
// registration order, enforces name uniqueness, and is immutable after
// construction.
type Registry struct {
	order  []*Tool
	byName map[string]*Tool
}

// NewRegistry builds a registry from the given tools. Duplicate or empty
// names are construction errors.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	registry := &Registry{
		byName: make(map[string]*Tool, len(tools)),
	}

	for _, tool := range tools {
		if tool.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := registry.byName[tool.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		registry.byName[tool.Name] = tool
		registry.order = append(registry.order, tool)
	}

	return registry, nil
}

// Get retrieves a tool by exact name (case-sensitive)
func (r *Registry) Get(name string) (*Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// All returns the tools in registration order
func (r *Registry) All() []*Tool {
	return r.order
}

// Names returns the tool names in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, tool := range r.order {
		names = append(names, tool.Name)
	}
	return names
}

// Describe renders the name/description lines injected into the reasoning
// prompt.
func (r *Registry) Describe() string {
	var b strings.Builder
	for i, tool := range r.order {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tool.Name)
		b.WriteString(": ")
		b.WriteString(tool.Description)
	}
	return b.String()
}
