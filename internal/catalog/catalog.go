// Package catalog is the fixed, ordered list of tools the application
// ships. Descriptors are embedded at build time and never change while the
// process runs.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	UnitConverterID = "converters.unit"
	NetworkPingID   = "network.ping"
)

type Tool struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Icon        string   `yaml:"icon" json:"icon"`
	BasePath    string   `yaml:"basePath" json:"basePath"`
	Tags        []string `yaml:"tags" json:"tags"`
}

//go:embed tools.yaml
var toolsYAML []byte

type Catalog struct {
	tools []Tool
	index map[string]int
}

var builtin = mustParse(toolsYAML)

// Default returns the embedded catalog.
func Default() *Catalog {
	return builtin
}

// Parse decodes a YAML list of tool descriptors. IDs must be unique and non-empty.
func Parse(data []byte) (*Catalog, error) {
	var tools []Tool
	if err := yaml.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("decoding tool catalog: %w", err)
	}

	c := &Catalog{tools: tools, index: make(map[string]int, len(tools))}
	for i, t := range tools {
		if t.ID == "" {
			return nil, fmt.Errorf("tool at position %d has no id", i)
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", t.ID)
		}
		c.index[t.ID] = i
	}
	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the tools in catalog order. The slice is a copy.
func (c *Catalog) All() []Tool {
	out := make([]Tool, len(c.tools))
	for i, t := range c.tools {
		t.Tags = append([]string(nil), t.Tags...)
		out[i] = t
	}
	return out
}

func (c *Catalog) Get(id string) (Tool, bool) {
	i, ok := c.index[id]
	if !ok {
		return Tool{}, false
	}
	t := c.tools[i]
	t.Tags = append([]string(nil), t.Tags...)
	return t, true
}
