package domain

import (
	"fmt"
	"strings"
)

// Tool is one directory entry: an external site or service with the
// metadata the search and filter pipelines operate on.
type Tool struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Features    []string `json:"features,omitempty"`
	Favicon     string   `json:"favicon,omitempty"`
}

// HasTag reports whether the tool carries the given tag (case-insensitive).
func (t Tool) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}

// Catalog is the immutable ordered set of tools. Construct one with
// NewCatalog and treat it as read-only afterwards; providers swap whole
// snapshots rather than mutating a live catalog.
type Catalog struct {
	tools []Tool
	byID  map[string]int
}

// NewCatalog builds a catalog from an ordered tool list, rejecting empty
// or duplicate ids.
func NewCatalog(tools []Tool) (Catalog, error) {
	byID := make(map[string]int, len(tools))
	for i, tool := range tools {
		id := strings.TrimSpace(tool.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("tools[%d]: id is required", i)
		}
		if prev, ok := byID[id]; ok {
			return Catalog{}, fmt.Errorf("tools[%d]: duplicate id %q (first at index %d)", i, id, prev)
		}
		byID[id] = i
	}
	return Catalog{tools: tools, byID: byID}, nil
}

// Tools returns the tools in catalog order. Callers must not mutate the
// returned slice.
func (c Catalog) Tools() []Tool {
	return c.tools
}

// Len returns the number of tools.
func (c Catalog) Len() int {
	return len(c.tools)
}

// Get returns the tool with the given id.
func (c Catalog) Get(id string) (Tool, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// Categories returns the distinct categories in first-seen catalog order.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.tools))
	var categories []string
	for _, tool := range c.tools {
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		categories = append(categories, tool.Category)
	}
	return categories
}

// CategoryCounts returns the number of tools per category.
func (c Catalog) CategoryCounts() map[string]int {
	counts := make(map[string]int, len(c.tools))
	for _, tool := range c.tools {
		counts[tool.Category]++
	}
	return counts
}

// TagsInUse returns the distinct tags in first-seen catalog order.
func (c Catalog) TagsInUse() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, tool := range c.tools {
		for _, tag := range tool.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
