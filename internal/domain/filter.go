package domain

import "strings"

// FilterCriteria drives the filter pipeline. Zero-value fields are
// unconstrained: an empty query, empty category, and empty tag set all
// match every tool.
type FilterCriteria struct {
	Query    string
	Category string
	Tags     []string
}

// IsZero reports whether the criteria constrain nothing.
func (c FilterCriteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" && strings.TrimSpace(c.Category) == "" && len(c.Tags) == 0
}

// FilterTools returns the subsequence of tools matching the criteria,
// preserving input order. Query is a case-insensitive substring match
// across title, description, category, and tags; category is a
// case-insensitive exact match; tags match when the tool carries at
// least one of them. Present predicates are ANDed.
func FilterTools(tools []Tool, criteria FilterCriteria) []Tool {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	category := strings.TrimSpace(criteria.Category)

	matched := make([]Tool, 0, len(tools))
	for _, tool := range tools {
		if query != "" && !matchesQuery(tool, query) {
			continue
		}
		if category != "" && !strings.EqualFold(tool.Category, category) {
			continue
		}
		if len(criteria.Tags) > 0 && !matchesAnyTag(tool, criteria.Tags) {
			continue
		}
		matched = append(matched, tool)
	}
	return matched
}

func matchesQuery(tool Tool, query string) bool {
	if strings.Contains(strings.ToLower(tool.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Category), query) {
		return true
	}
	for _, tag := range tool.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesAnyTag(tool Tool, tags []string) bool {
	for _, tag := range tags {
		if tool.HasTag(tag) {
			return true
		}
	}
	return false
}
