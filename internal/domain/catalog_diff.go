package domain

import (
	"reflect"
	"sort"
)

// CatalogDiff summarizes the change between two catalog snapshots.
type CatalogDiff struct {
	AddedIDs   []string
	RemovedIDs []string
	UpdatedIDs []string
}

// IsEmpty reports whether the diff contains any changes.
func (d CatalogDiff) IsEmpty() bool {
	return len(d.AddedIDs) == 0 && len(d.RemovedIDs) == 0 && len(d.UpdatedIDs) == 0
}

// DiffCatalogs computes which tool ids were added, removed, or changed
// between two catalogs. ID lists come back sorted for stable logging.
func DiffCatalogs(prev, next Catalog) CatalogDiff {
	diff := CatalogDiff{}
	for _, tool := range prev.Tools() {
		nextTool, ok := next.Get(tool.ID)
		if !ok {
			diff.RemovedIDs = append(diff.RemovedIDs, tool.ID)
			continue
		}
		if !reflect.DeepEqual(tool, nextTool) {
			diff.UpdatedIDs = append(diff.UpdatedIDs, tool.ID)
		}
	}
	for _, tool := range next.Tools() {
		if _, ok := prev.Get(tool.ID); !ok {
			diff.AddedIDs = append(diff.AddedIDs, tool.ID)
		}
	}
	sort.Strings(diff.AddedIDs)
	sort.Strings(diff.RemovedIDs)
	sort.Strings(diff.UpdatedIDs)
	return diff
}
