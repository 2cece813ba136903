package domain

import "time"

// CatalogState is one immutable catalog snapshot with provenance. A
// reload produces a new state with a higher revision; requests in flight
// keep whichever snapshot they started with.
type CatalogState struct {
	Catalog  Catalog
	Revision uint64
	LoadedAt time.Time
}

type CatalogUpdateSource string

const (
	CatalogUpdateSourceManual CatalogUpdateSource = "manual"
	CatalogUpdateSourceWatch  CatalogUpdateSource = "watch"
)

// CatalogUpdate is broadcast to watchers when the provider swaps snapshots.
type CatalogUpdate struct {
	State  CatalogState
	Diff   CatalogDiff
	Source CatalogUpdateSource
}
