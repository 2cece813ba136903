package domain

import "time"

// Metrics is the observability hook surface. Implementations must be
// safe for concurrent use.
type Metrics interface {
	// ObserveListing records one listing request: how long the
	// filter+paginate pass took and how many tools matched before
	// pagination.
	ObserveListing(duration time.Duration, matched int, err error)

	// ObservePreferenceMutation counts one applied preference
	// mutation by action name.
	ObservePreferenceMutation(action string)

	// SetCatalogSize publishes the number of tools in the current
	// catalog snapshot.
	SetCatalogSize(n int)

	// ObserveCatalogReload counts one catalog reload attempt.
	ObserveCatalogReload(err error)
}
