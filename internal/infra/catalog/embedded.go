package catalog

import _ "embed"

// defaultCatalogData carries the built-in directory so the daemon runs
// without any external config.
//
//go:embed catalog.yaml
var defaultCatalogData []byte
