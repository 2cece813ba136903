package telemetry

import (
	"time"

	"hexageeky/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveListing(_ time.Duration, _ int, _ error) {}

func (n *NoopMetrics) ObservePreferenceMutation(_ string) {}

func (n *NoopMetrics) SetCatalogSize(_ int) {}

func (n *NoopMetrics) ObserveCatalogReload(_ error) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
