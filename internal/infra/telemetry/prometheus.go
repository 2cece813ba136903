package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hexageeky/internal/domain"
)

type PrometheusMetrics struct {
	listingDuration     *prometheus.HistogramVec
	listingResults      prometheus.Histogram
	preferenceMutations *prometheus.CounterVec
	catalogSize         prometheus.Gauge
	catalogReloads      *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		listingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hexad_listing_duration_seconds",
				Help:    "Duration of tool listing requests in seconds",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"status"},
		),
		listingResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hexad_listing_results",
				Help:    "Number of tools matched by a listing request before pagination",
				Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 25, 30},
			},
		),
		preferenceMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexad_preference_mutations_total",
				Help: "Total number of applied preference mutations",
			},
			[]string{"action"},
		),
		catalogSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hexad_catalog_size",
				Help: "Number of tools in the current catalog snapshot",
			},
		),
		catalogReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexad_catalog_reloads_total",
				Help: "Total number of catalog reload attempts",
			},
			[]string{"status"},
		),
	}
}

func (p *PrometheusMetrics) ObserveListing(duration time.Duration, matched int, err error) {
	p.listingDuration.WithLabelValues(statusLabel(err)).Observe(duration.Seconds())
	if err == nil {
		p.listingResults.Observe(float64(matched))
	}
}

func (p *PrometheusMetrics) ObservePreferenceMutation(action string) {
	p.preferenceMutations.WithLabelValues(action).Inc()
}

func (p *PrometheusMetrics) SetCatalogSize(n int) {
	p.catalogSize.Set(float64(n))
}

func (p *PrometheusMetrics) ObserveCatalogReload(err error) {
	p.catalogReloads.WithLabelValues(statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
