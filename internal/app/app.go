// Package app wires the catalog, preference store, and servers into the
// daemon runtime.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"hexageeky/internal/domain"
	"hexageeky/internal/infra/catalog"
	"hexageeky/internal/infra/httpapi"
	"hexageeky/internal/infra/prefstore"
	"hexageeky/internal/infra/telemetry"
	"hexageeky/internal/prefs"
)

type App struct {
	logger *zap.Logger
}

type ServeConfig struct {
	ConfigPath string

	// CatalogPath overrides the config file value when non-empty.
	CatalogPath string
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		logger: logger.Named("app"),
	}
}

// Serve runs the daemon until ctx is canceled.
func (a *App) Serve(ctx context.Context, serveCfg ServeConfig) error {
	cfg, err := LoadConfig(serveCfg.ConfigPath)
	if err != nil {
		return err
	}
	if serveCfg.CatalogPath != "" {
		cfg.CatalogPath = serveCfg.CatalogPath
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)
	health := telemetry.NewHealthTracker()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	provider, err := a.newProvider(runCtx, cfg, metrics)
	if err != nil {
		return err
	}

	state, err := provider.Snapshot(runCtx)
	if err != nil {
		return err
	}
	metrics.SetCatalogSize(state.Catalog.Len())
	a.logger.Info("catalog loaded",
		zap.String("path", catalogSource(cfg.CatalogPath)),
		zap.Int("tools", state.Catalog.Len()),
		zap.Int("categories", len(state.Catalog.Categories())),
	)

	store, err := prefstore.Open(cfg.PrefsDBPath)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer func() { _ = store.Close() }()

	manager := prefs.NewManager(store, a.logger, metrics.ObservePreferenceMutation)
	api := httpapi.NewServer(provider, manager, metrics, a.logger)

	errChan := make(chan error, 3)
	go func() {
		errChan <- api.Start(runCtx, cfg.ListenAddress)
	}()
	go func() {
		errChan <- telemetry.StartHTTPServer(runCtx, telemetry.HTTPServerOptions{
			Addr:          cfg.Observability.ListenAddress,
			EnableMetrics: cfg.Observability.EnableMetrics,
			EnableHealthz: cfg.Observability.EnableHealthz,
			Health:        health,
			Registry:      registry,
		}, a.logger)
	}()

	if cfg.Watch {
		go a.watchCatalog(runCtx, provider, metrics, health)
	}

	// The observability server returns nil immediately when both of its
	// endpoints are disabled, so a nil completion is not a shutdown
	// signal. The first failure cancels the sibling.
	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errChan; err != nil {
			if firstErr == nil {
				firstErr = err
			}
			cancel()
		}
	}
	return firstErr
}

func (a *App) newProvider(ctx context.Context, cfg Config, metrics domain.Metrics) (catalog.Provider, error) {
	if !cfg.Watch {
		return catalog.NewStaticProvider(cfg.CatalogPath, a.logger)
	}
	return catalog.NewWatchingProvider(ctx, cfg.CatalogPath, a.logger, func(err error) {
		metrics.ObserveCatalogReload(err)
	})
}

// watchCatalog keeps the size gauge and health heartbeat in step with
// catalog reloads.
func (a *App) watchCatalog(ctx context.Context, provider catalog.Provider, metrics domain.Metrics, health *telemetry.HealthTracker) {
	updates, err := provider.Watch(ctx)
	if err != nil {
		a.logger.Warn("catalog watch unavailable", zap.Error(err))
		return
	}

	beat := health.Register("catalog-watch", time.Minute)
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			beat()
		case update, ok := <-updates:
			if !ok {
				return
			}
			beat()
			metrics.ObserveCatalogReload(nil)
			metrics.SetCatalogSize(update.State.Catalog.Len())
			a.logger.Info("catalog updated",
				zap.Uint64("revision", update.State.Revision),
				zap.Int("tools", update.State.Catalog.Len()),
				zap.Int("added", len(update.Diff.AddedIDs)),
				zap.Int("removed", len(update.Diff.RemovedIDs)),
				zap.Int("updated", len(update.Diff.UpdatedIDs)),
			)
		}
	}
}

// Export writes the resolved catalog as YAML.
func (a *App) Export(ctx context.Context, catalogPath string, w io.Writer) error {
	provider, err := catalog.NewStaticProvider(catalogPath, a.logger)
	if err != nil {
		return err
	}
	state, err := provider.Snapshot(ctx)
	if err != nil {
		return err
	}
	return catalog.Export(state.Catalog, w)
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
