package app

import (
	"context"

	"go.uber.org/zap"

	"hexageeky/internal/infra/catalog"
)

type ValidateConfig struct {
	ConfigPath  string
	CatalogPath string
}

// ValidateConfig checks the runtime config and catalog without starting
// any servers.
func (a *App) ValidateConfig(ctx context.Context, validateCfg ValidateConfig) error {
	cfg, err := LoadConfig(validateCfg.ConfigPath)
	if err != nil {
		return err
	}
	if validateCfg.CatalogPath != "" {
		cfg.CatalogPath = validateCfg.CatalogPath
	}

	loaded, err := catalog.NewLoader(a.logger).Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	a.logger.Info("configuration validated",
		zap.String("catalog", catalogSource(cfg.CatalogPath)),
		zap.Int("tools", loaded.Len()),
		zap.Int("categories", len(loaded.Categories())),
		zap.Int("tags", len(loaded.TagsInUse())),
	)
	return nil
}
