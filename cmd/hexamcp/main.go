package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hexageeky/internal/infra/catalog"
	"hexageeky/internal/infra/mcpapi"
)

type sidecarOptions struct {
	catalogPath string
	watch       bool
	logger      *zap.Logger
}

func main() {
	opts := sidecarOptions{
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "hexamcp",
		Short: "MCP stdio bridge for the tool directory",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; zap production logs to
			// stderr.
			cfg := zap.NewProductionConfig()
			log, err := cfg.Build()
			if err != nil {
				return err
			}
			opts.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			provider, err := newProvider(ctx, &opts)
			if err != nil {
				return err
			}

			return mcpapi.NewServer(provider, opts.logger).Run(ctx)
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", opts.catalogPath, "path to catalog file (default: embedded catalog)")
	root.PersistentFlags().BoolVar(&opts.watch, "watch", opts.watch, "reload the catalog on file changes")

	if err := root.Execute(); err != nil {
		opts.logger.Fatal("command failed", zap.Error(err))
	}
}

func newProvider(ctx context.Context, opts *sidecarOptions) (catalog.Provider, error) {
	if opts.watch && opts.catalogPath != "" {
		provider, err := catalog.NewWatchingProvider(ctx, opts.catalogPath, opts.logger, nil)
		if err != nil {
			return nil, err
		}
		// Kick off the watcher goroutine; snapshots pick up reloads.
		if _, err := provider.Watch(ctx); err != nil {
			return nil, err
		}
		return provider, nil
	}
	return catalog.NewStaticProvider(opts.catalogPath, opts.logger)
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
