package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"hexageeky/internal/domain"
)

const defaultReloadDebounce = 200 * time.Millisecond

// Provider hands out immutable catalog snapshots.
type Provider interface {
	Snapshot(ctx context.Context) (domain.CatalogState, error)
	Watch(ctx context.Context) (<-chan domain.CatalogUpdate, error)
	Reload(ctx context.Context) error
}

// StaticProvider serves a single snapshot loaded once at construction.
// Used for the embedded catalog and for validate runs.
type StaticProvider struct {
	state domain.CatalogState
}

func NewStaticProvider(path string, logger *zap.Logger) (*StaticProvider, error) {
	loaded, err := NewLoader(logger).Load(path)
	if err != nil {
		return nil, err
	}
	return &StaticProvider{state: domain.CatalogState{
		Catalog:  loaded,
		Revision: 1,
		LoadedAt: time.Now(),
	}}, nil
}

func (p *StaticProvider) Snapshot(ctx context.Context) (domain.CatalogState, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return domain.CatalogState{}, err
		}
	}
	return p.state, nil
}

func (p *StaticProvider) Watch(context.Context) (<-chan domain.CatalogUpdate, error) {
	ch := make(chan domain.CatalogUpdate)
	close(ch)
	return ch, nil
}

func (p *StaticProvider) Reload(context.Context) error {
	return nil
}

// WatchingProvider reloads the catalog file on change and swaps the
// snapshot atomically. A failed reload keeps the previous snapshot.
type WatchingProvider struct {
	logger *zap.Logger
	loader *Loader
	path   string

	state    atomic.Value
	revision atomic.Uint64

	subsMu sync.Mutex
	subs   map[chan domain.CatalogUpdate]struct{}

	reloadMu  sync.Mutex
	watchOnce sync.Once
	watchCtx  context.Context

	reloadErrors func(err error)
}

// NewWatchingProvider loads the initial snapshot from path. The watcher
// goroutine starts lazily on the first Watch call. onReloadError, when
// non-nil, is invoked for every failed reload (metrics hook).
func NewWatchingProvider(ctx context.Context, path string, logger *zap.Logger, onReloadError func(err error)) (*WatchingProvider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := NewLoader(logger)
	loaded, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	provider := &WatchingProvider{
		logger:       logger.Named("catalog_provider"),
		loader:       loader,
		path:         path,
		subs:         make(map[chan domain.CatalogUpdate]struct{}),
		watchCtx:     ctx,
		reloadErrors: onReloadError,
	}
	state := domain.CatalogState{Catalog: loaded, Revision: 1, LoadedAt: time.Now()}
	provider.state.Store(state)
	provider.revision.Store(state.Revision)
	return provider, nil
}

func (p *WatchingProvider) Snapshot(ctx context.Context) (domain.CatalogState, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return domain.CatalogState{}, err
		}
	}
	return p.state.Load().(domain.CatalogState), nil
}

func (p *WatchingProvider) Watch(ctx context.Context) (<-chan domain.CatalogUpdate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan domain.CatalogUpdate, 1)
	p.subsMu.Lock()
	p.subs[ch] = struct{}{}
	p.subsMu.Unlock()

	p.watchOnce.Do(func() {
		go p.runWatcher(p.watchCtx)
	})

	go func() {
		<-ctx.Done()
		p.subsMu.Lock()
		delete(p.subs, ch)
		p.subsMu.Unlock()
	}()

	return ch, nil
}

func (p *WatchingProvider) Reload(ctx context.Context) error {
	return p.reload(ctx, domain.CatalogUpdateSourceManual)
}

func (p *WatchingProvider) reload(ctx context.Context, source domain.CatalogUpdateSource) error {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	prev := p.state.Load().(domain.CatalogState)
	loaded, err := p.loader.Load(p.path)
	if err != nil {
		if p.reloadErrors != nil {
			p.reloadErrors(err)
		}
		return err
	}

	diff := domain.DiffCatalogs(prev.Catalog, loaded)
	if diff.IsEmpty() {
		return nil
	}

	nextRevision := p.revision.Load() + 1
	next := domain.CatalogState{Catalog: loaded, Revision: nextRevision, LoadedAt: time.Now()}
	p.revision.Store(nextRevision)
	p.state.Store(next)
	p.logger.Info("catalog reloaded",
		zap.Uint64("revision", nextRevision),
		zap.String("source", string(source)),
		zap.Int("added", len(diff.AddedIDs)),
		zap.Int("removed", len(diff.RemovedIDs)),
		zap.Int("updated", len(diff.UpdatedIDs)),
	)
	p.broadcast(domain.CatalogUpdate{State: next, Diff: diff, Source: source})
	return nil
}

func (p *WatchingProvider) broadcast(update domain.CatalogUpdate) {
	p.subsMu.Lock()
	subs := make([]chan domain.CatalogUpdate, 0, len(p.subs))
	for ch := range p.subs {
		subs = append(subs, ch)
	}
	p.subsMu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (p *WatchingProvider) runWatcher(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Warn("catalog watcher failed", zap.Error(err))
		return
	}
	defer watcher.Close()

	// Watch the directory rather than the file so atomic saves
	// (rename-over) keep the watch alive.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		p.logger.Warn("catalog watcher add failed", zap.String("path", p.path), zap.Error(err))
		return
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-watcher.Errors:
			if err != nil {
				p.logger.Warn("catalog watcher error", zap.Error(err))
			}
		case event := <-watcher.Events:
			if filepath.Base(event.Name) != filepath.Base(p.path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(defaultReloadDebounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(defaultReloadDebounce)
		case <-timerChan(timer):
			timer = nil
			if err := p.reload(ctx, domain.CatalogUpdateSourceWatch); err != nil {
				p.logger.Warn("catalog reload failed; keeping previous snapshot", zap.Error(err))
			}
		}
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
