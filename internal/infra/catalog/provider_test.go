package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexageeky/internal/domain"
)

func writeCatalogFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestStaticProvider_EmbeddedSnapshot(t *testing.T) {
	provider, err := NewStaticProvider("", nil)
	require.NoError(t, err)

	state, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Revision)
	assert.Equal(t, 29, state.Catalog.Len())

	// Watch channel is closed immediately; the snapshot never changes.
	ch, err := provider.Watch(context.Background())
	require.NoError(t, err)
	_, open := <-ch
	assert.False(t, open)
}

func TestWatchingProvider_ManualReloadSwapsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalogFile(t, path, `
tools:
  - id: "1"
    title: One
    url: https://example.com/1
    category: Misc
`)

	provider, err := NewWatchingProvider(context.Background(), path, nil, nil)
	require.NoError(t, err)

	before, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, before.Catalog.Len())

	writeCatalogFile(t, path, `
tools:
  - id: "1"
    title: One
    url: https://example.com/1
    category: Misc
  - id: "2"
    title: Two
    url: https://example.com/2
    category: Misc
`)
	require.NoError(t, provider.Reload(context.Background()))

	after, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, after.Catalog.Len())
	assert.Equal(t, before.Revision+1, after.Revision)
}

func TestWatchingProvider_ReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalogFile(t, path, `
tools:
  - id: "1"
    title: One
    url: https://example.com/1
    category: Misc
`)

	var reloadErrors int
	provider, err := NewWatchingProvider(context.Background(), path, nil, func(error) { reloadErrors++ })
	require.NoError(t, err)

	writeCatalogFile(t, path, "tools: [")
	require.Error(t, provider.Reload(context.Background()))
	assert.Equal(t, 1, reloadErrors)

	state, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, state.Catalog.Len())
	assert.Equal(t, uint64(1), state.Revision)
}

func TestWatchingProvider_NoopReloadKeepsRevision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalogFile(t, path, `
tools:
  - id: "1"
    title: One
    url: https://example.com/1
    category: Misc
`)

	provider, err := NewWatchingProvider(context.Background(), path, nil, nil)
	require.NoError(t, err)
	require.NoError(t, provider.Reload(context.Background()))

	state, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), state.Revision)
}

func TestWatchingProvider_BroadcastsDiffToWatchers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalogFile(t, path, `
tools:
  - id: "1"
    title: One
    url: https://example.com/1
    category: Misc
`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := NewWatchingProvider(ctx, path, nil, nil)
	require.NoError(t, err)

	updates, err := provider.Watch(ctx)
	require.NoError(t, err)

	writeCatalogFile(t, path, `
tools:
  - id: "2"
    title: Two
    url: https://example.com/2
    category: Misc
`)
	require.NoError(t, provider.Reload(ctx))

	select {
	case update := <-updates:
		assert.Equal(t, []string{"2"}, update.Diff.AddedIDs)
		assert.Equal(t, []string{"1"}, update.Diff.RemovedIDs)
		assert.Equal(t, domain.CatalogUpdateSourceManual, update.Source)
	case <-time.After(time.Second):
		t.Fatal("no catalog update received")
	}
}
