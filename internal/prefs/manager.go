// Package prefs holds the per-session preference state and funnels every
// mutation through a single apply path: mutate, re-sync the settings
// mirror, persist. Persistence failures are best-effort; the in-memory
// state stays authoritative for the session.
package prefs

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hexageeky/internal/domain"
)

// Persistence is the injected storage adapter.
type Persistence interface {
	Load(sessionID string) (domain.Preferences, bool, error)
	Save(sessionID string, prefs domain.Preferences) error
}

// Manager owns the live preference state for every active session.
// The runtime is request-driven; the mutex makes each mutation an
// atomic read-modify-write even under concurrent requests for the
// same session.
type Manager struct {
	mu         sync.Mutex
	store      Persistence
	logger     *zap.Logger
	sessions   map[string]*domain.Preferences
	onMutation func(action string)
}

// NewManager wires the manager to its persistence adapter. onMutation,
// when non-nil, is invoked once per applied mutation (metrics hook).
func NewManager(store Persistence, logger *zap.Logger, onMutation func(action string)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:      store,
		logger:     logger.Named("prefs"),
		sessions:   make(map[string]*domain.Preferences),
		onMutation: onMutation,
	}
}

// NewSessionID mints an id for clients that arrive without one.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the current preferences for a session, creating defaults
// for a new session.
func (m *Manager) Get(sessionID string) (domain.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.ensure(sessionID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return clone(*state), nil
}

// Patch is a partial update over the directly settable fields; nil
// fields are untouched. Over JSON an explicit null also decodes to a
// nil pointer, so clearing SearchQuery or SelectedCategory takes an
// empty string, not null.
type Patch struct {
	ViewMode         *domain.ViewMode `json:"viewMode,omitempty"`
	SearchQuery      *string          `json:"searchQuery,omitempty"`
	SelectedCategory *string          `json:"selectedCategory,omitempty"`
	SelectedTags     []string         `json:"selectedTags,omitempty"`
	Theme            *domain.Theme    `json:"theme,omitempty"`
	Language         *domain.Language `json:"language,omitempty"`
	SidebarOpen      *bool            `json:"sidebarOpen,omitempty"`
}

// Apply merges a patch in one transition.
func (m *Manager) Apply(sessionID string, patch Patch) (domain.Preferences, error) {
	return m.apply(sessionID, "patch", func(p *domain.Preferences) {
		if patch.ViewMode != nil {
			p.SetViewMode(*patch.ViewMode)
		}
		if patch.SearchQuery != nil {
			p.SetSearchQuery(*patch.SearchQuery)
		}
		if patch.SelectedCategory != nil {
			p.SetSelectedCategory(*patch.SelectedCategory)
		}
		if patch.SelectedTags != nil {
			p.SetSelectedTags(patch.SelectedTags)
		}
		if patch.Theme != nil {
			p.SetTheme(*patch.Theme)
		}
		if patch.Language != nil {
			p.SetLanguage(*patch.Language)
		}
		if patch.SidebarOpen != nil {
			p.SetSidebarOpen(*patch.SidebarOpen)
		}
	})
}

func (m *Manager) SetViewMode(sessionID string, mode domain.ViewMode) (domain.Preferences, error) {
	return m.apply(sessionID, "set_view_mode", func(p *domain.Preferences) { p.SetViewMode(mode) })
}

func (m *Manager) SetSearchQuery(sessionID, query string) (domain.Preferences, error) {
	return m.apply(sessionID, "set_search_query", func(p *domain.Preferences) { p.SetSearchQuery(query) })
}

func (m *Manager) ToggleFavorite(sessionID, toolID string) (domain.Preferences, error) {
	return m.apply(sessionID, "toggle_favorite", func(p *domain.Preferences) { p.ToggleFavorite(toolID) })
}

func (m *Manager) SetSelectedCategory(sessionID, category string) (domain.Preferences, error) {
	return m.apply(sessionID, "set_selected_category", func(p *domain.Preferences) { p.SetSelectedCategory(category) })
}

func (m *Manager) SetSelectedTags(sessionID string, tags []string) (domain.Preferences, error) {
	return m.apply(sessionID, "set_selected_tags", func(p *domain.Preferences) { p.SetSelectedTags(tags) })
}

func (m *Manager) ToggleTag(sessionID, tag string) (domain.Preferences, error) {
	return m.apply(sessionID, "toggle_tag", func(p *domain.Preferences) { p.ToggleTag(tag) })
}

// RecordView moves the tool id to the front of the recently-viewed
// ring. The id is not validated against the catalog.
func (m *Manager) RecordView(sessionID, toolID string) (domain.Preferences, error) {
	return m.apply(sessionID, "record_view", func(p *domain.Preferences) { p.AddToRecentlyViewed(toolID) })
}

func (m *Manager) ClearRecentlyViewed(sessionID string) (domain.Preferences, error) {
	return m.apply(sessionID, "clear_recently_viewed", func(p *domain.Preferences) { p.ClearRecentlyViewed() })
}

func (m *Manager) ClearFilters(sessionID string) (domain.Preferences, error) {
	return m.apply(sessionID, "clear_filters", func(p *domain.Preferences) { p.ClearFilters() })
}

func (m *Manager) SetTheme(sessionID string, theme domain.Theme) (domain.Preferences, error) {
	return m.apply(sessionID, "set_theme", func(p *domain.Preferences) { p.SetTheme(theme) })
}

func (m *Manager) SetLanguage(sessionID string, lang domain.Language) (domain.Preferences, error) {
	return m.apply(sessionID, "set_language", func(p *domain.Preferences) { p.SetLanguage(lang) })
}

// SetSidebarOpen sets a literal value.
func (m *Manager) SetSidebarOpen(sessionID string, open bool) (domain.Preferences, error) {
	return m.apply(sessionID, "set_sidebar_open", func(p *domain.Preferences) { p.SetSidebarOpen(open) })
}

// ToggleSidebar flips the sidebar via a functional update, so the
// caller never needs to read the current value first.
func (m *Manager) ToggleSidebar(sessionID string) (domain.Preferences, error) {
	return m.apply(sessionID, "toggle_sidebar", func(p *domain.Preferences) {
		p.UpdateSidebarOpen(func(prev bool) bool { return !prev })
	})
}

// UpdateSettings merges a partial settings patch, propagating theme,
// language, and view mode back onto the primary fields.
func (m *Manager) UpdateSettings(sessionID string, patch domain.SettingsPatch) (domain.Preferences, error) {
	return m.apply(sessionID, "update_settings", func(p *domain.Preferences) { p.ApplySettings(patch) })
}

func (m *Manager) apply(sessionID, action string, fn func(*domain.Preferences)) (domain.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.ensure(sessionID)
	if err != nil {
		return domain.Preferences{}, err
	}
	fn(state)
	if err := m.store.Save(sessionID, *state); err != nil {
		m.logger.Warn("persist preferences failed",
			zap.String("session", sessionID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
	if m.onMutation != nil {
		m.onMutation(action)
	}
	return clone(*state), nil
}

// ensure returns the live state for a session, rehydrating from the
// adapter on first touch. Caller holds the lock.
func (m *Manager) ensure(sessionID string) (*domain.Preferences, error) {
	if state, ok := m.sessions[sessionID]; ok {
		return state, nil
	}
	loaded, _, err := m.store.Load(sessionID)
	if err != nil {
		return nil, err
	}
	state := clone(loaded)
	m.sessions[sessionID] = &state
	return &state, nil
}

// clone deep-copies the slice-valued fields so callers cannot alias the
// live session state.
func clone(p domain.Preferences) domain.Preferences {
	p.SelectedTags = append([]string{}, p.SelectedTags...)
	p.Favorites = append([]string{}, p.Favorites...)
	p.RecentlyViewed = append([]string{}, p.RecentlyViewed...)
	return p
}
