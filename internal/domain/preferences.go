package domain

// RecentlyViewedLimit bounds the recently-viewed ring: older entries fall
// off once ten distinct tools have been visited.
const RecentlyViewedLimit = 10

type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// DefaultLanguage is substituted for any unsupported language value.
const DefaultLanguage = LanguageEnglish

// NormalizeViewMode maps unknown values to grid.
func NormalizeViewMode(value string) ViewMode {
	if ViewMode(value) == ViewModeList {
		return ViewModeList
	}
	return ViewModeGrid
}

// NormalizeTheme maps unknown values to light.
func NormalizeTheme(value string) Theme {
	switch Theme(value) {
	case ThemeDark:
		return ThemeDark
	case ThemeSystem:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// NormalizeLanguage accepts only hi; everything else falls back to the
// default. The value may originate from untrusted client state.
func NormalizeLanguage(value string) Language {
	if Language(value) == LanguageHindi {
		return LanguageHindi
	}
	return DefaultLanguage
}

// Settings is the secondary representation of theme/language/view-mode
// plus display flags. It must agree with the primary Preferences fields
// after every mutation; all transitions funnel through syncSettings to
// keep that invariant.
type Settings struct {
	Theme              Theme    `json:"theme"`
	Language           Language `json:"language"`
	GridView           bool     `json:"gridView"`
	AutoplayAnimations bool     `json:"autoplayAnimations"`
	ShowRecentlyViewed bool     `json:"showRecentlyViewed"`
}

// SettingsPatch is a partial settings update; nil fields are untouched.
type SettingsPatch struct {
	Theme              *Theme    `json:"theme,omitempty"`
	Language           *Language `json:"language,omitempty"`
	GridView           *bool     `json:"gridView,omitempty"`
	AutoplayAnimations *bool     `json:"autoplayAnimations,omitempty"`
	ShowRecentlyViewed *bool     `json:"showRecentlyViewed,omitempty"`
}

// Preferences is the per-session persisted state: filters, bookmarks,
// visit history, and UI flags.
type Preferences struct {
	ViewMode         ViewMode `json:"viewMode"`
	SearchQuery      string   `json:"searchQuery"`
	SelectedCategory string   `json:"selectedCategory"`
	SelectedTags     []string `json:"selectedTags"`
	Theme            Theme    `json:"theme"`
	Language         Language `json:"language"`
	SidebarOpen      bool     `json:"sidebarOpen"`
	Favorites        []string `json:"favorites"`
	RecentlyViewed   []string `json:"recentlyViewed"`
	Settings         Settings `json:"settings"`
}

// DefaultPreferences returns the state a fresh session starts from.
func DefaultPreferences() Preferences {
	return Preferences{
		ViewMode:       ViewModeGrid,
		SelectedTags:   []string{},
		Theme:          ThemeLight,
		Language:       DefaultLanguage,
		SidebarOpen:    true,
		Favorites:      []string{},
		RecentlyViewed: []string{},
		Settings: Settings{
			Theme:              ThemeLight,
			Language:           DefaultLanguage,
			GridView:           true,
			AutoplayAnimations: true,
			ShowRecentlyViewed: true,
		},
	}
}

// Normalize repairs a rehydrated Preferences: unknown enum values fall
// back to defaults, the recently-viewed ring is re-bounded, nil slices
// become empty, and the settings mirror is re-synced.
func (p *Preferences) Normalize() {
	p.ViewMode = NormalizeViewMode(string(p.ViewMode))
	p.Theme = NormalizeTheme(string(p.Theme))
	p.Language = NormalizeLanguage(string(p.Language))
	if p.SelectedTags == nil {
		p.SelectedTags = []string{}
	}
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	if p.RecentlyViewed == nil {
		p.RecentlyViewed = []string{}
	}
	if len(p.RecentlyViewed) > RecentlyViewedLimit {
		p.RecentlyViewed = p.RecentlyViewed[:RecentlyViewedLimit]
	}
	p.syncSettings()
}

// syncSettings pushes the primary fields into the mirror. Every mutation
// ends here so the two representations cannot diverge.
func (p *Preferences) syncSettings() {
	p.Settings.Theme = p.Theme
	p.Settings.Language = p.Language
	p.Settings.GridView = p.ViewMode == ViewModeGrid
}

func (p *Preferences) SetViewMode(mode ViewMode) {
	p.ViewMode = NormalizeViewMode(string(mode))
	p.syncSettings()
}

func (p *Preferences) SetSearchQuery(query string) {
	p.SearchQuery = query
}

// ToggleFavorite removes the id when present, appends it otherwise.
// Two invocations restore the original set. The id is not validated
// against the catalog; rendering treats absent ids as a no-op.
func (p *Preferences) ToggleFavorite(id string) {
	for i, existing := range p.Favorites {
		if existing == id {
			p.Favorites = append(p.Favorites[:i:i], p.Favorites[i+1:]...)
			return
		}
	}
	p.Favorites = append(p.Favorites, id)
}

// IsFavorite reports favorites membership.
func (p *Preferences) IsFavorite(id string) bool {
	for _, existing := range p.Favorites {
		if existing == id {
			return true
		}
	}
	return false
}

// SetSelectedCategory replaces the category filter; empty clears it.
func (p *Preferences) SetSelectedCategory(category string) {
	p.SelectedCategory = category
}

func (p *Preferences) SetSelectedTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	p.SelectedTags = tags
}

// ToggleTag adds the tag when absent, removes it when present.
func (p *Preferences) ToggleTag(tag string) {
	for i, existing := range p.SelectedTags {
		if existing == tag {
			p.SelectedTags = append(p.SelectedTags[:i:i], p.SelectedTags[i+1:]...)
			return
		}
	}
	p.SelectedTags = append(p.SelectedTags, tag)
}

// AddToRecentlyViewed moves the id to the front of the ring, deduplicated
// and truncated to RecentlyViewedLimit entries.
func (p *Preferences) AddToRecentlyViewed(id string) {
	filtered := make([]string, 0, len(p.RecentlyViewed)+1)
	filtered = append(filtered, id)
	for _, existing := range p.RecentlyViewed {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) > RecentlyViewedLimit {
		filtered = filtered[:RecentlyViewedLimit]
	}
	p.RecentlyViewed = filtered
}

func (p *Preferences) ClearRecentlyViewed() {
	p.RecentlyViewed = []string{}
}

// ClearFilters resets the query, category, and tag filters together.
func (p *Preferences) ClearFilters() {
	p.SearchQuery = ""
	p.SelectedCategory = ""
	p.SelectedTags = []string{}
}

func (p *Preferences) SetTheme(theme Theme) {
	p.Theme = NormalizeTheme(string(theme))
	p.syncSettings()
}

// SetLanguage normalizes unsupported values to the default instead of
// rejecting them.
func (p *Preferences) SetLanguage(lang Language) {
	p.Language = NormalizeLanguage(string(lang))
	p.syncSettings()
}

func (p *Preferences) SetSidebarOpen(open bool) {
	p.SidebarOpen = open
}

// UpdateSidebarOpen applies a functional update, for toggle-from-unknown
// call sites such as keyboard shortcuts.
func (p *Preferences) UpdateSidebarOpen(fn func(bool) bool) {
	if fn == nil {
		return
	}
	p.SidebarOpen = fn(p.SidebarOpen)
}

// ApplySettings merges a partial settings update and propagates theme,
// language, and view mode (via gridView) back onto the primary fields.
// This is the one path where the mirror drives the primary state.
func (p *Preferences) ApplySettings(patch SettingsPatch) {
	if patch.Theme != nil {
		p.Theme = NormalizeTheme(string(*patch.Theme))
	}
	if patch.Language != nil {
		p.Language = NormalizeLanguage(string(*patch.Language))
	}
	if patch.GridView != nil {
		if *patch.GridView {
			p.ViewMode = ViewModeGrid
		} else {
			p.ViewMode = ViewModeList
		}
	}
	if patch.AutoplayAnimations != nil {
		p.Settings.AutoplayAnimations = *patch.AutoplayAnimations
	}
	if patch.ShowRecentlyViewed != nil {
		p.Settings.ShowRecentlyViewed = *patch.ShowRecentlyViewed
	}
	p.syncSettings()
}

// FilterCriteria derives the filter pipeline input from the session's
// persisted filter state.
func (p *Preferences) FilterCriteria() FilterCriteria {
	return FilterCriteria{
		Query:    p.SearchQuery,
		Category: p.SelectedCategory,
		Tags:     p.SelectedTags,
	}
}
