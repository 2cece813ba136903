package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreferences_MirrorAgrees(t *testing.T) {
	prefs := DefaultPreferences()

	assert.Equal(t, ViewModeGrid, prefs.ViewMode)
	assert.Equal(t, ThemeLight, prefs.Theme)
	assert.Equal(t, DefaultLanguage, prefs.Language)
	assert.Equal(t, prefs.Theme, prefs.Settings.Theme)
	assert.Equal(t, prefs.Language, prefs.Settings.Language)
	assert.True(t, prefs.Settings.GridView)
}

func TestToggleFavorite_TwiceRestoresOriginalSet(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.ToggleFavorite("3")
	original := append([]string(nil), prefs.Favorites...)

	prefs.ToggleFavorite("7")
	prefs.ToggleFavorite("7")

	assert.Equal(t, original, prefs.Favorites)
}

func TestToggleFavorite_RemovesFromMiddle(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.ToggleFavorite("a")
	prefs.ToggleFavorite("b")
	prefs.ToggleFavorite("c")

	prefs.ToggleFavorite("b")

	assert.Equal(t, []string{"a", "c"}, prefs.Favorites)
	assert.True(t, prefs.IsFavorite("a"))
	assert.False(t, prefs.IsFavorite("b"))
}

func TestAddToRecentlyViewed_DedupMovesToFront(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.AddToRecentlyViewed("1")
	prefs.AddToRecentlyViewed("2")
	prefs.AddToRecentlyViewed("1")

	assert.Equal(t, []string{"1", "2"}, prefs.RecentlyViewed)
}

func TestAddToRecentlyViewed_BoundedAtLimit(t *testing.T) {
	prefs := DefaultPreferences()
	for i := 0; i < RecentlyViewedLimit+1; i++ {
		prefs.AddToRecentlyViewed(fmt.Sprintf("tool-%d", i))
	}

	require.Len(t, prefs.RecentlyViewed, RecentlyViewedLimit)
	assert.Equal(t, "tool-10", prefs.RecentlyViewed[0])
	assert.NotContains(t, prefs.RecentlyViewed, "tool-0")
}

func TestClearRecentlyViewed(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.AddToRecentlyViewed("1")
	prefs.ClearRecentlyViewed()
	assert.Empty(t, prefs.RecentlyViewed)
}

func TestSetLanguage_UnsupportedFallsBackToDefault(t *testing.T) {
	prefs := DefaultPreferences()

	prefs.SetLanguage(Language("fr"))
	assert.Equal(t, LanguageEnglish, prefs.Language)
	assert.Equal(t, LanguageEnglish, prefs.Settings.Language)

	prefs.SetLanguage(LanguageHindi)
	assert.Equal(t, LanguageHindi, prefs.Language)
	assert.Equal(t, LanguageHindi, prefs.Settings.Language)
}

func TestSetViewMode_UpdatesGridViewMirror(t *testing.T) {
	prefs := DefaultPreferences()

	prefs.SetViewMode(ViewModeList)
	assert.Equal(t, ViewModeList, prefs.ViewMode)
	assert.False(t, prefs.Settings.GridView)

	prefs.SetViewMode(ViewModeGrid)
	assert.True(t, prefs.Settings.GridView)
}

func TestSetTheme_UpdatesMirror(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, prefs.Theme)
	assert.Equal(t, ThemeDark, prefs.Settings.Theme)
}

func TestApplySettings_PropagatesBackToPrimary(t *testing.T) {
	prefs := DefaultPreferences()
	dark := ThemeDark
	hindi := LanguageHindi
	listView := false
	noAutoplay := false

	prefs.ApplySettings(SettingsPatch{
		Theme:              &dark,
		Language:           &hindi,
		GridView:           &listView,
		AutoplayAnimations: &noAutoplay,
	})

	assert.Equal(t, ThemeDark, prefs.Theme)
	assert.Equal(t, LanguageHindi, prefs.Language)
	assert.Equal(t, ViewModeList, prefs.ViewMode)
	assert.False(t, prefs.Settings.AutoplayAnimations)
	assert.Equal(t, prefs.Theme, prefs.Settings.Theme)
	assert.Equal(t, prefs.Language, prefs.Settings.Language)
	assert.False(t, prefs.Settings.GridView)
}

func TestApplySettings_PartialLeavesRestUntouched(t *testing.T) {
	prefs := DefaultPreferences()
	show := false

	prefs.ApplySettings(SettingsPatch{ShowRecentlyViewed: &show})

	assert.False(t, prefs.Settings.ShowRecentlyViewed)
	assert.Equal(t, ThemeLight, prefs.Theme)
	assert.Equal(t, ViewModeGrid, prefs.ViewMode)
}

func TestToggleTag_SetSemantics(t *testing.T) {
	prefs := DefaultPreferences()

	prefs.ToggleTag("ai")
	prefs.ToggleTag("social")
	assert.Equal(t, []string{"ai", "social"}, prefs.SelectedTags)

	prefs.ToggleTag("ai")
	assert.Equal(t, []string{"social"}, prefs.SelectedTags)
}

func TestUpdateSidebarOpen_FunctionalToggle(t *testing.T) {
	prefs := DefaultPreferences()
	open := prefs.SidebarOpen

	prefs.UpdateSidebarOpen(func(prev bool) bool { return !prev })
	assert.Equal(t, !open, prefs.SidebarOpen)

	prefs.UpdateSidebarOpen(func(prev bool) bool { return !prev })
	assert.Equal(t, open, prefs.SidebarOpen)
}

func TestClearFilters(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.SetSearchQuery("bank")
	prefs.SetSelectedCategory("Finance")
	prefs.SetSelectedTags([]string{"upi"})

	prefs.ClearFilters()

	assert.Empty(t, prefs.SearchQuery)
	assert.Empty(t, prefs.SelectedCategory)
	assert.Empty(t, prefs.SelectedTags)
}

func TestNormalize_RepairsRehydratedState(t *testing.T) {
	prefs := Preferences{
		ViewMode: ViewMode("tiles"),
		Theme:    Theme("sepia"),
		Language: Language("fr"),
	}
	for i := 0; i < 15; i++ {
		prefs.RecentlyViewed = append(prefs.RecentlyViewed, fmt.Sprintf("id-%d", i))
	}

	prefs.Normalize()

	assert.Equal(t, ViewModeGrid, prefs.ViewMode)
	assert.Equal(t, ThemeLight, prefs.Theme)
	assert.Equal(t, LanguageEnglish, prefs.Language)
	assert.Len(t, prefs.RecentlyViewed, RecentlyViewedLimit)
	assert.NotNil(t, prefs.Favorites)
	assert.NotNil(t, prefs.SelectedTags)
	assert.Equal(t, prefs.Theme, prefs.Settings.Theme)
}

func TestFilterCriteria_FromPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.SetSearchQuery("bank")
	prefs.SetSelectedCategory("Finance")
	prefs.ToggleTag("upi")

	criteria := prefs.FilterCriteria()
	assert.Equal(t, "bank", criteria.Query)
	assert.Equal(t, "Finance", criteria.Category)
	assert.Equal(t, []string{"upi"}, criteria.Tags)
	assert.False(t, criteria.IsZero())
}
