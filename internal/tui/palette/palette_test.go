package palette

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"whoami/app/internal/tui/state"
	"whoami/app/internal/tui/theme"
)

func TestArrowCycleThenEscapeReverts(t *testing.T) {
	t.Parallel()

	m, _, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()
	m = moveCursorTo(t, m, kindColorPicker)

	// forest -> crimson -> ocean, live but uncommitted.
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyRight))

	if got := colors.Current(); got != theme.ColorOcean {
		t.Fatalf("expected live preview at ocean, got %s", got)
	}

	m, _ = m.Update(key(tea.KeyEsc))

	if m.Visible() {
		t.Fatalf("expected palette closed after escape")
	}
	if got := colors.Current(); got != theme.ColorForest {
		t.Fatalf("expected revert to forest after escape, got %s", got)
	}
}

func TestArrowCycleThenEnterCommits(t *testing.T) {
	t.Parallel()

	m, _, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()
	m = moveCursorTo(t, m, kindColorPicker)

	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyEnter))

	if m.Visible() {
		t.Fatalf("expected enter to close the palette")
	}
	if got := colors.Current(); got != theme.ColorOcean {
		t.Fatalf("expected committed ocean, got %s", got)
	}
}

func TestThemeAndColorRevertIndependently(t *testing.T) {
	t.Parallel()

	m, prefs, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()

	// Commit a color change, preview a theme change, close.
	m = moveCursorTo(t, m, kindColorPicker)
	m, _ = m.Update(key(tea.KeyRight))
	m.colorPreview.Commit()

	m = moveCursorTo(t, m, kindThemePicker)
	m, _ = m.Update(key(tea.KeyRight))

	m, _ = m.Update(key(tea.KeyEsc))

	if got := colors.Current(); got != theme.ColorCrimson {
		t.Fatalf("expected committed color kept, got %s", got)
	}
	if got := prefs.Preference(); got != theme.PreferenceDark {
		t.Fatalf("expected uncommitted theme reverted to dark, got %s", got)
	}
}

func TestThemePickerCyclesPreferenceOrder(t *testing.T) {
	t.Parallel()

	m, prefs, _ := newTestPalette(t, theme.PreferenceLight, theme.ColorForest)

	m = m.Open()
	m = moveCursorTo(t, m, kindThemePicker)

	expected := []theme.ThemePreference{theme.PreferenceDark, theme.PreferenceSystem, theme.PreferenceLight}
	for _, want := range expected {
		m, _ = m.Update(key(tea.KeyRight))
		if got := prefs.Preference(); got != want {
			t.Fatalf("expected cycle to %s, got %s", want, got)
		}
	}

	m, _ = m.Update(key(tea.KeyLeft))
	if got := prefs.Preference(); got != theme.PreferenceSystem {
		t.Fatalf("expected left arrow to step back to system, got %s", got)
	}
}

func TestSearchHighlightPreviewsValue(t *testing.T) {
	t.Parallel()

	m, _, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ocean")})

	if got := colors.Current(); got != theme.ColorOcean {
		t.Fatalf("expected search highlight to preview ocean, got %s", got)
	}

	m, _ = m.Update(key(tea.KeyEsc))

	if got := colors.Current(); got != theme.ColorForest {
		t.Fatalf("expected preview reverted on escape, got %s", got)
	}
}

func TestEnterOnSearchResultCommits(t *testing.T) {
	t.Parallel()

	m, _, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ocean")})
	m, _ = m.Update(key(tea.KeyEnter))

	if got := colors.Current(); got != theme.ColorOcean {
		t.Fatalf("expected enter on search result to commit ocean, got %s", got)
	}
}

func TestNavigationEmitsNavigateMsg(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	m = m.Open()
	m, cmd := m.Update(key(tea.KeyEnter))

	if m.Visible() {
		t.Fatalf("expected palette closed after selecting a navigation entry")
	}
	if cmd == nil {
		t.Fatalf("expected a command carrying the navigation message")
	}

	if !containsNavigate(cmd(), "home") {
		t.Fatalf("expected NavigateMsg to home")
	}
}

func TestReopenSnapshotsFreshValue(t *testing.T) {
	t.Parallel()

	m, _, colors := newTestPalette(t, theme.PreferenceDark, theme.ColorForest)

	// First session commits ocean.
	m = m.Open()
	m = moveCursorTo(t, m, kindColorPicker)
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyEnter))

	// Second session previews and bails: must revert to ocean, not forest.
	m = m.Open()
	m = moveCursorTo(t, m, kindColorPicker)
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyEsc))

	if got := colors.Current(); got != theme.ColorOcean {
		t.Fatalf("expected second session to revert to ocean, got %s", got)
	}
}

// helpers

func newTestPalette(t *testing.T, pref theme.ThemePreference, color theme.ColorTheme) (Model, *theme.PreferenceStore, *theme.ColorStore) {
	t.Helper()

	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	prefs, err := theme.NewPreferenceStore(theme.PreferenceOptions{
		Store: store,
		Probe: func() theme.ThemeKey { return theme.KeyDark },
	})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	t.Cleanup(prefs.Close)
	prefs.SetTheme(pref)

	colors, err := theme.NewColorStore(store, nil)
	if err != nil {
		t.Fatalf("NewColorStore returned error: %v", err)
	}
	colors.SetColorTheme(color)

	return New(prefs, colors), prefs, colors
}

func moveCursorTo(t *testing.T, m Model, kind itemKind) Model {
	t.Helper()

	for range m.filtered {
		if item, ok := m.highlighted(); ok && item.kind == kind {
			return m
		}
		m, _ = m.Update(key(tea.KeyDown))
	}

	t.Fatalf("no item of kind %d in filtered list", kind)
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func containsNavigate(msg tea.Msg, target string) bool {
	switch v := msg.(type) {
	case NavigateMsg:
		return v.Target == target
	case tea.BatchMsg:
		for _, cmd := range v {
			if cmd != nil && containsNavigate(cmd(), target) {
				return true
			}
		}
	}
	return false
}
