package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/tui/state"
)

// ColorTheme names one of the fixed accent palettes.
type ColorTheme string

const (
	ColorForest  ColorTheme = "forest"
	ColorCrimson ColorTheme = "crimson"
	ColorOcean   ColorTheme = "ocean"
	ColorAmber   ColorTheme = "amber"
	ColorViolet  ColorTheme = "violet"
	ColorSlate   ColorTheme = "slate"
)

// ColorThemes is the fixed cycling order of accent palettes.
var ColorThemes = []ColorTheme{
	ColorForest, ColorCrimson, ColorOcean, ColorAmber, ColorViolet, ColorSlate,
}

// DefaultColorTheme is used when nothing is persisted.
const DefaultColorTheme = ColorForest

// ColorTable is the set of colors the UI draws with. Palette overrides are
// partial; missing entries fall back to the base table for the resolved key.
type ColorTable struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color
	Border     lipgloss.Color
}

// override carries the subset of colors a palette changes per mode.
type override struct {
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color
	Border     lipgloss.Color
}

var baseTables = map[ThemeKey]ColorTable{
	KeyLight: {
		Background: lipgloss.Color("#fafaf9"),
		Foreground: lipgloss.Color("#1c1917"),
		Muted:      lipgloss.Color("#78716c"),
		Accent:     lipgloss.Color("#16a34a"),
		AccentSoft: lipgloss.Color("#dcfce7"),
		Border:     lipgloss.Color("#d6d3d1"),
	},
	KeyDark: {
		Background: lipgloss.Color("#0c0a09"),
		Foreground: lipgloss.Color("#e7e5e4"),
		Muted:      lipgloss.Color("#a8a29e"),
		Accent:     lipgloss.Color("#4ade80"),
		AccentSoft: lipgloss.Color("#14532d"),
		Border:     lipgloss.Color("#292524"),
	},
}

var paletteOverrides = map[ColorTheme]map[ThemeKey]override{
	ColorForest: {
		KeyLight: {Accent: "#16a34a", AccentSoft: "#dcfce7"},
		KeyDark:  {Accent: "#4ade80", AccentSoft: "#14532d"},
	},
	ColorCrimson: {
		KeyLight: {Accent: "#dc2626", AccentSoft: "#fee2e2"},
		KeyDark:  {Accent: "#f87171", AccentSoft: "#7f1d1d"},
	},
	ColorOcean: {
		KeyLight: {Accent: "#0284c7", AccentSoft: "#e0f2fe"},
		KeyDark:  {Accent: "#38bdf8", AccentSoft: "#0c4a6e"},
	},
	ColorAmber: {
		KeyLight: {Accent: "#d97706", AccentSoft: "#fef3c7"},
		KeyDark:  {Accent: "#fbbf24", AccentSoft: "#78350f"},
	},
	ColorViolet: {
		KeyLight: {Accent: "#7c3aed", AccentSoft: "#ede9fe"},
		KeyDark:  {Accent: "#a78bfa", AccentSoft: "#4c1d95"},
	},
	ColorSlate: {
		KeyLight: {Accent: "#475569", AccentSoft: "#e2e8f0", Border: "#cbd5e1"},
		KeyDark:  {Accent: "#94a3b8", AccentSoft: "#1e293b", Border: "#334155"},
	},
}

// Table returns the effective color table: the base for the resolved key
// merged with the palette's overrides.
func Table(color ColorTheme, key ThemeKey) ColorTable {
	table := baseTables[key]

	modes, ok := paletteOverrides[color]
	if !ok {
		return table
	}
	ov := modes[key]

	if ov.Accent != "" {
		table.Accent = ov.Accent
	}
	if ov.AccentSoft != "" {
		table.AccentSoft = ov.AccentSoft
	}
	if ov.Border != "" {
		table.Border = ov.Border
	}

	return table
}

// ValidColorTheme reports whether name is one of the fixed palettes.
func ValidColorTheme(name ColorTheme) bool {
	for _, candidate := range ColorThemes {
		if candidate == name {
			return true
		}
	}
	return false
}

// NextColorTheme returns the palette after current in cycling order; delta -1
// walks backwards.
func NextColorTheme(current ColorTheme, delta int) ColorTheme {
	index := 0
	for i, candidate := range ColorThemes {
		if candidate == current {
			index = i
			break
		}
	}

	index = (index + delta + len(ColorThemes)) % len(ColorThemes)
	return ColorThemes[index]
}

// ColorStore persists the selected accent palette.
type ColorStore struct {
	mu     sync.Mutex
	store  *state.Store
	logger *logrus.Logger
	value  ColorTheme
}

// NewColorStore loads the persisted palette, defaulting to forest.
func NewColorStore(store *state.Store, logger *logrus.Logger) (*ColorStore, error) {
	if store == nil {
		return nil, eris.New("state store is required")
	}

	cs := &ColorStore{store: store, logger: logger, value: DefaultColorTheme}

	var persisted string
	if found, err := store.Get(state.KeyColorTheme, &persisted); err == nil && found {
		if ValidColorTheme(ColorTheme(persisted)) {
			cs.value = ColorTheme(persisted)
		}
	}

	return cs, nil
}

// Current returns the selected palette.
func (cs *ColorStore) Current() ColorTheme {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.value
}

// SetColorTheme persists and applies the palette synchronously. Unknown names
// are ignored.
func (cs *ColorStore) SetColorTheme(name ColorTheme) {
	if !ValidColorTheme(name) {
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.value = name
	if err := cs.store.Set(state.KeyColorTheme, string(name)); err != nil && cs.logger != nil {
		cs.logger.WithField("error", err.Error()).Debug("persisting color theme")
	}
}
