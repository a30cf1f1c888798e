package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"whoami/app/internal/tui/theme"
)

type itemKind int

const (
	kindNavigate itemKind = iota
	kindThemePicker
	kindColorPicker
	kindThemeValue
	kindColorValue
)

// NavigateMsg asks the app to switch to a page.
type NavigateMsg struct {
	Target string
}

// ClosedMsg reports that the palette closed.
type ClosedMsg struct{}

// Item is one row in the command palette.
type Item struct {
	kind   itemKind
	title  string
	target string
	pref   theme.ThemePreference
	color  theme.ColorTheme
}

type itemSource []Item

func (s itemSource) String(i int) string { return s[i].title }
func (s itemSource) Len() int            { return len(s) }

// Model is the command palette overlay: navigation commands plus theme and
// accent pickers with live preview.
type Model struct {
	prefs  *theme.PreferenceStore
	colors *theme.ColorStore

	input    textinput.Model
	items    []Item
	filtered []Item
	cursor   int
	visible  bool

	themePreview Preview[theme.ThemePreference]
	colorPreview Preview[theme.ColorTheme]
}

// New builds the palette over the two theme stores.
func New(prefs *theme.PreferenceStore, colors *theme.ColorStore) Model {
	input := textinput.New()
	input.Placeholder = "Type a command or search..."
	input.Prompt = "> "
	input.CharLimit = 64

	return Model{
		prefs:  prefs,
		colors: colors,
		input:  input,
		items:  buildItems(),
	}
}

func buildItems() []Item {
	items := []Item{
		{kind: kindNavigate, title: "Go to Home", target: "home"},
		{kind: kindNavigate, title: "Go to Posts", target: "posts"},
		{kind: kindNavigate, title: "Go to Projects", target: "projects"},
		{kind: kindNavigate, title: "Go to Resume", target: "resume"},
		{kind: kindNavigate, title: "Go to Contact", target: "contact"},
		{kind: kindThemePicker, title: "Theme"},
		{kind: kindColorPicker, title: "Accent color"},
	}

	for _, pref := range []theme.ThemePreference{theme.PreferenceLight, theme.PreferenceDark, theme.PreferenceSystem} {
		items = append(items, Item{
			kind:  kindThemeValue,
			title: "Theme: " + string(pref),
			pref:  pref,
		})
	}
	for _, color := range theme.ColorThemes {
		items = append(items, Item{
			kind:  kindColorValue,
			title: "Color: " + string(color),
			color: color,
		})
	}

	return items
}

// Visible reports whether the palette is currently shown.
func (m Model) Visible() bool {
	return m.visible
}

// Open shows the palette, snapshotting both preferences for revert-on-close.
func (m Model) Open() Model {
	m.visible = true
	m.cursor = 0
	m.input.SetValue("")
	m.input.Focus()
	m.filtered = m.items

	m.themePreview.Open(m.prefs.Preference())
	m.colorPreview.Open(m.colors.Current())

	return m
}

// Close hides the palette, reverting any preference that was previewed but
// never committed.
func (m Model) Close() (Model, tea.Cmd) {
	if original, revert := m.themePreview.Close(m.prefs.Preference()); revert {
		m.prefs.SetTheme(original)
	}
	if original, revert := m.colorPreview.Close(m.colors.Current()); revert {
		m.colors.SetColorTheme(original)
	}

	m.visible = false
	m.input.Blur()

	return m, func() tea.Msg { return ClosedMsg{} }
}

// Update handles key input while the palette is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m.Close()

	case "up":
		m.moveCursor(-1)
		m.previewHighlighted()
		return m, nil

	case "down":
		m.moveCursor(1)
		m.previewHighlighted()
		return m, nil

	case "left":
		m.cycleHighlighted(-1)
		return m, nil

	case "right":
		m.cycleHighlighted(1)
		return m, nil

	case "enter":
		return m.selectHighlighted()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.refilter()
		return m, cmd
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.filtered)) % len(m.filtered)
}

// previewHighlighted applies a highlighted theme/color value live while the
// search text is non-empty. Highlighting never commits.
func (m *Model) previewHighlighted() {
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}

	item, ok := m.highlighted()
	if !ok {
		return
	}

	switch item.kind {
	case kindThemeValue:
		m.prefs.SetTheme(item.pref)
	case kindColorValue:
		m.colors.SetColorTheme(item.color)
	}
}

// cycleHighlighted steps the picker rows through their enumerated values,
// applying each step live without committing.
func (m *Model) cycleHighlighted(delta int) {
	item, ok := m.highlighted()
	if !ok {
		return
	}

	switch item.kind {
	case kindThemePicker:
		m.prefs.SetTheme(nextPreference(m.prefs.Preference(), delta))
	case kindColorPicker:
		m.colors.SetColorTheme(theme.NextColorTheme(m.colors.Current(), delta))
	}
}

func (m Model) selectHighlighted() (Model, tea.Cmd) {
	item, ok := m.highlighted()
	if !ok {
		return m.Close()
	}

	switch item.kind {
	case kindNavigate:
		target := item.target
		closed, closeCmd := m.Close()
		return closed, tea.Batch(closeCmd, func() tea.Msg { return NavigateMsg{Target: target} })

	case kindThemePicker:
		m.themePreview.Commit()
		return m.Close()

	case kindColorPicker:
		m.colorPreview.Commit()
		return m.Close()

	case kindThemeValue:
		m.prefs.SetTheme(item.pref)
		m.themePreview.Commit()
		return m.Close()

	case kindColorValue:
		m.colors.SetColorTheme(item.color)
		m.colorPreview.Commit()
		return m.Close()
	}

	return m, nil
}

func (m Model) highlighted() (Item, bool) {
	if len(m.filtered) == 0 || m.cursor < 0 || m.cursor >= len(m.filtered) {
		return Item{}, false
	}
	return m.filtered[m.cursor], true
}

func (m *Model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.filtered = m.items
		m.cursor = 0
		return
	}

	matches := fuzzy.FindFrom(query, itemSource(m.items))
	filtered := make([]Item, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, m.items[match.Index])
	}

	m.filtered = filtered
	m.cursor = 0
	m.previewHighlighted()
}

func nextPreference(current theme.ThemePreference, delta int) theme.ThemePreference {
	order := []theme.ThemePreference{theme.PreferenceLight, theme.PreferenceDark, theme.PreferenceSystem}

	index := 0
	for i, candidate := range order {
		if candidate == current {
			index = i
			break
		}
	}
	index = (index + delta + len(order)) % len(order)
	return order[index]
}

// View renders the palette overlay.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	table := theme.Table(m.colors.Current(), m.prefs.Resolved())

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(table.Border).
		Padding(0, 1).
		Width(48)

	selectedStyle := lipgloss.NewStyle().
		Foreground(table.Accent).
		Bold(true)
	normalStyle := lipgloss.NewStyle().
		Foreground(table.Foreground)
	hintStyle := lipgloss.NewStyle().
		Foreground(table.Muted)

	var rows []string
	rows = append(rows, m.input.View(), "")

	for i, item := range m.filtered {
		label := item.title
		switch item.kind {
		case kindThemePicker:
			label = fmt.Sprintf("Theme  ‹ %s ›", m.prefs.Preference())
		case kindColorPicker:
			label = fmt.Sprintf("Accent ‹ %s ›", m.colors.Current())
		}

		if i == m.cursor {
			rows = append(rows, selectedStyle.Render("▸ "+label))
		} else {
			rows = append(rows, normalStyle.Render("  "+label))
		}
	}

	if len(m.filtered) == 0 {
		rows = append(rows, hintStyle.Render("  No matching commands"))
	}

	rows = append(rows, "", hintStyle.Render("↑↓ navigate · ←→ cycle · enter select · esc close"))

	return boxStyle.Render(strings.Join(rows, "\n"))
}
