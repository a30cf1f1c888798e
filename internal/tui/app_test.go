package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/apiclient"
	"whoami/app/internal/tui/cache"
	"whoami/app/internal/tui/state"
	"whoami/app/internal/tui/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating state store: %v", err)
	}

	client, err := apiclient.New(apiclient.Options{BaseURL: "http://127.0.0.1:1", Logger: logger})
	if err != nil {
		t.Fatalf("creating api client: %v", err)
	}

	queryCache, err := cache.New(cache.Options{Store: store, Logger: logger})
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	prefs, err := theme.NewPreferenceStore(theme.PreferenceOptions{
		Store:  store,
		Probe:  func() theme.ThemeKey { return theme.KeyDark },
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("creating preference store: %v", err)
	}
	t.Cleanup(prefs.Close)

	colors, err := theme.NewColorStore(store, logger)
	if err != nil {
		t.Fatalf("creating color store: %v", err)
	}

	model, err := NewModel(Options{
		Client:      client,
		Cache:       queryCache,
		Preferences: prefs,
		Colors:      colors,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	return model
}

func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+k":
		msg = tea.KeyMsg{Type: tea.KeyCtrlK}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModelRequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := NewModel(Options{}); err == nil {
		t.Fatal("expected an error without a client")
	}
}

func TestNumberKeysNavigate(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m, cmd := pressKey(t, m, "2")
	if m.page != pageProjects {
		t.Fatalf("expected projects page, got %v", m.page)
	}
	if !m.loading {
		t.Fatal("expected an outstanding load after navigating")
	}
	if cmd == nil {
		t.Fatal("expected a load command")
	}

	m, _ = pressKey(t, m, "0")
	if m.page != pageHome {
		t.Fatalf("expected home page, got %v", m.page)
	}
}

func TestProjectsListOpensDetail(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.page = pageProjects
	m.loading = false

	next, _ := m.Update(projectsLoadedMsg{page: 1, list: &apiclient.ProjectList{
		Data: []apiclient.Project{
			{Slug: "alpha", Name: "Alpha"},
			{Slug: "beta", Name: "Beta"},
		},
		Meta: apiclient.PageMeta{Page: 1, TotalPages: 1, Total: 2},
	}})
	m = next.(Model)

	m, _ = pressKey(t, m, "down")
	if m.projectCursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.projectCursor)
	}

	m, cmd := pressKey(t, m, "enter")
	if m.page != pageProjectDetail {
		t.Fatalf("expected project detail page, got %v", m.page)
	}
	if cmd == nil {
		t.Fatal("expected the detail load command")
	}

	next, _ = m.Update(projectDetailLoadedMsg{project: &apiclient.Project{Slug: "beta", Name: "Beta"}})
	m = next.(Model)
	if m.projectDetail == nil || m.projectDetail.Slug != "beta" {
		t.Fatalf("expected the beta project loaded, got %+v", m.projectDetail)
	}

	m, _ = pressKey(t, m, "esc")
	if m.page != pageProjects {
		t.Fatalf("expected to return to the projects list, got %v", m.page)
	}
	if m.projectDetail != nil {
		t.Fatal("expected the detail to be cleared on back")
	}
}

func TestStaleSpinnerTickIgnored(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m, _ = pressKey(t, m, "1")
	stale := m.loadToken - 1

	next, _ := m.Update(showSpinnerMsg{token: stale})
	m = next.(Model)
	if m.spinnerShown {
		t.Fatal("a stale tick must not show the spinner")
	}

	next, _ = m.Update(showSpinnerMsg{token: m.loadToken})
	m = next.(Model)
	if !m.spinnerShown {
		t.Fatal("the current tick should show the spinner")
	}

	next, _ = m.Update(postsLoadedMsg{page: 1, list: &apiclient.PostList{}})
	m = next.(Model)
	if m.spinnerShown || m.loading {
		t.Fatal("a finished load should clear the spinner")
	}
}

func TestLoadErrorUsesServerDetail(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	next, _ := m.Update(postsLoadedMsg{page: 1, err: &apiclient.APIError{
		Status: 404, StatusText: "Not Found", Detail: "Post not found",
	}})
	m = next.(Model)
	if m.errText != "Post not found" {
		t.Fatalf("expected the server detail, got %q", m.errText)
	}
}

func TestPaletteSwallowsKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m, _ = pressKey(t, m, "ctrl+k")
	if !m.palette.Visible() {
		t.Fatal("expected the palette to open")
	}

	m, _ = pressKey(t, m, "1")
	if m.page != pageHome {
		t.Fatalf("a number key must not navigate while the palette is open, got %v", m.page)
	}
}
