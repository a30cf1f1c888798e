package theme

import (
	"sync"
	"testing"
	"time"

	"whoami/app/internal/tui/state"
)

func TestResolveReturnsPreferenceDirectly(t *testing.T) {
	t.Parallel()

	ps := newPreferenceStore(t, fixedProbe(KeyDark))

	ps.SetTheme(PreferenceLight)
	if got := ps.Resolved(); got != KeyLight {
		t.Fatalf("expected light, got %s", got)
	}

	ps.SetTheme(PreferenceDark)
	if got := ps.Resolved(); got != KeyDark {
		t.Fatalf("expected dark, got %s", got)
	}
}

func TestResolveSystemUsesProbe(t *testing.T) {
	t.Parallel()

	ps := newPreferenceStore(t, fixedProbe(KeyDark))

	ps.SetTheme(PreferenceSystem)
	if got := ps.Resolved(); got != KeyDark {
		t.Fatalf("expected system preference to resolve via probe, got %s", got)
	}
}

func TestToggleFromSystemProducesExplicitPreference(t *testing.T) {
	t.Parallel()

	ps := newPreferenceStore(t, fixedProbe(KeyDark))
	ps.SetTheme(PreferenceSystem)

	ps.Toggle()

	if pref := ps.Preference(); pref != PreferenceLight {
		t.Fatalf("expected explicit light preference after toggle, got %s", pref)
	}
	if key := ps.Resolved(); key != KeyLight {
		t.Fatalf("expected resolved light after toggle, got %s", key)
	}
}

func TestCycleOrder(t *testing.T) {
	t.Parallel()

	ps := newPreferenceStore(t, fixedProbe(KeyLight))
	ps.SetTheme(PreferenceLight)

	expected := []ThemePreference{PreferenceDark, PreferenceSystem, PreferenceLight}
	for _, want := range expected {
		ps.Cycle()
		if got := ps.Preference(); got != want {
			t.Fatalf("expected cycle to land on %s, got %s", want, got)
		}
	}
}

func TestPreferencePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	first, err := NewPreferenceStore(PreferenceOptions{Store: store, Probe: fixedProbe(KeyLight)})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	first.SetTheme(PreferenceDark)
	first.Close()

	second, err := NewPreferenceStore(PreferenceOptions{Store: store, Probe: fixedProbe(KeyLight)})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	t.Cleanup(second.Close)

	if got := second.Preference(); got != PreferenceDark {
		t.Fatalf("expected persisted preference dark, got %s", got)
	}
}

func TestSystemWatcherFollowsOSChanges(t *testing.T) {
	t.Parallel()

	probe := &switchableProbe{key: KeyLight}
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	ps, err := NewPreferenceStore(PreferenceOptions{
		Store:         store,
		Probe:         probe.probe,
		WatchInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	t.Cleanup(ps.Close)

	changed := make(chan ThemeKey, 4)
	ps.Subscribe(func(key ThemeKey) { changed <- key })

	ps.SetTheme(PreferenceSystem)
	probe.set(KeyDark)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case key := <-changed:
			if key == KeyDark {
				return
			}
		case <-deadline:
			t.Fatalf("watcher never picked up the OS change")
		}
	}
}

func TestWatcherStopsWhenLeavingSystem(t *testing.T) {
	t.Parallel()

	probe := &switchableProbe{key: KeyLight}
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	ps, err := NewPreferenceStore(PreferenceOptions{
		Store:         store,
		Probe:         probe.probe,
		WatchInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	t.Cleanup(ps.Close)

	ps.SetTheme(PreferenceSystem)
	ps.SetTheme(PreferenceLight)

	probe.set(KeyDark)
	time.Sleep(50 * time.Millisecond)

	if got := ps.Resolved(); got != KeyLight {
		t.Fatalf("expected explicit light to ignore OS changes, got %s", got)
	}
}

func TestTableMergesOverridesOverBase(t *testing.T) {
	t.Parallel()

	ocean := Table(ColorOcean, KeyDark)
	base := baseTables[KeyDark]

	if ocean.Accent != "#38bdf8" {
		t.Fatalf("expected ocean dark accent override, got %s", ocean.Accent)
	}
	if ocean.Background != base.Background || ocean.Foreground != base.Foreground {
		t.Fatalf("expected non-overridden colors to fall back to base")
	}
}

func TestNextColorThemeWrapsBothWays(t *testing.T) {
	t.Parallel()

	if got := NextColorTheme(ColorSlate, 1); got != ColorForest {
		t.Fatalf("expected wrap from slate to forest, got %s", got)
	}
	if got := NextColorTheme(ColorForest, -1); got != ColorSlate {
		t.Fatalf("expected backwards wrap from forest to slate, got %s", got)
	}
	if got := NextColorTheme(ColorForest, 1); got != ColorCrimson {
		t.Fatalf("expected forest to step to crimson, got %s", got)
	}
}

func TestColorStoreIgnoresUnknownNames(t *testing.T) {
	t.Parallel()

	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	cs, err := NewColorStore(store, nil)
	if err != nil {
		t.Fatalf("NewColorStore returned error: %v", err)
	}

	cs.SetColorTheme(ColorOcean)
	cs.SetColorTheme("neon")

	if got := cs.Current(); got != ColorOcean {
		t.Fatalf("expected unknown palette to be ignored, got %s", got)
	}
}

// helpers

func newPreferenceStore(t *testing.T, probe SystemProbe) *PreferenceStore {
	t.Helper()

	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	ps, err := NewPreferenceStore(PreferenceOptions{Store: store, Probe: probe})
	if err != nil {
		t.Fatalf("NewPreferenceStore returned error: %v", err)
	}
	t.Cleanup(ps.Close)

	return ps
}

func fixedProbe(key ThemeKey) SystemProbe {
	return func() ThemeKey { return key }
}

type switchableProbe struct {
	mu  sync.Mutex
	key ThemeKey
}

func (p *switchableProbe) probe() ThemeKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}

func (p *switchableProbe) set(key ThemeKey) {
	p.mu.Lock()
	p.key = key
	p.mu.Unlock()
}
