package theme

import (
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/tui/state"
)

// ThemePreference is the persisted tri-state choice.
type ThemePreference string

// ThemeKey is what the preference resolves to: exactly one of light or dark
// is active at any time.
type ThemeKey string

const (
	PreferenceLight  ThemePreference = "light"
	PreferenceDark   ThemePreference = "dark"
	PreferenceSystem ThemePreference = "system"

	KeyLight ThemeKey = "light"
	KeyDark  ThemeKey = "dark"
)

// defaultWatchInterval is how often the OS preference is re-probed while the
// "system" preference is selected. Terminals have no change-notification
// channel, so polling stands in for one.
const defaultWatchInterval = 5 * time.Second

// SystemProbe reports the OS-level color-scheme preference.
type SystemProbe func() ThemeKey

// TermenvProbe probes the terminal background via termenv.
func TermenvProbe() ThemeKey {
	if termenv.HasDarkBackground() {
		return KeyDark
	}
	return KeyLight
}

// PreferenceStore holds the theme preference, resolves it to a concrete key,
// and persists it across sessions. It is an explicit injectable object, never
// a package-level singleton, so tests can run independent instances.
type PreferenceStore struct {
	mu          sync.Mutex
	store       *state.Store
	probe       SystemProbe
	interval    time.Duration
	logger      *logrus.Logger
	pref        ThemePreference
	resolved    ThemeKey
	subscribers []func(ThemeKey)
	stopWatch   chan struct{}
}

// PreferenceOptions configures the preference store.
type PreferenceOptions struct {
	Store         *state.Store
	Probe         SystemProbe
	WatchInterval time.Duration
	Logger        *logrus.Logger
}

// NewPreferenceStore loads the persisted preference (defaulting to system)
// and resolves it immediately.
func NewPreferenceStore(opts PreferenceOptions) (*PreferenceStore, error) {
	if opts.Store == nil {
		return nil, eris.New("state store is required")
	}

	probe := opts.Probe
	if probe == nil {
		probe = TermenvProbe
	}

	interval := opts.WatchInterval
	if interval == 0 {
		interval = defaultWatchInterval
	}

	ps := &PreferenceStore{
		store:    opts.Store,
		probe:    probe,
		interval: interval,
		logger:   opts.Logger,
		pref:     PreferenceSystem,
	}

	var persisted string
	if found, err := opts.Store.Get(state.KeyTheme, &persisted); err == nil && found {
		switch ThemePreference(persisted) {
		case PreferenceLight, PreferenceDark, PreferenceSystem:
			ps.pref = ThemePreference(persisted)
		}
	}

	ps.resolved = ps.resolve(ps.pref)
	if ps.pref == PreferenceSystem {
		ps.startWatchLocked()
	}

	return ps, nil
}

// Preference returns the current tri-state preference.
func (ps *PreferenceStore) Preference() ThemePreference {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.pref
}

// Resolved returns the currently applied light/dark key.
func (ps *PreferenceStore) Resolved() ThemeKey {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.resolved
}

// SetTheme persists the preference and updates the resolved key
// synchronously. Selecting system additionally keeps the resolved key in
// sync with the OS for as long as system stays selected.
func (ps *PreferenceStore) SetTheme(pref ThemePreference) {
	ps.mu.Lock()

	ps.pref = pref
	if err := ps.store.Set(state.KeyTheme, string(pref)); err != nil && ps.logger != nil {
		ps.logger.WithField("error", err.Error()).Debug("persisting theme preference")
	}

	ps.applyResolvedLocked(ps.resolve(pref))

	if pref == PreferenceSystem {
		ps.startWatchLocked()
	} else {
		ps.stopWatchLocked()
	}

	notify, key := ps.snapshotSubscribersLocked()
	ps.mu.Unlock()

	for _, fn := range notify {
		fn(key)
	}
}

// Toggle flips the resolved key and records it as an explicit preference:
// toggling away from system-resolved-dark lands on explicit light, not on
// some "system-light" hybrid.
func (ps *PreferenceStore) Toggle() {
	if ps.Resolved() == KeyDark {
		ps.SetTheme(PreferenceLight)
	} else {
		ps.SetTheme(PreferenceDark)
	}
}

// Cycle advances the preference light -> dark -> system -> light.
func (ps *PreferenceStore) Cycle() {
	switch ps.Preference() {
	case PreferenceLight:
		ps.SetTheme(PreferenceDark)
	case PreferenceDark:
		ps.SetTheme(PreferenceSystem)
	default:
		ps.SetTheme(PreferenceLight)
	}
}

// Subscribe registers a callback invoked whenever the resolved key changes.
func (ps *PreferenceStore) Subscribe(fn func(ThemeKey)) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.subscribers = append(ps.subscribers, fn)
}

// Close stops the OS watcher, if any.
func (ps *PreferenceStore) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.stopWatchLocked()
}

func (ps *PreferenceStore) resolve(pref ThemePreference) ThemeKey {
	if pref == PreferenceSystem {
		return ps.probe()
	}
	return ThemeKey(pref)
}

// applyResolvedLocked records the new key; callers notify subscribers after
// releasing the lock.
func (ps *PreferenceStore) applyResolvedLocked(key ThemeKey) {
	ps.resolved = key
}

func (ps *PreferenceStore) snapshotSubscribersLocked() ([]func(ThemeKey), ThemeKey) {
	subs := make([]func(ThemeKey), len(ps.subscribers))
	copy(subs, ps.subscribers)
	return subs, ps.resolved
}

func (ps *PreferenceStore) startWatchLocked() {
	if ps.stopWatch != nil {
		return
	}

	stop := make(chan struct{})
	ps.stopWatch = stop

	go func() {
		ticker := time.NewTicker(ps.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ps.pollSystem()
			}
		}
	}()
}

func (ps *PreferenceStore) stopWatchLocked() {
	if ps.stopWatch != nil {
		close(ps.stopWatch)
		ps.stopWatch = nil
	}
}

func (ps *PreferenceStore) pollSystem() {
	ps.mu.Lock()
	if ps.pref != PreferenceSystem {
		ps.mu.Unlock()
		return
	}

	key := ps.probe()
	if key == ps.resolved {
		ps.mu.Unlock()
		return
	}

	ps.applyResolvedLocked(key)
	notify, current := ps.snapshotSubscribersLocked()
	ps.mu.Unlock()

	for _, fn := range notify {
		fn(current)
	}
}
