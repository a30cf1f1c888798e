package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/tui/state"
)

// DefaultMaxAge bounds how long a cached response stays usable.
const DefaultMaxAge = 24 * time.Hour

type cachedEntry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"storedAt"`
}

type cacheBlob struct {
	Entries map[string]cachedEntry `json:"entries"`
}

// Cache is a persisted query cache keyed by request identity. Entries expire
// after maxAge; the whole cache is dropped when the server's content version
// fingerprint changes.
type Cache struct {
	store  *state.Store
	maxAge time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

// Options configures the cache.
type Options struct {
	Store  *state.Store
	MaxAge time.Duration
	Logger *logrus.Logger
}

// New constructs a cache over the given state store.
func New(opts Options) (*Cache, error) {
	if opts.Store == nil {
		return nil, eris.New("state store is required")
	}

	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}

	return &Cache{
		store:  opts.Store,
		maxAge: maxAge,
		logger: opts.Logger,
		now:    time.Now,
	}, nil
}

// Get loads the cached value for key into target. It reports a miss for
// absent, expired, or undecodable entries.
func (c *Cache) Get(key string, target any) bool {
	blob, err := c.load()
	if err != nil {
		c.debug(err, "loading query cache")
		return false
	}

	entry, ok := blob.Entries[key]
	if !ok {
		return false
	}
	if c.now().Sub(entry.StoredAt) > c.maxAge {
		return false
	}

	if err := json.Unmarshal(entry.Data, target); err != nil {
		c.debug(err, "decoding cached entry")
		return false
	}
	return true
}

// Set stores a value under key. Failures are swallowed: caching is an
// optimization, never a correctness requirement.
func (c *Cache) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.debug(err, "encoding cache entry")
		return
	}

	blob, err := c.load()
	if err != nil {
		c.debug(err, "loading query cache")
		blob = &cacheBlob{Entries: map[string]cachedEntry{}}
	}

	blob.Entries[key] = cachedEntry{Data: raw, StoredAt: c.now()}

	if err := c.store.Set(state.KeyQueryCache, blob); err != nil {
		c.debug(err, "persisting query cache")
	}
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	if err := c.store.Delete(state.KeyQueryCache); err != nil {
		c.debug(err, "invalidating query cache")
	}
}

// CheckVersion compares the server's current content fingerprint against the
// last-seen one and blanket-invalidates the cache when they differ. Fetch
// failures leave the cache untouched and never propagate: stale-but-available
// beats empty.
func (c *Cache) CheckVersion(ctx context.Context, fetch func(context.Context) (string, error)) {
	current, err := fetch(ctx)
	if err != nil {
		c.debug(err, "fetching content version")
		return
	}

	var lastSeen string
	found, err := c.store.Get(state.KeyContentVersion, &lastSeen)
	if err != nil {
		c.debug(err, "reading stored content version")
	}

	if found && lastSeen == current {
		return
	}

	if found {
		c.InvalidateAll()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"previous": lastSeen,
				"current":  current,
			}).Info("content changed, query cache invalidated")
		}
	}

	if err := c.store.Set(state.KeyContentVersion, current); err != nil {
		c.debug(err, "storing content version")
	}
}

func (c *Cache) load() (*cacheBlob, error) {
	blob := &cacheBlob{}
	found, err := c.store.Get(state.KeyQueryCache, blob)
	if err != nil {
		return nil, err
	}
	if !found || blob.Entries == nil {
		blob.Entries = map[string]cachedEntry{}
	}
	return blob, nil
}

func (c *Cache) debug(err error, message string) {
	if c.logger != nil {
		c.logger.WithField("error", err.Error()).Debug(message)
	}
}
