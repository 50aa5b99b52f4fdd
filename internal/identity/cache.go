package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Cache resolves players through a ProfileStore and remembers profiles that
// were found. Concurrent lookups of the same user share one fetch.
type Cache struct {
	store  ProfileStore
	logger *log.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewCache creates a cache in front of store.
func NewCache(store ProfileStore, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{
		store:    store,
		logger:   logger.With("component", "identity"),
		profiles: make(map[string]Profile),
	}
}

// Cached returns the cached profile without fetching.
func (c *Cache) Cached(userID string) (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[strings.TrimSpace(userID)]
	return p, ok
}

// Put stores a profile, e.g. after the user edited it.
func (c *Cache) Put(p Profile) {
	p = p.Normalize()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[p.UserID] = p
}

// Forget drops a cached profile.
func (c *Cache) Forget(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.profiles, strings.TrimSpace(userID))
}

// Profile returns the user's profile, fetching it when not cached.
// Missing profiles and fetch failures both return false; failures are logged.
// userID is trimmed like Profile.UserID.
func (c *Cache) Profile(ctx context.Context, userID string) (Profile, bool) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, false
	}
	if p, ok := c.Cached(userID); ok {
		return p, true
	}

	v, err, _ := c.group.Do(userID, func() (any, error) {
		p, found, err := c.store.FetchProfile(ctx, userID)
		if err != nil || !found {
			return nil, err
		}
		p.UserID = userID
		p = p.Normalize()
		c.Put(p)
		return p, nil
	})
	if err != nil {
		c.logger.Error("profile fetch failed", "user", userID, "error", err)
		return Profile{}, false
	}
	if v == nil {
		return Profile{}, false
	}
	return v.(Profile), true
}

// Resolve returns the player identity for userID. It is false when the user
// has no profile or the profile has no username.
func (c *Cache) Resolve(ctx context.Context, userID string) (Player, bool) {
	p, ok := c.Profile(ctx, userID)
	if !ok || !p.HasUsername() {
		return Player{}, false
	}
	return p.Player(), true
}
