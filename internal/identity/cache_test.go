package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeStore) FetchProfile(_ context.Context, userID string) (Profile, bool, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return Profile{}, false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	return p, ok, nil
}

func TestProfileNormalize(t *testing.T) {
	p := Profile{UserID: " u1 ", Username: "luke"}.Normalize()

	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, DefaultAvatar, p.Avatar)
	assert.Equal(t, "luke", p.DisplayName)

	custom := Profile{Username: "leia", DisplayName: "Leia O.", Avatar: "rebel.png"}.Normalize()
	assert.Equal(t, "rebel.png", custom.Avatar)
	assert.Equal(t, "Leia O.", custom.DisplayName)
}

func TestResolveFetchesOnceAndCaches(t *testing.T) {
	store := &fakeStore{profiles: map[string]Profile{"u1": {Username: "luke"}}}
	c := NewCache(store, nil)

	player, ok := c.Resolve(context.Background(), "u1")
	require.True(t, ok)
	assert.Equal(t, Player{UserID: "u1", DisplayName: "luke"}, player)

	_, ok = c.Resolve(context.Background(), "u1")
	require.True(t, ok)
	assert.Equal(t, int32(1), store.calls.Load(), "second resolve should hit the cache")

	cached, ok := c.Cached("u1")
	require.True(t, ok)
	assert.Equal(t, DefaultAvatar, cached.Avatar)
}

func TestResolveWithoutUsername(t *testing.T) {
	store := &fakeStore{profiles: map[string]Profile{"u2": {DisplayName: "no handle"}}}
	c := NewCache(store, nil)

	_, ok := c.Resolve(context.Background(), "u2")
	assert.False(t, ok)
}

func TestResolveMissingProfile(t *testing.T) {
	c := NewCache(&fakeStore{profiles: map[string]Profile{}}, nil)

	_, ok := c.Resolve(context.Background(), "ghost")
	assert.False(t, ok)

	_, ok = c.Resolve(context.Background(), "")
	assert.False(t, ok)
}

func TestResolveFetchErrorSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	c := NewCache(store, nil)

	_, ok := c.Resolve(context.Background(), "u1")
	assert.False(t, ok)
	_, cached := c.Cached("u1")
	assert.False(t, cached, "failed fetches must not be cached")
}

func TestConcurrentResolveSharesFetch(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]Profile{"u1": {Username: "luke"}},
		delay:    20 * time.Millisecond,
	}
	c := NewCache(store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := c.Resolve(context.Background(), "u1")
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, store.calls.Load(), int32(2))
}

func TestForget(t *testing.T) {
	c := NewCache(&fakeStore{}, nil)
	c.Put(Profile{UserID: "u1", Username: "luke"})

	_, ok := c.Cached("u1")
	require.True(t, ok)

	c.Forget("u1")
	_, ok = c.Cached("u1")
	assert.False(t, ok)
}

func TestProfileTrimsUserID(t *testing.T) {
	store := &fakeStore{profiles: map[string]Profile{"u1": {Username: "luke"}}}
	c := NewCache(store, nil)

	p, ok := c.Profile(context.Background(), " u1 ")
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "luke", p.Username)

	cached, ok := c.Cached("u1\t")
	require.True(t, ok)
	assert.Equal(t, p, cached)

	c.Forget(" u1")
	_, ok = c.Cached("u1")
	assert.False(t, ok)
}
