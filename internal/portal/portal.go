// Package portal owns the process-wide services shared by every front end:
// the storage handle, the profile cache, the score submitter, the community
// directory and the admin service. The handle is created lazily on first use and closed once by
// Shutdown.
package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/vovakirdan/arcade-portal/internal/admin"
	"github.com/vovakirdan/arcade-portal/internal/community"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// ErrNotInitialized is returned by Get before Init.
var ErrNotInitialized = errors.New("portal: not initialized")

// Option configures a Portal.
type Option func(*options)

type options struct {
	logger   *log.Logger
	backend  storage.Backend
	fallback bool
}

// WithLogger sets the logger shared by all services.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBackend uses b instead of opening the configured storage.
func WithBackend(b storage.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithMemoryFallback keeps the portal usable when the configured storage
// cannot be opened: scores then live in memory until the process exits.
func WithMemoryFallback() Option {
	return func(o *options) { o.fallback = true }
}

// Portal bundles the shared services.
type Portal struct {
	cfg       config.PortalConfig
	logger    *log.Logger
	store     storage.Backend
	profiles  *identity.Cache
	submitter *leaderboard.Submitter
	admin     *admin.Service
	community *community.Service

	mu      sync.Mutex
	hooks   []func() error
	closed  bool
	offline bool
}

// New builds a Portal that is not registered as the process handle.
func New(ctx context.Context, cfg config.PortalConfig, opts ...Option) (*Portal, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	logger := o.logger.With("component", "portal")

	p := &Portal{cfg: cfg, logger: logger, store: o.backend}
	if p.store == nil {
		store, err := storage.Open(ctx, cfg.Storage, o.logger)
		switch {
		case err == nil:
			p.store = store
		case o.fallback:
			logger.Warn("storage unavailable, scores will not persist", "driver", cfg.Storage.Driver, "error", err)
			p.store = storage.NewMemory(o.logger)
			p.offline = true
		default:
			return nil, fmt.Errorf("portal: cannot open storage: %w", err)
		}
	}

	p.profiles = identity.NewCache(p.store, o.logger)
	p.submitter = leaderboard.NewSubmitter(p.store, p.profiles, o.logger)
	p.admin = admin.NewService(p.store, registry.IDs, cfg.Admins, p.profiles, o.logger)
	p.community = community.NewService(p.store, registry.List, o.logger)
	return p, nil
}

var (
	mu       sync.Mutex
	instance *Portal
)

// Init creates the process handle on first call and returns it. Later calls
// return the same handle and ignore their arguments until Shutdown.
func Init(ctx context.Context, cfg config.PortalConfig, opts ...Option) (*Portal, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance, nil
	}
	p, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	instance = p
	return p, nil
}

// Get returns the handle created by Init.
func Get() (*Portal, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance, nil
}

// Shutdown closes the process handle. It is safe to call more than once;
// a later Init creates a fresh handle.
func Shutdown() error {
	mu.Lock()
	p := instance
	instance = nil
	mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Close()
}

// Config returns the configuration the portal was built with.
func (p *Portal) Config() config.PortalConfig { return p.cfg }

// Store returns the storage backend.
func (p *Portal) Store() storage.Backend { return p.store }

// Profiles returns the profile cache.
func (p *Portal) Profiles() *identity.Cache { return p.profiles }

// Submitter returns the score submitter.
func (p *Portal) Submitter() *leaderboard.Submitter { return p.submitter }

// Admin returns the user management service.
func (p *Portal) Admin() *admin.Service { return p.admin }

// Community returns the public player directory.
func (p *Portal) Community() *community.Service { return p.community }

// Offline reports whether the portal fell back to in-memory storage.
func (p *Portal) Offline() bool { return p.offline }

// TopN returns the configured leaderboard size.
func (p *Portal) TopN() int {
	if p.cfg.Leaderboard.TopN > 0 {
		return p.cfg.Leaderboard.TopN
	}
	return leaderboard.DefaultTopN
}

// NewProjection creates a leaderboard view of gameID backed by the portal's
// storage. The caller subscribes and closes it.
func (p *Portal) NewProjection(gameID string, onChange func([]leaderboard.Entry)) *leaderboard.Projection {
	return leaderboard.NewProjection(p.store, gameID, onChange, p.logger)
}

// Record submits a finished session on behalf of userID.
func (p *Portal) Record(ctx context.Context, userID string, r engine.Result) leaderboard.Outcome {
	return p.submitter.Record(ctx, userID, r)
}

// SaveProfile persists a profile and refreshes the cache.
func (p *Portal) SaveProfile(ctx context.Context, profile identity.Profile) error {
	profile = profile.Normalize()
	if err := p.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("portal: cannot save profile %s: %w", profile.UserID, err)
	}
	p.profiles.Put(profile)
	return nil
}

// OnShutdown registers fn to run when the portal closes, before storage.
// Hooks run in reverse registration order.
func (p *Portal) OnShutdown(fn func() error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = append(p.hooks, fn)
}

// Close runs the shutdown hooks and closes storage. Every failure is
// reported; only the first call does any work.
func (p *Portal) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	hooks := p.hooks
	p.hooks = nil
	p.mu.Unlock()

	var err error
	for i := len(hooks) - 1; i >= 0; i-- {
		err = multierr.Append(err, hooks[i]())
	}
	err = multierr.Append(err, p.store.Close())
	if err != nil {
		p.logger.Error("shutdown finished with errors", "error", err)
		return err
	}
	p.logger.Debug("shutdown complete")
	return nil
}
