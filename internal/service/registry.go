package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folio/internal/content"
	"github.com/folio/internal/ui"
)

// DefaultMountTTL is how long an idle page view is kept.
const DefaultMountTTL = 30 * time.Minute

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	TTL      time.Duration
	Cooldown time.Duration
	Viewport ui.Viewport
	OnReveal RevealFunc
	Now      func() time.Time
}

// Registry owns the live page views.
type Registry struct {
	opts RegistryOptions

	mu     sync.RWMutex
	mounts map[string]*Mount
}

// NewRegistry creates an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = DefaultMountTTL
	}
	if opts.Viewport.Breakpoint <= 0 {
		opts.Viewport.Breakpoint = ui.DefaultBreakpoint
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{opts: opts, mounts: make(map[string]*Mount)}
}

// Create mounts a new page view over lib.
func (r *Registry) Create(lib *content.Library, visitorID string) *Mount {
	m := newMount(uuid.NewString(), visitorID, lib, r.opts, r.opts.Now())

	r.mu.Lock()
	r.mounts[m.ID] = m
	r.mu.Unlock()
	return m
}

// Get returns a live mount and marks it as recently used.
func (r *Registry) Get(id string) (*Mount, error) {
	r.mu.RLock()
	m, ok := r.mounts[id]
	r.mu.RUnlock()
	if !ok || m.Closed() {
		return nil, ErrMountNotFound
	}
	m.touch(r.opts.Now())
	return m, nil
}

// Teardown closes and forgets a mount. It reports whether the mount was
// live.
func (r *Registry) Teardown(id string) bool {
	r.mu.Lock()
	m, ok := r.mounts[id]
	delete(r.mounts, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	m.Close()
	return true
}

// Len returns the number of live mounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mounts)
}

// Sweep tears down mounts idle for longer than the TTL and returns how
// many were evicted.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Now().Add(-r.opts.TTL)

	var expired []*Mount
	r.mu.Lock()
	for id, m := range r.mounts {
		if m.idleSince().Before(cutoff) {
			expired = append(expired, m)
			delete(r.mounts, id)
		}
	}
	r.mu.Unlock()

	for _, m := range expired {
		m.Close()
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled, then tears down every
// remaining mount.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.opts.TTL / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("[mount] evicted %d idle page views", n)
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	mounts := r.mounts
	r.mounts = make(map[string]*Mount)
	r.mu.Unlock()

	for _, m := range mounts {
		m.Close()
	}
}
