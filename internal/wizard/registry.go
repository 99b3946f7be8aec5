package wizard

import (
	"context"
	"sync"
	"time"
)

// ============================================================
// Registry
// ============================================================

// Factory builds an uninitialised controller for a draft key.
type Factory func(key string) (*Controller, error)

type entry struct {
	c        *Controller
	lastUsed time.Time
}

// Registry holds the live controller of every open draft of one flow.
// Controllers left untouched are evicted by Sweep; their drafts stay
// persisted and the next Open resumes them.
type Registry struct {
	mu      sync.Mutex
	factory Factory
	entries map[string]*entry
	now     func() time.Time
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory: factory,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Open returns the live controller for key, creating and initialising one
// from the persisted draft if there is none yet. Initialisation runs outside
// the registry lock.
func (r *Registry) Open(ctx context.Context, key string) (*Controller, error) {
	if c, ok := r.Get(key); ok {
		return c, nil
	}

	c, err := r.factory(key)
	if err != nil {
		return nil, err
	}
	c.Initialize(ctx)

	r.mu.Lock()
	if e, ok := r.entries[key]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		// lost the race to a concurrent Open
		c.Close()
		return e.c, nil
	}
	r.entries[key] = &entry{c: c, lastUsed: r.now()}
	r.mu.Unlock()
	return c, nil
}

// Get returns the live controller for key without creating one.
func (r *Registry) Get(key string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.c, true
}

// Close drops the controller for key and closes it, abandoning any submit
// still in flight.
func (r *Registry) Close(key string) {
	r.mu.Lock()
	e, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if ok {
		e.c.Close()
	}
}

// Sweep closes every controller not used for idle and returns how many were
// evicted. Controllers with a submit in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var evicted []*Controller
	for key, e := range r.entries {
		if e.lastUsed.After(cutoff) || e.c.Submitting() {
			continue
		}
		evicted = append(evicted, e.c)
		delete(r.entries, key)
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(idle)
		}
	}
}

// CloseAll closes every controller; used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.c.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
