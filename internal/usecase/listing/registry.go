package listing

import (
	"context"
	"sync"
	"time"
)

// Workspace holds the list views of one session.
type Workspace struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	views   map[string]any
	touched time.Time
}

// Context is cancelled when the workspace is dropped.
func (w *Workspace) Context() context.Context { return w.ctx }

// Registry keeps one Workspace per session.
type Registry struct {
	parent context.Context
	now    func() time.Time

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewRegistry(parent context.Context) *Registry {
	return &Registry{
		parent: parent,
		now:    time.Now,
		spaces: make(map[string]*Workspace),
	}
}

func (r *Registry) Workspace(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.spaces[sessionID]
	if !ok {
		ctx, cancel := context.WithCancel(r.parent)
		w = &Workspace{ctx: ctx, cancel: cancel, views: make(map[string]any)}
		r.spaces[sessionID] = w
	}
	w.mu.Lock()
	w.touched = r.now()
	w.mu.Unlock()
	return w
}

// Drop forgets the session's views and cancels their requests.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	w, ok := r.spaces[sessionID]
	delete(r.spaces, sessionID)
	r.mu.Unlock()
	if ok {
		w.cancel()
	}
}

// Sweep drops workspaces untouched for longer than idle.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	var stale []*Workspace

	r.mu.Lock()
	for id, w := range r.spaces {
		w.mu.Lock()
		old := w.touched.Before(cutoff)
		w.mu.Unlock()
		if old {
			stale = append(stale, w)
			delete(r.spaces, id)
		}
	}
	r.mu.Unlock()

	for _, w := range stale {
		w.cancel()
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// Close drops every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	spaces := r.spaces
	r.spaces = make(map[string]*Workspace)
	r.mu.Unlock()
	for _, w := range spaces {
		w.cancel()
	}
}

// ViewOf returns the workspace's view stored under key, creating it with
// create on first use.
func ViewOf[T any](w *Workspace, key string, create func(ctx context.Context) *View[T]) *View[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if v, ok := w.views[key].(*View[T]); ok {
		return v
	}
	v := create(w.ctx)
	w.views[key] = v
	return v
}
