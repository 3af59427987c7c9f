package listing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/domain/paging"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

// State is a snapshot of a list view.
type State[T any] struct {
	Status  Status
	Page    int
	Filters listquery.FilterState
	Params  listquery.Params
	Data    *paging.Page[T]
	Err     error
}

// View holds the filters and page position of one list page and the
// outcome of its latest request. Every change starts a new request; an
// answer for anything but the latest request is dropped.
type View[T any] struct {
	ctx     context.Context
	mapping listquery.Mapping
	limit   int
	fetcher *Fetcher[T]
	log     *zap.Logger

	mu      sync.Mutex
	gen     uint64
	state   State[T]
	settled chan struct{}
}

func NewView[T any](ctx context.Context, mapping listquery.Mapping, limit int, fetcher *Fetcher[T], log *zap.Logger) *View[T] {
	if log == nil {
		log = zap.NewNop()
	}
	settled := make(chan struct{})
	close(settled)
	return &View[T]{
		ctx:     ctx,
		mapping: mapping,
		limit:   limit,
		fetcher: fetcher,
		log:     log,
		state:   State[T]{Status: StatusIdle, Page: 1},
		settled: settled,
	}
}

func (v *View[T]) State() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// SetFilters replaces the filter state and goes back to page 1.
func (v *View[T]) SetFilters(fs listquery.FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Filters = fs
	v.state.Page = 1
	v.startLocked()
}

// SetPage moves to page n, keeping the filters.
func (v *View[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Page = n
	v.startLocked()
}

// Navigate replaces the filters and moves to page n with a single request.
// It serves links that carry both, such as bookmarks.
func (v *View[T]) Navigate(fs listquery.FilterState, n int) {
	if n < 1 {
		n = 1
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Filters = fs
	v.state.Page = n
	v.startLocked()
}

// Refetch reloads the current page, bypassing the cache.
func (v *View[T]) Refetch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fetcher.Invalidate(v.mapping.Build(v.state.Filters, v.state.Page, v.limit))
	v.startLocked()
}

// PurgeCache drops every cached page of the view. The current state is
// left as is; the next change or Refetch reloads from the backend.
func (v *View[T]) PurgeCache() {
	v.fetcher.Purge()
}

// Wait blocks until the latest request settled or ctx is done, and returns
// the state at that moment.
func (v *View[T]) Wait(ctx context.Context) (State[T], error) {
	for {
		v.mu.Lock()
		st, ch := v.state, v.settled
		v.mu.Unlock()

		if st.Status != StatusLoading {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

func (v *View[T]) startLocked() {
	params := v.mapping.Build(v.state.Filters, v.state.Page, v.limit)

	v.gen++
	gen := v.gen
	select {
	case <-v.settled:
	default:
		// Wake waiters of the superseded request so they pick up this one.
		close(v.settled)
	}
	settled := make(chan struct{})
	v.settled = settled

	v.state.Status = StatusLoading
	v.state.Params = params
	v.state.Data = nil
	v.state.Err = nil

	go v.run(gen, params, settled)
}

func (v *View[T]) run(gen uint64, params listquery.Params, settled chan struct{}) {
	page, err := v.fetcher.Fetch(v.ctx, params)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.log.Debug("dropping superseded list result",
			zap.Uint64("generation", gen),
			zap.Uint64("current", v.gen),
			zap.String("params", params.Key()),
		)
		return
	}
	if err != nil {
		v.state.Status = StatusErrored
		v.state.Err = err
		v.log.Warn("list request failed", zap.String("params", params.Key()), zap.Error(err))
	} else {
		v.state.Status = StatusLoaded
		v.state.Data = page
	}
	close(settled)
}
