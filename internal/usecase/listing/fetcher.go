package listing

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/domain/paging"
)

// Loader performs the backend GET for one set of params.
type Loader[T any] func(ctx context.Context, p listquery.Params) (*paging.Page[T], error)

type cached[T any] struct {
	page    *paging.Page[T]
	fetched time.Time
}

// Fetcher caches pages by params identity. Concurrent fetches of the same
// params share one backend call. Failures are never cached.
type Fetcher[T any] struct {
	load  Loader[T]
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cached[T]
	// epoch moves on every Invalidate or Purge. Loads started in an older
	// epoch neither fill the cache nor get joined by newer fetches.
	epoch uint64
}

func NewFetcher[T any](load Loader[T], ttl time.Duration) *Fetcher[T] {
	return &Fetcher[T]{
		load:    load,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cached[T]),
	}
}

func (f *Fetcher[T]) Fetch(ctx context.Context, p listquery.Params) (*paging.Page[T], error) {
	key := p.Key()
	page, epoch, ok := f.lookup(key)
	if ok {
		return page, nil
	}

	ch := f.group.DoChan(key+"@"+strconv.FormatUint(epoch, 10), func() (any, error) {
		page, err := f.load(ctx, p)
		if err != nil {
			return nil, err
		}
		if page == nil {
			page = &paging.Page[T]{Data: []T{}}
		}
		f.store(key, epoch, page)
		return page, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*paging.Page[T]), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Fetcher[T]) lookup(key string) (*paging.Page[T], uint64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ttl <= 0 {
		return nil, f.epoch, false
	}
	e, ok := f.entries[key]
	if !ok || f.now().Sub(e.fetched) >= f.ttl {
		return nil, f.epoch, false
	}
	return e.page, f.epoch, true
}

// store caches page unless the cache was invalidated since the load began.
func (f *Fetcher[T]) store(key string, epoch uint64, page *paging.Page[T]) {
	if f.ttl <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.epoch != epoch {
		return
	}
	f.entries[key] = cached[T]{page: page, fetched: f.now()}
}

// Invalidate drops the cached page for p so the next Fetch hits the backend.
func (f *Fetcher[T]) Invalidate(p listquery.Params) {
	key := p.Key()
	f.mu.Lock()
	f.epoch++
	delete(f.entries, key)
	f.mu.Unlock()
}

// Purge drops every cached page, e.g. after a record was created. Loads
// still running keep their callers but no longer reach the cache.
func (f *Fetcher[T]) Purge() {
	f.mu.Lock()
	f.epoch++
	f.entries = make(map[string]cached[T])
	f.mu.Unlock()
}
