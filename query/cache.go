// Package query caches remote reads by key and runs writes that
// invalidate those reads.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached read.
type Key string

// PostsKey is the key of the "all posts" read.
func PostsKey() Key { return "posts" }

// PostKey is the key of a single-post read.
func PostKey(id string) Key { return Key("post:" + id) }

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a read-only view of one entry.
type Snapshot struct {
	Data      any
	HasData   bool
	Err       error
	Status    Status
	Fetching  bool
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	data      any
	hasData   bool
	err       error
	status    Status
	inflight  int
	stale     bool
	gen       uint64 // bumped by Invalidate
	started   uint64 // flights begun
	stored    uint64 // flight whose outcome is held
	updatedAt time.Time
}

// Cache holds the last result of every keyed read. Results stay until
// invalidated; invalidation marks an entry stale but keeps its data.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	group   singleflight.Group
	now     func() time.Time
	log     zerolog.Logger
}

// NewCache creates an empty cache.
func NewCache(logger zerolog.Logger) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		now:     time.Now,
		log:     logger.With().Str("component", "query").Logger(),
	}
}

// Peek returns the current state of key without fetching.
func (c *Cache) Peek(key Key) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{Status: StatusIdle}
	}
	return Snapshot{
		Data:      e.data,
		HasData:   e.hasData,
		Err:       e.err,
		Status:    e.status,
		Fetching:  e.inflight > 0,
		Stale:     e.stale,
		UpdatedAt: e.updatedAt,
	}
}

// Invalidate marks entries stale so the next Fetch goes to the network.
// Unknown keys are ignored.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		e, ok := c.entries[k]
		if !ok {
			continue
		}
		e.stale = true
		e.gen++
		c.log.Debug().Str("key", string(k)).Msg("invalidated")
	}
}

// fresh returns cached data for key when it exists and is not stale.
func (c *Cache) fresh(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.hasData || e.stale {
		return nil, false
	}
	return e.data, true
}

func (c *Cache) begin(key Key) (gen, flight uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.inflight++
	e.started++
	if !e.hasData {
		e.status = StatusLoading
	}
	return e.gen, e.started
}

func (c *Cache) finish(key Key, gen, flight uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[key]
	e.inflight--
	// A newer flight already landed; an older outcome must not replace it.
	if flight < e.stored {
		c.log.Debug().Str("key", string(key)).Msg("dropped superseded result")
		return
	}
	e.stored = flight
	if err != nil {
		e.err = err
		e.status = StatusError
		return
	}
	e.data = data
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	e.updatedAt = c.now()
	// An invalidation that landed mid-flight may postdate this response.
	e.stale = e.gen != gen
}

// Fetch returns the cached value for key, or runs fn when there is none or
// it is stale. Concurrent fetches of one key share a single fn call.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.fresh(key); ok {
		if t, ok := v.(T); ok {
			c.log.Debug().Str("key", string(key)).Msg("cache hit")
			return t, nil
		}
	}
	c.log.Debug().Str("key", string(key)).Msg("cache miss")
	return run(ctx, c, key, fn)
}

// Refetch runs fn regardless of the cached value and stores the outcome.
// It never joins a fetch already in flight, since that one may predate a
// mutation the caller needs to observe. Later Fetch calls join this one.
func Refetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	c.group.Forget(string(key))
	return run(ctx, c, key, fn)
}

func run[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	v, err, shared := c.group.Do(string(key), func() (any, error) {
		gen, flight := c.begin(key)
		val, err := fn(ctx)
		c.finish(key, gen, flight, val, err)
		return val, err
	})
	if shared {
		c.log.Debug().Str("key", string(key)).Msg("joined in-flight fetch")
	}
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

// Mutate runs a write once. On success it invalidates the given keys and
// returns fn's result; on failure nothing is invalidated.
func Mutate[T any](ctx context.Context, c *Cache, fn func(context.Context) (T, error), invalidates ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("mutation failed")
		return v, err
	}
	c.Invalidate(invalidates...)
	return v, nil
}
