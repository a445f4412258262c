package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/gophcache/internal/client/durable"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

// ErrClosed is reported for persistence ops issued after Close.
var ErrClosed = errors.New("cache closed")

type entry struct {
	value   any
	deleted bool
}

type Cache struct {
	store    durable.Store
	log      logging.Logger
	observer FailureObserver

	mu  sync.RWMutex
	mem map[string]entry

	loads singleflight.Group

	// qmu is taken after mu when both are held.
	qmu     sync.Mutex
	idle    chan struct{} // closed while pending == 0
	fifos   map[string][]task
	pending int
	closed  bool
}

type Option func(*Cache)

func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.log = logging.OrDiscard(l) }
}

// WithObserver replaces the default observer, which logs failures.
func WithObserver(o FailureObserver) Option {
	return func(c *Cache) { c.observer = o }
}

func New(store durable.Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		log:   logging.Discard(),
		mem:   map[string]entry{},
		fifos: map[string][]task{},
		idle:  make(chan struct{}),
	}
	close(c.idle)
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = LogObserver{Log: c.log}
	}
	return c
}

// Read returns the value for key, loading it from the store on a memory
// miss. fallback supplies the value when the key is deleted, missing from the
// store, unreadable, or memoized with a different type.
//
// Concurrent misses on one key share a single store read; the value is
// decoded as the T of the caller that started it.
func Read[T any](ctx context.Context, c *Cache, key string, fallback func() T) T {
	if v, ok := c.lookup(key); ok {
		return valueOr(v, fallback)
	}
	v, _, _ := c.loads.Do(key, func() (any, error) {
		return load(ctx, c, key, fallback), nil
	})
	return valueOr(v, fallback)
}

func valueOr[T any](v any, fallback func() T) T {
	if t, ok := v.(T); ok {
		return t
	}
	return fallback()
}

func load[T any](ctx context.Context, c *Cache, key string, fallback func() T) any {
	if v, ok := c.lookup(key); ok {
		return v
	}

	raw, err := c.store.Get(ctx, key)
	var value T
	switch {
	case err == nil:
		value, err = decode[T](raw)
		if err != nil {
			c.report(ctx, Failure{Key: key, Op: OpGet, Err: fmt.Errorf("decode: %w", err)})
			value = fallback()
		}
	case errors.Is(err, durable.ErrNotFound):
		c.log.Debug(ctx, "cache miss", "key", key)
		value = fallback()
	case ctx.Err() != nil:
		// not memoized: the next read retries
		return fallback()
	default:
		c.report(ctx, Failure{Key: key, Op: OpGet, Err: err})
		value = fallback()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.mem[key]; ok {
		return e.value
	}
	c.mem[key] = entry{value: value}
	return value
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.mem[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Write stores value in memory and schedules its persistence. When persisted
// is given, its first element is stored instead of value.
//
// A key already held in memory is persisted with Update, a new one with Set.
func (c *Cache) Write(ctx context.Context, key string, value any, persisted ...any) {
	p := value
	if len(persisted) > 0 {
		p = persisted[0]
	}
	raw, encErr := encode(p)

	c.mu.Lock()
	prev, existed := c.mem[key]
	c.mem[key] = entry{value: value}
	op := OpSet
	if existed && !prev.deleted {
		op = OpUpdate
	}
	var err error
	if encErr != nil {
		err = fmt.Errorf("encode: %w", encErr)
	} else {
		err = c.enqueue(ctx, key, task{op: op, value: raw})
	}
	c.mu.Unlock()

	if err != nil {
		c.report(ctx, Failure{Key: key, Op: op, Err: err})
	}
}

// Delete tombstones key in memory and schedules its removal from the store.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	c.mem[key] = entry{deleted: true}
	err := c.enqueue(ctx, key, task{op: OpDelete})
	c.mu.Unlock()

	if err != nil {
		c.report(ctx, Failure{Key: key, Op: OpDelete, Err: err})
	}
}

// Tombstoned reports whether key was deleted by this cache and not written
// since.
func (c *Cache) Tombstoned(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mem[key].deleted
}

// Clear drops every memory entry whose persistence is not queued, so later
// reads go back to the store. Keys with queued ops keep their entry until the
// store has caught up, otherwise a read could return the older stored value.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qmu.Lock()
	defer c.qmu.Unlock()

	for key := range c.mem {
		if _, queued := c.fifos[key]; !queued {
			delete(c.mem, key)
		}
	}
}

func (c *Cache) report(ctx context.Context, f Failure) {
	c.observer.OnFailure(ctx, f)
}

func encode(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return bytes.Clone(b), nil
	}
	return json.Marshal(v)
}

func decode[T any](raw []byte) (T, error) {
	var out T
	if b, ok := any(&out).(*[]byte); ok {
		*b = raw
		return out, nil
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
