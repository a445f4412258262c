package cache

import (
	"context"

	"github.com/dmitrijs2005/gophcache/internal/client/durable"
)

type task struct {
	ctx   context.Context
	op    Op
	value []byte
}

// enqueue appends t to the FIFO of key. Callers hold mu.
func (c *Cache) enqueue(ctx context.Context, key string, t task) error {
	t.ctx = context.WithoutCancel(ctx)

	c.qmu.Lock()
	if c.closed {
		c.qmu.Unlock()
		return ErrClosed
	}
	fifo, active := c.fifos[key]
	c.fifos[key] = append(fifo, t)
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++
	c.qmu.Unlock()

	if !active {
		go c.drain(key)
	}
	return nil
}

// drain applies the ops queued for key until its FIFO is empty. The FIFO is
// removed in the same critical section that settles its last op.
func (c *Cache) drain(key string) {
	for {
		c.qmu.Lock()
		fifo := c.fifos[key]
		t := fifo[0]
		fifo[0] = task{}
		c.fifos[key] = fifo[1:]
		c.qmu.Unlock()

		c.apply(key, t)

		c.qmu.Lock()
		c.pending--
		done := len(c.fifos[key]) == 0
		if done {
			delete(c.fifos, key)
		}
		if c.pending == 0 {
			close(c.idle)
		}
		c.qmu.Unlock()

		if done {
			return
		}
	}
}

func (c *Cache) apply(key string, t task) {
	var err error
	switch t.op {
	case OpSet:
		err = c.store.Set(t.ctx, key, t.value)
	case OpUpdate:
		err = c.store.Update(t.ctx, key, durable.Replace(t.value))
	case OpDelete:
		err = c.store.Delete(t.ctx, key)
	}
	if err != nil {
		c.report(t.ctx, Failure{Key: key, Op: t.op, Err: err})
		return
	}
	c.log.Debug(t.ctx, "persisted", "key", key, "op", string(t.op))
}

// Flush blocks until every queued op has been applied or ctx is done.
func (c *Cache) Flush(ctx context.Context) error {
	c.qmu.Lock()
	idle := c.idle
	c.qmu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes the queue and rejects later persistence. Memory stays
// readable and writable.
func (c *Cache) Close(ctx context.Context) error {
	err := c.Flush(ctx)

	c.qmu.Lock()
	c.closed = true
	c.qmu.Unlock()

	return err
}
