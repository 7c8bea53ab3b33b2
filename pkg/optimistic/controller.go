// Package optimistic keeps a confirmed state plus a log of in-flight mutations,
// each with its own projection, so a failed mutation can be rolled back without
// disturbing the others.
package optimistic

import (
	"context"
	"sync"
)

// Projection derives a new state from s. It must not modify s.
type Projection[S any] func(s S) S

// Remote performs the real mutation. On success it returns the commit that folds
// the confirmed result into the base state; a nil commit leaves the base as is.
type Remote[S any] func(ctx context.Context) (Projection[S], error)

type operation[S any] struct {
	id      uint64
	project Projection[S]
}

// Controller is safe for concurrent use. Listeners run outside the lock, in
// registration order, once per state change.
type Controller[S any] struct {
	mu        sync.Mutex
	base      S
	ops       []operation[S]
	nextOpID  uint64
	nextSubID uint64
	listeners map[uint64]func(S)
	order     []uint64
}

func New[S any](base S) *Controller[S] {
	return &Controller[S]{base: base, listeners: map[uint64]func(S){}}
}

// State is the base with every pending projection applied in start order.
func (c *Controller[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

// Base is the last confirmed state.
func (c *Controller[S]) Base() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base
}

// IsOptimistic reports whether any mutation is still in flight.
func (c *Controller[S]) IsOptimistic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ops) > 0
}

func (c *Controller[S]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ops)
}

// Reset replaces the confirmed state. In-flight projections stay applied on top.
func (c *Controller[S]) Reset(base S) {
	c.mu.Lock()
	c.base = base
	visible, listeners := c.visibleLocked(), c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, visible)
}

// Apply makes project visible immediately, then runs remote. On success the op
// is dropped and the commit folded into the base. On failure only the op is
// dropped, so the visible state is what it would be had the mutation never
// started. The remote error is returned unchanged.
func (c *Controller[S]) Apply(ctx context.Context, project Projection[S], remote Remote[S]) error {
	c.mu.Lock()
	c.nextOpID++
	id := c.nextOpID
	c.ops = append(c.ops, operation[S]{id: id, project: project})
	visible, listeners := c.visibleLocked(), c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, visible)

	commit, err := remote(ctx)

	c.mu.Lock()
	c.removeLocked(id)
	if err == nil && commit != nil {
		c.base = commit(c.base)
	}
	visible, listeners = c.visibleLocked(), c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, visible)
	return err
}

// OnChange registers fn for every state change and returns a function that
// removes it.
func (c *Controller[S]) OnChange(fn func(S)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.listeners[id] = fn
	c.order = append(c.order, id)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
		for i, sub := range c.order {
			if sub == id {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
	}
}

func (c *Controller[S]) visibleLocked() S {
	state := c.base
	for _, op := range c.ops {
		state = op.project(state)
	}
	return state
}

func (c *Controller[S]) removeLocked(id uint64) {
	for i, op := range c.ops {
		if op.id == id {
			c.ops = append(c.ops[:i:i], c.ops[i+1:]...)
			return
		}
	}
}

func (c *Controller[S]) listenersLocked() []func(S) {
	out := make([]func(S), 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.listeners[id])
	}
	return out
}

func notify[S any](listeners []func(S), state S) {
	for _, fn := range listeners {
		fn(state)
	}
}
