package obj

import (
	queue "gopkg.in/eapache/queue.v1"
)

// HookPool recycles hook instances in FIFO order. It has no capacity ceiling:
// Acquire on an empty pool allocates a fresh hook.
type HookPool struct {
	free      *queue.Queue
	allocated int
	opts      HookOptions
}

// NewHookPool pre-warms the pool with prewarm hooks. Negative values are
// treated as zero.
func NewHookPool(prewarm int, opts HookOptions) *HookPool {
	p := &HookPool{free: queue.New(), opts: opts}
	for i := 0; i < prewarm; i++ {
		p.free.Add(p.allocate())
	}
	return p
}

// Acquire hands out a free hook, or a new one when none are free. The caller
// owns the hook until it ends.
func (p *HookPool) Acquire() *Hook {
	var h *Hook
	if p.free.Length() > 0 {
		h = p.free.Remove().(*Hook)
	} else {
		h = p.allocate()
	}
	h.reset()
	h.opts = p.opts
	h.active = true
	return h
}

// Release returns a hook to the pool with its flags and callbacks cleared.
// The caller must not keep the reference. Releasing twice without an
// Acquire in between is a caller bug.
func (p *HookPool) Release(h *Hook) {
	if h == nil {
		return
	}
	h.reset()
	h.onHit = nil
	h.onEnded = nil
	h.active = false
	p.free.Add(h)
}

// SetOptions changes the latch options applied to hooks on their next Acquire.
func (p *HookPool) SetOptions(opts HookOptions) {
	p.opts = opts
}

// Free is the number of hooks waiting in the pool.
func (p *HookPool) Free() int {
	return p.free.Length()
}

// Allocated is the number of hooks ever created by this pool.
func (p *HookPool) Allocated() int {
	return p.allocated
}

// InUse is the number of hooks currently borrowed.
func (p *HookPool) InUse() int {
	return p.allocated - p.free.Length()
}

func (p *HookPool) allocate() *Hook {
	p.allocated++
	return &Hook{id: p.allocated, pool: p, opts: p.opts, collides: true}
}
