package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Hookable is implemented by anything a hook can latch onto.
type Hookable interface {
	OnHooked(point cp.Vector)
}

// Mover is a hookable that moves. A hook latched to a Mover keeps its offset
// from the mover's position so the latch point follows it.
type Mover interface {
	Position() cp.Vector
}

// HookProbe reports the first hookable crossed by the segment from..to.
type HookProbe interface {
	HookTarget(from, to cp.Vector) (Hookable, cp.Vector, bool)
}

// HookOptions control what happens when a hook latches.
type HookOptions struct {
	// ParentToHit makes a latched hook follow a moving target.
	ParentToHit bool
	// DisableColliderWhenLatched stops further probing once latched.
	DisableColliderWhenLatched bool
}

func DefaultHookOptions() HookOptions {
	return HookOptions{ParentToHit: true, DisableColliderWhenLatched: true}
}

// Hook is a kinematic grapple projectile. It flies until it crosses a
// hookable or exceeds its max travel distance. A latched hook stays live until
// it is cancelled.
//
// Hook instances belong to a HookPool. Callbacks are single-slot and are
// cleared whenever the hook ends so a reused hook never calls a stale owner.
type Hook struct {
	id   int
	pool *HookPool
	opts HookOptions

	pos         cp.Vector
	origin      cp.Vector
	dir         cp.Vector
	speed       float64
	maxDistance float64

	active   bool
	latched  bool
	ended    bool
	collides bool

	parent       Mover
	parentOffset cp.Vector

	onHit   func(point cp.Vector)
	onEnded func()
}

func (h *Hook) ID() int { return h.id }
func (h *Hook) Position() cp.Vector { return h.pos }
func (h *Hook) Origin() cp.Vector { return h.origin }
func (h *Hook) Direction() cp.Vector { return h.dir }
func (h *Hook) Speed() float64 { return h.speed }
func (h *Hook) MaxDistance() float64 { return h.maxDistance }
func (h *Hook) Active() bool { return h.active }
func (h *Hook) Latched() bool { return h.latched }
func (h *Hook) Ended() bool { return h.ended }
func (h *Hook) Colliding() bool { return h.collides }
func (h *Hook) Flying() bool { return h.active && !h.latched && !h.ended }
func (h *Hook) Traveled() float64 { return h.origin.Distance(h.pos) }
func (h *Hook) Options() HookOptions { return h.opts }
func (h *Hook) SetOptions(o HookOptions) { h.opts = o }

// SetHandlers installs the hit and ended callbacks, replacing any previous ones.
func (h *Hook) SetHandlers(onHit func(point cp.Vector), onEnded func()) {
	h.onHit = onHit
	h.onEnded = onEnded
}

// Launch resets the hook and starts it flying from origin. A zero direction
// launches along +x. Speed and distance are clamped to be non-negative.
func (h *Hook) Launch(origin, dir cp.Vector, speed, maxDistance float64) {
	h.reset()
	h.pos = origin
	h.origin = origin
	h.dir = normalizeOr(dir, cp.Vector{X: 1})
	h.speed = math.Max(0, speed)
	h.maxDistance = math.Max(0, maxDistance)
	h.collides = true
}

// Update advances a flying hook by one tick and probes for a latch along the
// travelled segment. A latched hook follows its parent when it has one.
func (h *Hook) Update(dt float64, probe HookProbe) {
	if !h.active || h.ended {
		return
	}
	if h.latched {
		if h.parent != nil {
			h.pos = h.parent.Position().Add(h.parentOffset)
		}
		return
	}

	prev := h.pos
	h.pos = h.pos.Add(h.dir.Mult(h.speed * dt))

	if probe != nil && h.collides {
		if target, point, ok := probe.HookTarget(prev, h.pos); ok {
			h.Latch(point, target)
			return
		}
	}

	if h.Traveled() > h.maxDistance {
		h.end()
	}
}

// Latch freezes the hook at point and notifies the target and the owner.
// It returns false when the hook is not flying or cannot collide.
func (h *Hook) Latch(point cp.Vector, target Hookable) bool {
	if !h.active || h.ended || h.latched || !h.collides {
		return false
	}
	h.latched = true
	h.pos = point

	if target != nil {
		target.OnHooked(point)
	}
	if h.onHit != nil {
		h.onHit(point)
	}
	// the hit handler may have cancelled us
	if h.ended || !h.active {
		return true
	}

	if h.opts.ParentToHit {
		if m, ok := target.(Mover); ok {
			h.parent = m
			h.parentOffset = point.Sub(m.Position())
		}
	}
	if h.opts.DisableColliderWhenLatched {
		h.collides = false
	}
	return true
}

// Cancel ends the hook. Cancelling an ended or pooled hook does nothing.
func (h *Hook) Cancel() {
	h.end()
}

func (h *Hook) end() {
	if !h.active || h.ended {
		return
	}
	h.ended = true

	// owner is told before the hook goes back to the pool
	if h.onEnded != nil {
		h.onEnded()
	}
	h.onHit = nil
	h.onEnded = nil
	h.parent = nil
	h.collides = true

	if h.pool != nil {
		h.pool.Release(h)
	}
}

func (h *Hook) reset() {
	h.pos = cp.Vector{}
	h.origin = cp.Vector{}
	h.dir = cp.Vector{}
	h.speed = 0
	h.maxDistance = 0
	h.latched = false
	h.ended = false
	h.collides = true
	h.parent = nil
	h.parentOffset = cp.Vector{}
}

func normalizeOr(v, fallback cp.Vector) cp.Vector {
	l := v.Length()
	if l <= 1e-9 {
		return fallback
	}
	return v.Mult(1 / l)
}
