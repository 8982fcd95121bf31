package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestHookPoolAcquireRelease(t *testing.T) {
	cases := []struct {
		name          string
		prewarm       int
		acquire       int
		wantAllocated int
	}{
		{"empty_allocates", 0, 1, 1},
		{"within_prewarm", 5, 3, 5},
		{"past_prewarm", 2, 4, 4},
		{"negative_prewarm", -1, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewHookPool(c.prewarm, DefaultHookOptions())
			hooks := make([]*Hook, 0, c.acquire)
			for i := 0; i < c.acquire; i++ {
				h := p.Acquire()
				if !h.Active() {
					t.Fatalf("acquired hook should be active")
				}
				hooks = append(hooks, h)
			}
			if p.Allocated() != c.wantAllocated {
				t.Fatalf("allocated = %d, want %d", p.Allocated(), c.wantAllocated)
			}
			if p.InUse() != c.acquire {
				t.Fatalf("in use = %d, want %d", p.InUse(), c.acquire)
			}

			for _, h := range hooks {
				p.Release(h)
			}
			if p.InUse() != 0 || p.Free() != c.wantAllocated {
				t.Fatalf("after release in use=%d free=%d", p.InUse(), p.Free())
			}
		})
	}
}

func TestHookPoolFIFO(t *testing.T) {
	p := NewHookPool(0, DefaultHookOptions())
	a := p.Acquire()
	b := p.Acquire()
	p.Release(b)
	p.Release(a)

	if got := p.Acquire(); got != b {
		t.Fatalf("expected the first released hook back, got id %d", got.ID())
	}
	if got := p.Acquire(); got != a {
		t.Fatalf("expected the second released hook back, got id %d", got.ID())
	}
}

func TestHookPoolReleaseClearsState(t *testing.T) {
	p := NewHookPool(1, DefaultHookOptions())
	h := p.Acquire()

	called := false
	h.SetHandlers(func(cp.Vector) { called = true }, func() { called = true })
	h.Launch(cp.Vector{X: 3}, cp.Vector{Y: 1}, 10, 10)
	h.Latch(cp.Vector{X: 3, Y: 1}, nil)
	called = false

	p.Release(h)
	if h.Active() || h.Latched() || h.Ended() || !h.Colliding() {
		t.Fatalf("released hook kept flags: active=%v latched=%v ended=%v colliding=%v",
			h.Active(), h.Latched(), h.Ended(), h.Colliding())
	}

	again := p.Acquire()
	if again != h {
		t.Fatalf("expected the pooled hook to be reused")
	}
	again.Launch(cp.Vector{}, cp.Vector{X: 1}, 1, 0.01)
	again.Update(1, nil)
	if called {
		t.Fatalf("stale handler fired on a reused hook")
	}
}

func TestHookPoolOptions(t *testing.T) {
	p := NewHookPool(1, DefaultHookOptions())
	p.SetOptions(HookOptions{})
	if got := p.Acquire().Options(); got != (HookOptions{}) {
		t.Fatalf("options = %+v, want zero", got)
	}
}
