package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeSensor struct {
	grounded bool
}

func (s *fakeSensor) Grounded(cp.Vector, float64) bool { return s.grounded }

type eventLog []Event

func (l *eventLog) Notify(e Event) { *l = append(*l, e) }

func (l eventLog) count(e Event) int {
	n := 0
	for _, got := range l {
		if got == e {
			n++
		}
	}
	return n
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPlayerLocomotion(t *testing.T) {
	cases := []struct {
		name   string
		inputs []float64
		wantVX float64
		wantX  float64
	}{
		{"accelerate_one_tick", []float64{1}, 5, 0.5},
		{"reach_max_speed", []float64{1, 1}, 8, 1.3},
		{"decelerate", []float64{1, 1, 0}, 3, 1.6},
		{"stop", []float64{1, 1, 0, 0}, 0, 1.6},
		{"left", []float64{-1}, -5, -0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{Sensor: &fakeSensor{grounded: true}})
			for _, axis := range c.inputs {
				p.Update(0.1, InputFrame{MoveX: axis})
			}
			if !near(p.Body.Vel.X, c.wantVX, 1e-9) || !near(p.Body.Pos.X, c.wantX, 1e-9) {
				t.Fatalf("vx=%v x=%v, want vx=%v x=%v", p.Body.Vel.X, p.Body.Pos.X, c.wantVX, c.wantX)
			}
			if p.State() != PlayerGrounded {
				t.Fatalf("state = %s, want grounded", p.State())
			}
		})
	}
}

func TestPlayerFallsWithoutSensor(t *testing.T) {
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{})
	if p.State() != PlayerGrounded {
		t.Fatalf("initial state = %s, want grounded", p.State())
	}

	p.Update(0.1, InputFrame{})
	if p.State() != PlayerAirborne {
		t.Fatalf("state = %s, want airborne", p.State())
	}

	p.Update(0.1, InputFrame{})
	p.Update(0.1, InputFrame{})
	if !near(p.Body.Vel.Y, -8, 1e-9) || !near(p.Body.Pos.Y, -1.2, 1e-9) {
		t.Fatalf("vy=%v y=%v, want vy=-8 y=-1.2", p.Body.Vel.Y, p.Body.Pos.Y)
	}
}

func TestPlayerJumpAndLand(t *testing.T) {
	sensor := &fakeSensor{grounded: true}
	events := &eventLog{}
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{Sensor: sensor, Notifier: events})

	p.Update(0.1, InputFrame{JumpPressed: true})
	if p.State() != PlayerAirborne {
		t.Fatalf("state after jump = %s, want airborne", p.State())
	}
	// jump impulse minus one tick of gravity
	if !near(p.Body.Vel.Y, 11, 1e-9) {
		t.Fatalf("vy after jump = %v, want 11", p.Body.Vel.Y)
	}
	if events.count(EventJump) != 1 {
		t.Fatalf("jump events = %d, want 1", events.count(EventJump))
	}

	// still inside the sensor radius while rising
	p.Update(0.1, InputFrame{})
	if p.State() != PlayerAirborne {
		t.Fatalf("rising player landed early")
	}

	sensor.grounded = false
	for p.Body.Vel.Y > 0 {
		p.Update(0.1, InputFrame{})
	}
	p.Update(0.1, InputFrame{})

	sensor.grounded = true
	p.Update(0.1, InputFrame{})
	if p.State() != PlayerGrounded {
		t.Fatalf("state after landing = %s, want grounded", p.State())
	}
	if p.Body.Vel.Y != 0 {
		t.Fatalf("vy after landing = %v, want 0", p.Body.Vel.Y)
	}
}

func TestPlayerSingleActiveHook(t *testing.T) {
	pool := NewHookPool(5, DefaultHookOptions())
	events := &eventLog{}
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{
		Pool:     pool,
		Sensor:   &fakeSensor{grounded: true},
		Notifier: events,
	})

	if !p.LaunchHook() {
		t.Fatalf("first launch failed")
	}
	first := p.Hook()
	if p.LaunchHook() {
		t.Fatalf("second launch should be a no-op")
	}
	if p.Hook() != first || pool.InUse() != 1 {
		t.Fatalf("second launch changed the hook or borrowed another, in use=%d", pool.InUse())
	}
	if events.count(EventHookFired) != 1 {
		t.Fatalf("hook fired events = %d, want 1", events.count(EventHookFired))
	}

	// fire again cancels
	p.Update(1.0/60, InputFrame{FirePressed: true})
	if p.Hook() != nil || pool.InUse() != 0 {
		t.Fatalf("fire should cancel the active hook")
	}
	if p.State() != PlayerGrounded {
		t.Fatalf("state = %s, want grounded", p.State())
	}
}

func TestPlayerHookMissReturnsToPool(t *testing.T) {
	cfg := DefaultPlayerConfig()
	cfg.HookMaxDistance = 5
	pool := NewHookPool(5, DefaultHookOptions())
	p := NewPlayer(cp.Vector{}, cfg, PlayerDeps{Pool: pool, Sensor: &fakeSensor{grounded: true}})

	p.Update(1.0/60, InputFrame{FirePressed: true})
	if p.Hook() == nil {
		t.Fatalf("fire should launch a hook")
	}
	if p.State() != PlayerGrounded {
		t.Fatalf("flying hook changed state to %s", p.State())
	}

	for i := 0; i < 60 && p.Hook() != nil; i++ {
		p.Update(1.0/60, InputFrame{})
	}
	if p.Hook() != nil {
		t.Fatalf("hook never missed")
	}
	if pool.Free() != 5 || pool.InUse() != 0 {
		t.Fatalf("pool free=%d in use=%d, want 5 and 0", pool.Free(), pool.InUse())
	}
	if p.State() != PlayerGrounded {
		t.Fatalf("state = %s, want grounded", p.State())
	}
}

func TestPlayerGrapplePullsToLatch(t *testing.T) {
	latch := cp.Vector{X: 3, Y: 4}
	target := &fakeTarget{}
	probe := probeFunc(func(from, to cp.Vector) (Hookable, cp.Vector, bool) {
		if to.Length() >= 5 {
			return target, latch, true
		}
		return nil, cp.Vector{}, false
	})

	pool := NewHookPool(5, DefaultHookOptions())
	events := &eventLog{}
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{Pool: pool, Probe: probe, Notifier: events})

	p.Update(1.0/60, InputFrame{FirePressed: true, Pointer: latch, HasPointer: true})
	for i := 0; i < 60 && p.State() != PlayerGrappling; i++ {
		p.Update(1.0/60, InputFrame{})
	}
	if p.State() != PlayerGrappling {
		t.Fatalf("hook never latched, state = %s", p.State())
	}
	if p.GrapplePoint() != latch {
		t.Fatalf("grapple point = %v, want %v", p.GrapplePoint(), latch)
	}
	if events.count(EventHookHit) != 1 || len(target.hooked) != 1 {
		t.Fatalf("hit events=%d target hooks=%d, want 1 and 1", events.count(EventHookHit), len(target.hooked))
	}

	last := p.Body.Pos.Distance(latch)
	for i := 0; i < 600 && p.State() == PlayerGrappling; i++ {
		p.Update(1.0/60, InputFrame{})
		d := p.Body.Pos.Distance(latch)
		if d > last+1e-9 {
			t.Fatalf("distance grew from %v to %v on tick %d", last, d, i)
		}
		last = d
	}
	if p.State() == PlayerGrappling {
		t.Fatalf("never released the grapple")
	}
	if last >= 0.3 {
		t.Fatalf("released at distance %v, want < 0.3", last)
	}
	if p.State() != PlayerAirborne {
		t.Fatalf("state after release = %s, want airborne", p.State())
	}
	if pool.InUse() != 0 {
		t.Fatalf("hook not returned to pool")
	}
}

func TestPlayerRespawn(t *testing.T) {
	pool := NewHookPool(1, DefaultHookOptions())
	p := NewPlayer(cp.Vector{X: 1, Y: 1}, DefaultPlayerConfig(), PlayerDeps{Pool: pool})
	p.Body.Vel = cp.Vector{X: 3, Y: -2}
	p.LaunchHook()

	p.RespawnAt(cp.Vector{X: 10, Y: 2})
	if p.Body.Pos != (cp.Vector{X: 10, Y: 2}) || p.Body.Vel != (cp.Vector{}) {
		t.Fatalf("body = %+v after respawn", p.Body)
	}
	if p.Hook() != nil || pool.InUse() != 0 {
		t.Fatalf("respawn should cancel the hook")
	}
	if p.State() != PlayerGrounded || p.Start() != (cp.Vector{X: 10, Y: 2}) {
		t.Fatalf("state=%s start=%v", p.State(), p.Start())
	}
}

func TestPlayerPointer(t *testing.T) {
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{})
	if p.Aim() != (cp.Vector{X: 1}) {
		t.Fatalf("initial aim = %v, want +x", p.Aim())
	}

	p.UpdatePointer(cp.Vector{X: 3, Y: 4})
	if !near(p.Aim().X, 0.6, 1e-9) || !near(p.Aim().Y, 0.8, 1e-9) {
		t.Fatalf("aim = %v", p.Aim())
	}
	if !near(p.HookOrigin().X, 0.9, 1e-9) || !near(p.HookOrigin().Y, 1.2, 1e-9) {
		t.Fatalf("origin = %v", p.HookOrigin())
	}

	p.UpdatePointer(cp.Vector{})
	if !near(p.Aim().X, 0.6, 1e-9) {
		t.Fatalf("pointer on the player changed aim to %v", p.Aim())
	}
}

func TestPlayerInputLock(t *testing.T) {
	pool := NewHookPool(1, DefaultHookOptions())
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{Pool: pool, Sensor: &fakeSensor{grounded: true}})
	p.LockInput(true)
	p.Update(0.1, InputFrame{MoveX: 1, JumpPressed: true, FirePressed: true})

	if p.Body.Vel.X != 0 || p.State() != PlayerGrounded || p.Hook() != nil {
		t.Fatalf("locked input moved the player: vel=%v state=%s", p.Body.Vel, p.State())
	}

	p.LockInput(false)
	p.Update(0.1, InputFrame{MoveX: 1})
	if p.Body.Vel.X == 0 {
		t.Fatalf("unlocked input ignored")
	}
}

func TestPlayerStateStrings(t *testing.T) {
	for s := PlayerState(0); s < playerStateCount; s++ {
		if s.String() == "" {
			t.Fatalf("state %d has no name", int(s))
		}
	}
	if PlayerState(42).String() != "PlayerState(42)" {
		t.Fatalf("unknown state string = %q", PlayerState(42).String())
	}
}

func TestPlayerStateTableComplete(t *testing.T) {
	if err := checkStateTable(playerStates[:]); err != nil {
		t.Fatalf("dispatch table: %v", err)
	}

	table := playerStates
	table[PlayerAirborne].update = nil
	if err := checkStateTable(table[:]); err == nil {
		t.Fatalf("a state without an update handler should be rejected")
	}
}

func TestPlayerGrappleAtLatchPoint(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		want     PlayerState
	}{
		{"airborne", false, PlayerAirborne},
		{"grounded", true, PlayerGrounded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pool := NewHookPool(1, DefaultHookOptions())
			p := NewPlayer(cp.Vector{X: 1, Y: 1}, DefaultPlayerConfig(), PlayerDeps{
				Pool:   pool,
				Sensor: &fakeSensor{grounded: c.grounded},
			})
			if !p.LaunchHook() {
				t.Fatalf("launch failed")
			}
			p.Hook().Latch(p.Body.Pos, &fakeTarget{})
			if p.State() != PlayerGrappling {
				t.Fatalf("state after latch = %s, want grappling", p.State())
			}

			p.Update(1.0/60, InputFrame{})

			v := p.Body.Vel
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(p.Body.Pos.X) || math.IsNaN(p.Body.Pos.Y) {
				t.Fatalf("NaN in body: %+v", p.Body)
			}
			if v != (cp.Vector{}) {
				t.Fatalf("vel = %v, want zero", v)
			}
			if p.State() != c.want {
				t.Fatalf("state = %s, want %s", p.State(), c.want)
			}
			if p.Hook() != nil || pool.InUse() != 0 {
				t.Fatalf("hook not returned to pool, in use=%d", pool.InUse())
			}
		})
	}
}

func TestPlayerGrappleBlockedBySolidsReleases(t *testing.T) {
	cw, _ := newTestWorld()
	pool := NewHookPool(1, DefaultHookOptions())
	p := NewPlayer(cp.Vector{X: 4, Y: 2}, DefaultPlayerConfig(), PlayerDeps{
		Pool:   pool,
		Sensor: cw,
		Solids: cw,
	})
	if !p.LaunchHook() {
		t.Fatalf("launch failed")
	}
	// latched on the far side of the wall at x 6..7
	p.Hook().Latch(cp.Vector{X: 9, Y: 2}, &fakeTarget{})

	ticks := 0
	for ; ticks < 120 && p.State() == PlayerGrappling; ticks++ {
		p.Update(1.0/60, InputFrame{})
	}
	if p.State() == PlayerGrappling {
		t.Fatalf("still grappling after %d ticks at %v", ticks, p.Body.Pos)
	}
	if ticks > 60 {
		t.Fatalf("took %d ticks to release a blocked grapple", ticks)
	}
	if p.Body.Pos.X > 6-p.Config.HalfSize.X {
		t.Fatalf("body passed into the wall: %v", p.Body.Pos)
	}
	if p.Hook() != nil || pool.InUse() != 0 {
		t.Fatalf("hook not returned to pool")
	}
}

func TestPlayerFootstepsFollowSpeed(t *testing.T) {
	cases := []struct {
		name  string
		axis  float64
		steps bool
	}{
		{"right", 1, true},
		{"left", -1, true},
		{"idle", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := &eventLog{}
			p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{
				Sensor:   &fakeSensor{grounded: true},
				Notifier: events,
			})
			for i := 0; i < 60; i++ {
				p.Update(1.0/60, InputFrame{MoveX: c.axis})
			}
			got := events.count(EventFootstep)
			if c.steps && got < 2 {
				t.Fatalf("footsteps = %d over a second of running, want at least 2", got)
			}
			if !c.steps && got != 0 {
				t.Fatalf("footsteps = %d standing still, want 0", got)
			}
		})
	}
}

func TestPlayerFacing(t *testing.T) {
	p := NewPlayer(cp.Vector{}, DefaultPlayerConfig(), PlayerDeps{Sensor: &fakeSensor{grounded: true}})
	if p.FacingLeft() {
		t.Fatalf("player should start facing right")
	}
	p.Update(0.1, InputFrame{MoveX: -1})
	if !p.FacingLeft() {
		t.Fatalf("moving left should face left, vel=%v", p.Body.Vel)
	}
	// coasting to a stop keeps the last facing
	for i := 0; i < 5; i++ {
		p.Update(0.1, InputFrame{})
	}
	if !p.FacingLeft() || p.Body.Vel.X != 0 {
		t.Fatalf("facing left=%v vel=%v after stopping", p.FacingLeft(), p.Body.Vel)
	}
	p.Update(0.1, InputFrame{MoveX: 1})
	if p.FacingLeft() {
		t.Fatalf("moving right should face right")
	}
	p.LockInput(true)
	if !p.InputLocked() {
		t.Fatalf("InputLocked should report the lock")
	}
}
