package obj

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// Event is a fire-and-forget notification raised by the player.
type Event int

const (
	EventJump Event = iota
	EventFootstep
	EventHookFired
	EventHookHit
)

func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventFootstep:
		return "footstep"
	case EventHookFired:
		return "hook fired"
	case EventHookHit:
		return "hook hit"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Notifier receives player events, typically to play sounds.
type Notifier interface {
	Notify(e Event)
}

type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// GroundSensor answers whether there is ground within radius of point.
type GroundSensor interface {
	Grounded(point cp.Vector, radius float64) bool
}

// BodyMover moves an axis-aligned box by delta against solid geometry and
// reports which axes were blocked.
type BodyMover interface {
	MoveBody(pos, half, delta cp.Vector) (moved cp.Vector, blockedX, blockedY bool)
}

// InputFrame is one tick of player input. Pressed fields are edges.
type InputFrame struct {
	MoveX       float64
	JumpPressed bool
	FirePressed bool
	// Pointer is in world units and only meaningful when HasPointer is set.
	Pointer    cp.Vector
	HasPointer bool
}

type PlayerConfig struct {
	Acceleration float64
	Deceleration float64
	MaxSpeed     float64
	JumpForce    float64
	Gravity      float64

	GroundCheckRadius float64
	// GroundCheckOffset is the feet position relative to the body center.
	GroundCheckOffset cp.Vector
	HalfSize          cp.Vector

	PointerDistance       float64
	HookSpeed             float64
	HookMaxDistance       float64
	HookPullSpeed         float64
	GrappleArriveDistance float64

	Footsteps FootstepConfig
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Acceleration:          50,
		Deceleration:          50,
		MaxSpeed:              8,
		JumpForce:             15,
		Gravity:               40,
		GroundCheckRadius:     0.1,
		GroundCheckOffset:     cp.Vector{X: 0, Y: -0.5},
		HalfSize:              cp.Vector{X: 0.4, Y: 0.5},
		PointerDistance:       1.5,
		HookSpeed:             25,
		HookMaxDistance:       12,
		HookPullSpeed:         20,
		GrappleArriveDistance: 0.3,
		Footsteps:             DefaultFootstepConfig(),
	}
}

// Body is the kinematic state integrated once per tick.
type Body struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Grounded bool
}

// PlayerDeps are the collaborators a player is built with. Any of them may be
// nil: no sensor means never grounded, no pool means no grappling.
type PlayerDeps struct {
	Pool     *HookPool
	Sensor   GroundSensor
	Probe    HookProbe
	Solids   BodyMover
	Notifier Notifier
	Debug    bool
}

type Player struct {
	Config PlayerConfig
	Body   Body

	state        PlayerState
	grapplePoint cp.Vector
	hook         *Hook

	aim    cp.Vector
	origin cp.Vector
	start  cp.Vector

	facingLeft  bool
	inputLocked bool
	footsteps   *Footsteps

	// stuckFor is how long the grapple pull has been blocked by solids.
	stuckFor float64

	deps PlayerDeps
}

func NewPlayer(start cp.Vector, cfg PlayerConfig, deps PlayerDeps) *Player {
	p := &Player{
		Config:    cfg,
		Body:      Body{Pos: start},
		state:     PlayerGrounded,
		aim:       cp.Vector{X: 1},
		start:     start,
		footsteps: NewFootsteps(cfg.Footsteps),
		deps:      deps,
	}
	p.origin = p.hookOrigin()
	playerStates[p.state].enter(p)
	return p
}

// Update runs one fixed tick: ground check, hook, state input and logic,
// then integration.
func (p *Player) Update(dt float64, in InputFrame) {
	if p.inputLocked {
		in = InputFrame{}
	}
	if in.HasPointer {
		p.UpdatePointer(in.Pointer)
	}

	p.checkGround()

	if p.hook != nil {
		p.hook.Update(dt, p.deps.Probe)
		// the hook may have ended during its update
		if p.hook != nil && p.hook.Latched() {
			p.grapplePoint = p.hook.Position()
		}
	}

	playerStates[p.state].handleInput(p, in, dt)
	playerStates[p.state].update(p, dt)

	before := p.Body.Pos
	p.integrate(dt)
	if p.state == PlayerGrappling {
		p.checkGrappleProgress(before, dt)
	} else {
		p.stuckFor = 0
	}

	if p.footsteps.Update(dt, p.Body.Grounded, p.state == PlayerGrappling, p.Speed(), p.Config.MaxSpeed) {
		p.notify(EventFootstep)
	}

	if p.Body.Vel.X < -0.01 {
		p.facingLeft = true
	} else if p.Body.Vel.X > 0.01 {
		p.facingLeft = false
	}
}

// checkGrappleProgress releases a grapple whose pull has been blocked by
// solids for grappleStuckSeconds.
func (p *Player) checkGrappleProgress(before cp.Vector, dt float64) {
	start := before.Distance(p.grapplePoint)
	want := math.Min(p.Config.HookPullSpeed*dt, start)
	got := start - p.Body.Pos.Distance(p.grapplePoint)
	if want <= grappleEpsilon || got >= want*grappleMinProgress {
		p.stuckFor = 0
		return
	}
	p.stuckFor += dt
	if p.stuckFor >= grappleStuckSeconds && p.hook != nil {
		if p.deps.Debug {
			log.Printf("player: grapple blocked for %.2fs, releasing", p.stuckFor)
		}
		p.ToggleGrapple()
	}
}

func (p *Player) checkGround() {
	if p.deps.Sensor == nil {
		p.Body.Grounded = false
		return
	}
	feet := p.Body.Pos.Add(p.Config.GroundCheckOffset)
	p.Body.Grounded = p.deps.Sensor.Grounded(feet, p.Config.GroundCheckRadius)
	if p.Body.Grounded && p.Body.Vel.Y < 0 {
		p.Body.Vel.Y = 0
	}
}

func (p *Player) integrate(dt float64) {
	delta := p.Body.Vel.Mult(dt)
	if p.deps.Solids == nil {
		p.Body.Pos = p.Body.Pos.Add(delta)
		return
	}

	moved, blockedX, blockedY := p.deps.Solids.MoveBody(p.Body.Pos, p.Config.HalfSize, delta)
	p.Body.Pos = moved
	if blockedX {
		p.Body.Vel.X = 0
	}
	if blockedY {
		p.Body.Vel.Y = 0
	}
}

// SwitchState exits the current state and enters s.
func (p *Player) SwitchState(s PlayerState) {
	if s < 0 || s >= playerStateCount || s == p.state {
		return
	}
	if p.deps.Debug {
		log.Printf("player: %s -> %s", p.state, s)
	}
	playerStates[p.state].exit(p)
	p.state = s
	playerStates[p.state].enter(p)
}

// UpdatePointer aims the hook at a world point. A pointer on top of the
// player keeps the previous aim.
func (p *Player) UpdatePointer(world cp.Vector) {
	to := world.Sub(p.Body.Pos)
	if to.Length() > 1e-6 {
		p.aim = to.Normalize()
	}
	p.origin = p.hookOrigin()
}

func (p *Player) hookOrigin() cp.Vector {
	return p.Body.Pos.Add(p.aim.Mult(p.Config.PointerDistance))
}

// LaunchHook fires a hook along the current aim. It returns false when a hook
// is already out or there is no pool.
func (p *Player) LaunchHook() bool {
	if p.hook != nil || p.deps.Pool == nil {
		return false
	}

	h := p.deps.Pool.Acquire()
	h.SetHandlers(p.onGrappleHit, p.onHookEnded)
	p.hook = h
	p.origin = p.hookOrigin()
	h.Launch(p.origin, p.aim, p.Config.HookSpeed, p.Config.HookMaxDistance)
	p.notify(EventHookFired)
	return true
}

// ToggleGrapple cancels the active hook or launches a new one.
func (p *Player) ToggleGrapple() {
	if p.hook != nil {
		p.hook.Cancel()
		return
	}
	p.LaunchHook()
}

func (p *Player) onGrappleHit(point cp.Vector) {
	p.grapplePoint = point
	p.notify(EventHookHit)
	p.SwitchState(PlayerGrappling)
}

func (p *Player) onHookEnded() {
	p.hook = nil
	p.stuckFor = 0
	if p.state != PlayerGrappling {
		return
	}
	if p.Body.Grounded {
		p.SwitchState(PlayerGrounded)
	} else {
		p.SwitchState(PlayerAirborne)
	}
}

// Respawn moves the player back to its start with no velocity and no hook.
func (p *Player) Respawn() {
	if p.hook != nil {
		p.hook.Cancel()
	}
	p.Body = Body{Pos: p.start}
	p.footsteps.Reset()
	p.origin = p.hookOrigin()
	p.SwitchState(PlayerGrounded)
}

func (p *Player) RespawnAt(pos cp.Vector) {
	p.start = pos
	p.Respawn()
}

// LockInput makes Update ignore input until unlocked.
func (p *Player) LockInput(locked bool) {
	p.inputLocked = locked
}

// Halt zeroes the body's velocity.
func (p *Player) Halt() {
	p.Body.Vel = cp.Vector{}
}

func (p *Player) notify(e Event) {
	if p.deps.Notifier != nil {
		p.deps.Notifier.Notify(e)
	}
}

// SetConfig swaps tuning on a live player.
func (p *Player) SetConfig(cfg PlayerConfig) {
	p.Config = cfg
	p.footsteps = NewFootsteps(cfg.Footsteps)
}

func (p *Player) State() PlayerState { return p.state }
func (p *Player) Hook() *Hook { return p.hook }
func (p *Player) GrapplePoint() cp.Vector { return p.grapplePoint }
func (p *Player) Aim() cp.Vector { return p.aim }
func (p *Player) HookOrigin() cp.Vector { return p.origin }
func (p *Player) Start() cp.Vector { return p.start }
func (p *Player) InputLocked() bool { return p.inputLocked }
func (p *Player) FacingLeft() bool { return p.facingLeft }

// Feet is the ground check point in world units.
func (p *Player) Feet() cp.Vector {
	return p.Body.Pos.Add(p.Config.GroundCheckOffset)
}

// Speed is the body's speed in units per second.
func (p *Player) Speed() float64 {
	return math.Hypot(p.Body.Vel.X, p.Body.Vel.Y)
}
