package obj

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
)

// PlayerState is the player's locomotion mode. Exactly one is active.
type PlayerState int

const (
	PlayerGrounded PlayerState = iota
	PlayerAirborne
	PlayerGrappling

	playerStateCount
)

func (s PlayerState) String() string {
	switch s {
	case PlayerGrounded:
		return "grounded"
	case PlayerAirborne:
		return "airborne"
	case PlayerGrappling:
		return "grappling"
	default:
		return fmt.Sprintf("PlayerState(%d)", int(s))
	}
}

const (
	// grappleEpsilon guards the pull direction normalization.
	grappleEpsilon = 0.001

	// A grapple pull covering less than grappleMinProgress of its expected
	// step for grappleStuckSeconds is released.
	grappleMinProgress  = 0.1
	grappleStuckSeconds = 0.25
)

type playerStateHandlers struct {
	enter       func(p *Player)
	exit        func(p *Player)
	handleInput func(p *Player, in InputFrame, dt float64)
	update      func(p *Player, dt float64)
}

// playerStates is indexed by PlayerState. Every state must have a full entry;
// init enforces it so a new state cannot be half wired. The table is filled
// in init because the handlers reach back into it through SwitchState.
var playerStates [playerStateCount]playerStateHandlers

func init() {
	playerStates = [playerStateCount]playerStateHandlers{
		PlayerGrounded: {
			enter:       func(p *Player) {},
			exit:        func(p *Player) {},
			handleInput: groundedInput,
			update:      groundedUpdate,
		},
		PlayerAirborne: {
			enter:       func(p *Player) {},
			exit:        func(p *Player) {},
			handleInput: airborneInput,
			update:      airborneUpdate,
		},
		PlayerGrappling: {
			enter:       func(p *Player) {},
			exit:        func(p *Player) {},
			handleInput: grapplingInput,
			update:      grapplingUpdate,
		},
	}
	if err := checkStateTable(playerStates[:]); err != nil {
		panic(err)
	}
}

// checkStateTable reports the first state without a full set of handlers.
func checkStateTable(table []playerStateHandlers) error {
	for i, h := range table {
		if h.enter == nil || h.exit == nil || h.handleInput == nil || h.update == nil {
			return fmt.Errorf("obj: player state %s has no handlers", PlayerState(i))
		}
	}
	return nil
}

func groundedInput(p *Player, in InputFrame, dt float64) {
	p.applyHorizontal(in.MoveX, dt)

	if in.JumpPressed {
		p.Body.Vel.Y = p.Config.JumpForce
		p.notify(EventJump)
		p.SwitchState(PlayerAirborne)
		return
	}

	if in.FirePressed {
		p.ToggleGrapple()
	}
}

func groundedUpdate(p *Player, dt float64) {
	if !p.Body.Grounded {
		p.SwitchState(PlayerAirborne)
	}
}

func airborneInput(p *Player, in InputFrame, dt float64) {
	p.applyHorizontal(in.MoveX, dt)

	if in.FirePressed {
		p.ToggleGrapple()
	}
}

func airborneUpdate(p *Player, dt float64) {
	// rising through the sensor radius right after a jump is not a landing
	if p.Body.Grounded && p.Body.Vel.Y <= 0 {
		p.Body.Vel.Y = 0
		p.SwitchState(PlayerGrounded)
		return
	}

	p.Body.Vel.Y -= p.Config.Gravity * dt
}

func grapplingInput(p *Player, in InputFrame, dt float64) {
	if in.FirePressed {
		p.ToggleGrapple()
	}
}

func grapplingUpdate(p *Player, dt float64) {
	to := p.grapplePoint.Sub(p.Body.Pos)
	dist := to.Length()
	if dist > grappleEpsilon {
		speed := p.Config.HookPullSpeed
		// never step past the latch point
		if dt > 0 && dist/dt < speed {
			speed = dist / dt
		}
		p.Body.Vel = to.Mult(speed / dist)
	} else {
		p.Body.Vel = cp.Vector{}
	}

	if dist < p.Config.GrappleArriveDistance && p.hook != nil {
		p.ToggleGrapple()
	}
}

// applyHorizontal eases vx toward the input target at a fixed rate.
func (p *Player) applyHorizontal(axis, dt float64) {
	if axis != 0 {
		p.Body.Vel.X = common.MoveTowards(p.Body.Vel.X, axis*p.Config.MaxSpeed, p.Config.Acceleration*dt)
		return
	}
	p.Body.Vel.X = common.MoveTowards(p.Body.Vel.X, 0, p.Config.Deceleration*dt)
}
