package obj

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type CinematicConfig struct {
	SecondsPerSegment   float64
	HoldAtEnd           float64
	ReturnDuration      float64
	QuickReturnDuration float64
}

func DefaultCinematicConfig() CinematicConfig {
	return CinematicConfig{
		SecondsPerSegment:   2,
		HoldAtEnd:           0.75,
		ReturnDuration:      1.25,
		QuickReturnDuration: 0.5,
	}
}

type CinematicPhase int

const (
	CinematicIdle CinematicPhase = iota
	CinematicSegments
	CinematicHold
	CinematicReturn
	CinematicDone
)

func (p CinematicPhase) String() string {
	switch p {
	case CinematicIdle:
		return "idle"
	case CinematicSegments:
		return "segments"
	case CinematicHold:
		return "hold"
	case CinematicReturn:
		return "return"
	case CinematicDone:
		return "done"
	default:
		return fmt.Sprintf("CinematicPhase(%d)", int(p))
	}
}

// Cinematic flies the camera along a waypoint path, holds on the last point
// and returns to the player. It is advanced one tick at a time by Update.
type Cinematic struct {
	cfg       CinematicConfig
	waypoints []cp.Vector

	phase   CinematicPhase
	segment int
	tween   *gween.Tween
	from    cp.Vector
	holdFor float64
	quick   bool
	pos     cp.Vector
}

func NewCinematic(cfg CinematicConfig, waypoints []cp.Vector) *Cinematic {
	return &Cinematic{cfg: cfg, waypoints: waypoints}
}

// Start begins playback from the first waypoint. With fewer than two
// waypoints there is no path; it logs a warning and goes straight to done.
func (c *Cinematic) Start() bool {
	if len(c.waypoints) < 2 {
		log.Printf("cinematic: need at least 2 waypoints, have %d; skipping", len(c.waypoints))
		c.phase = CinematicDone
		return false
	}
	c.phase = CinematicSegments
	c.segment = 0
	c.quick = false
	c.pos = c.waypoints[0]
	c.beginSegment()
	return true
}

func (c *Cinematic) beginSegment() {
	c.from = c.waypoints[c.segment]
	c.tween = gween.New(0, 1, float32(c.cfg.SecondsPerSegment), ease.InOutQuad)
}

func (c *Cinematic) beginReturn(duration float64, quick bool) {
	c.phase = CinematicReturn
	c.quick = quick
	c.from = c.pos
	c.tween = gween.New(0, 1, float32(duration), ease.InOutQuad)
}

// Update advances playback by dt and returns the camera position. returnTo is
// where the camera should end up, usually the player's follow target; it is
// read every tick so the return tracks a moving player. skip cuts to a quick
// return from wherever the camera is.
func (c *Cinematic) Update(dt float64, skip bool, returnTo cp.Vector) cp.Vector {
	if skip && c.Running() && !c.quick {
		c.beginReturn(c.cfg.QuickReturnDuration, true)
	}

	switch c.phase {
	case CinematicSegments:
		t, done := c.tween.Update(float32(dt))
		c.pos = lerpVec(c.from, c.waypoints[c.segment+1], float64(t))
		if done {
			c.segment++
			if c.segment >= len(c.waypoints)-1 {
				c.phase = CinematicHold
				c.holdFor = c.cfg.HoldAtEnd
			} else {
				c.beginSegment()
			}
		}
	case CinematicHold:
		c.holdFor -= dt
		if c.holdFor <= 0 {
			c.beginReturn(c.cfg.ReturnDuration, false)
		}
	case CinematicReturn:
		t, done := c.tween.Update(float32(dt))
		c.pos = lerpVec(c.from, returnTo, float64(t))
		if done {
			c.pos = returnTo
			c.phase = CinematicDone
		}
	}
	return c.pos
}

// Running reports whether the cinematic currently owns the camera.
func (c *Cinematic) Running() bool {
	return c.phase == CinematicSegments || c.phase == CinematicHold || c.phase == CinematicReturn
}

func (c *Cinematic) Done() bool { return c.phase == CinematicDone }
func (c *Cinematic) Phase() CinematicPhase { return c.phase }
func (c *Cinematic) Position() cp.Vector { return c.pos }

func lerpVec(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{X: common.Lerp(a.X, b.X, t), Y: common.Lerp(a.Y, b.Y, t)}
}
