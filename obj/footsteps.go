package obj

import (
	"math"

	"github.com/milk9111/stress/common"
)

// FootstepConfig tunes the step cadence. Intervals are in seconds.
type FootstepConfig struct {
	MinSpeed     float64
	SlowInterval float64
	FastInterval float64
	MinInterval  float64
}

func DefaultFootstepConfig() FootstepConfig {
	return FootstepConfig{
		MinSpeed:     0.15,
		SlowInterval: 0.55,
		FastInterval: 0.28,
		MinInterval:  0.05,
	}
}

// Footsteps decides when a running body should emit a step sound.
type Footsteps struct {
	cfg   FootstepConfig
	timer float64
}

func NewFootsteps(cfg FootstepConfig) *Footsteps {
	return &Footsteps{cfg: cfg}
}

// Interval is the step period for a normalized speed in [0,1].
func (f *Footsteps) Interval(speedNorm float64) float64 {
	t := common.InverseLerp(f.cfg.MinSpeed, 1, speedNorm)
	return math.Max(f.cfg.MinInterval, common.Lerp(f.cfg.SlowInterval, f.cfg.FastInterval, t))
}

// Update advances the cadence by dt and reports whether a step is due.
// Stepping is suppressed off the ground, while grappling and below MinSpeed;
// suppression rewinds the timer so the first step after it is immediate.
func (f *Footsteps) Update(dt float64, grounded, grappling bool, speed, maxSpeed float64) bool {
	if !grounded || grappling || maxSpeed <= 0 {
		f.timer = 0
		return false
	}
	norm := common.Clamp01(math.Abs(speed) / maxSpeed)
	if norm < f.cfg.MinSpeed {
		f.timer = 0
		return false
	}

	if f.timer <= 0 {
		f.timer = f.Interval(norm)
		return true
	}
	f.timer -= dt
	return false
}

func (f *Footsteps) Reset() {
	f.timer = 0
}
