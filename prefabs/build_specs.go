package prefabs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/obj"
	"github.com/milk9111/stress/sound"
)

const defaultPoolSize = 5

func or(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// PlayerConfig overlays the player and hook specs on the defaults. Zero or
// missing values keep the default. hook may be nil.
func (s PlayerSpec) PlayerConfig(hook *HookSpec) obj.PlayerConfig {
	cfg := obj.DefaultPlayerConfig()
	cfg.Acceleration = or(s.Acceleration, cfg.Acceleration)
	cfg.Deceleration = or(s.Deceleration, cfg.Deceleration)
	cfg.MaxSpeed = or(s.MaxSpeed, cfg.MaxSpeed)
	cfg.JumpForce = or(s.JumpForce, cfg.JumpForce)
	cfg.Gravity = or(s.Gravity, cfg.Gravity)
	cfg.GroundCheckRadius = or(s.GroundCheckRadius, cfg.GroundCheckRadius)
	cfg.PointerDistance = or(s.PointerDistance, cfg.PointerDistance)
	cfg.GrappleArriveDistance = or(s.GrappleArriveDistance, cfg.GrappleArriveDistance)

	if s.Width > 0 {
		cfg.HalfSize.X = s.Width / 2
	}
	if s.Height > 0 {
		cfg.HalfSize.Y = s.Height / 2
		cfg.GroundCheckOffset = cp.Vector{X: 0, Y: -s.Height / 2}
	}

	fs := &cfg.Footsteps
	fs.MinSpeed = or(s.Footsteps.MinSpeed, fs.MinSpeed)
	fs.SlowInterval = or(s.Footsteps.SlowInterval, fs.SlowInterval)
	fs.FastInterval = or(s.Footsteps.FastInterval, fs.FastInterval)
	fs.MinInterval = or(s.Footsteps.MinInterval, fs.MinInterval)

	if hook != nil {
		cfg.HookSpeed = or(hook.Speed, cfg.HookSpeed)
		cfg.HookMaxDistance = or(hook.MaxDistance, cfg.HookMaxDistance)
		cfg.HookPullSpeed = or(hook.PullSpeed, cfg.HookPullSpeed)
	}
	return cfg
}

func (s HookSpec) Options() obj.HookOptions {
	opts := obj.DefaultHookOptions()
	if s.ParentToHit != nil {
		opts.ParentToHit = *s.ParentToHit
	}
	if s.DisableColliderWhenLatched != nil {
		opts.DisableColliderWhenLatched = *s.DisableColliderWhenLatched
	}
	return opts
}

func (s HookSpec) Pool() int {
	if s.PoolSize > 0 {
		return s.PoolSize
	}
	return defaultPoolSize
}

func (s CinematicSpec) Config() obj.CinematicConfig {
	cfg := obj.DefaultCinematicConfig()
	cfg.SecondsPerSegment = or(s.SecondsPerSegment, cfg.SecondsPerSegment)
	cfg.HoldAtEnd = or(s.HoldAtEnd, cfg.HoldAtEnd)
	cfg.ReturnDuration = or(s.ReturnDuration, cfg.ReturnDuration)
	cfg.QuickReturnDuration = or(s.QuickReturnDuration, cfg.QuickReturnDuration)
	return cfg
}

// ClipMap maps each clip to its sound type. Names that match no sound type are
// returned separately so the caller can warn about them.
func (s AudioSpec) ClipMap() (map[sound.SoundType]AudioClipSpec, []string) {
	out := make(map[sound.SoundType]AudioClipSpec, len(s.Clips))
	var unknown []string
	for _, c := range s.Clips {
		t, ok := sound.ParseSoundType(c.Name)
		if !ok {
			unknown = append(unknown, c.Name)
			continue
		}
		out[t] = c
	}
	return out, unknown
}

func (s AudioSpec) Track(name string) (MusicTrackSpec, bool) {
	for _, t := range s.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return MusicTrackSpec{}, false
}

func (s AudioSpec) Fade() float64 {
	return or(s.FadeSeconds, 1)
}
