package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name         string  `yaml:"name"`
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	JumpForce    float64 `yaml:"jump_force"`
	Gravity      float64 `yaml:"gravity"`

	GroundCheckRadius float64 `yaml:"ground_check_radius"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`

	PointerDistance       float64 `yaml:"pointer_distance"`
	GrappleArriveDistance float64 `yaml:"grapple_arrive_distance"`

	Footsteps FootstepSpec `yaml:"footsteps"`
	Style     StyleSpec    `yaml:"style"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type FootstepSpec struct {
	MinSpeed     float64 `yaml:"min_speed"`
	SlowInterval float64 `yaml:"slow_interval"`
	FastInterval float64 `yaml:"fast_interval"`
	MinInterval  float64 `yaml:"min_interval"`
}

type StyleSpec struct {
	Body      YAMLColor `yaml:"body"`
	Hook      YAMLColor `yaml:"hook"`
	Rope      YAMLColor `yaml:"rope"`
	RopeWidth float32   `yaml:"rope_width"`
}

type HookSpec struct {
	Name        string  `yaml:"name"`
	Speed       float64 `yaml:"speed"`
	MaxDistance float64 `yaml:"max_distance"`
	PullSpeed   float64 `yaml:"pull_speed"`
	PoolSize    int     `yaml:"pool_size"`
	// pointers so an omitted key keeps the default instead of false
	ParentToHit                *bool `yaml:"parent_to_hit"`
	DisableColliderWhenLatched *bool `yaml:"disable_collider_when_latched"`
}

func LoadHookSpec() (*HookSpec, error) {
	spec, err := LoadSpec[HookSpec]("hook.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CinematicSpec struct {
	SecondsPerSegment   float64 `yaml:"seconds_per_segment"`
	HoldAtEnd           float64 `yaml:"hold_at_end"`
	ReturnDuration      float64 `yaml:"return_duration"`
	QuickReturnDuration float64 `yaml:"quick_return_duration"`
}

type CameraSpec struct {
	Name       string        `yaml:"name"`
	Zoom       float64       `yaml:"zoom"`
	Smoothness float64       `yaml:"smoothness"`
	Cinematic  CinematicSpec `yaml:"cinematic"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type MusicTrackSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioSpec struct {
	Clips       []AudioClipSpec  `yaml:"clips"`
	Tracks      []MusicTrackSpec `yaml:"tracks"`
	MenuTrack   string           `yaml:"menu_track"`
	FadeSeconds float64          `yaml:"fade_seconds"`
}

func LoadAudioSpec() (*AudioSpec, error) {
	spec, err := LoadSpec[AudioSpec]("audio.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor reads #rrggbb or #rrggbbaa.
func ParseColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
