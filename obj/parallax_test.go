package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestParallaxLayers(t *testing.T) {
	cases := []struct {
		name      string
		strength  float64
		maxOffset cp.Vector
		camMove   cp.Vector
		want      cp.Vector
	}{
		{"fixed_in_world", 0, cp.Vector{}, cp.Vector{X: 4, Y: 2}, cp.Vector{X: 10, Y: 5}},
		{"glued_to_camera", 1, cp.Vector{}, cp.Vector{X: 4, Y: 2}, cp.Vector{X: 14, Y: 7}},
		{"half", 0.5, cp.Vector{}, cp.Vector{X: 4, Y: 2}, cp.Vector{X: 12, Y: 6}},
		{"clamped", 0, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 4, Y: -3}, cp.Vector{X: 13, Y: 3}},
		{"strength_clamped", 2, cp.Vector{}, cp.Vector{X: 4, Y: 0}, cp.Vector{X: 14, Y: 5}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layer := &ParallaxLayer{Origin: cp.Vector{X: 10, Y: 5}, Strength: c.strength, MaxOffset: c.maxOffset}
			p := NewParallax(layer)

			cam := cp.Vector{X: 1, Y: 1}
			p.Anchor(cam)
			p.Update(cam)
			if layer.Position() != layer.Origin {
				t.Fatalf("unmoved camera shifted the layer to %v", layer.Position())
			}

			p.Update(cam.Add(c.camMove))
			got := layer.Position()
			if !near(got.X, c.want.X, 1e-9) || !near(got.Y, c.want.Y, 1e-9) {
				t.Fatalf("position = %v, want %v", got, c.want)
			}
		})
	}
}

func TestParallaxAnchorsOnFirstUpdate(t *testing.T) {
	layer := &ParallaxLayer{Origin: cp.Vector{X: 2, Y: 2}, Strength: 0.3}
	p := NewParallax(layer)
	p.Update(cp.Vector{X: 50, Y: 50})
	if layer.Position() != layer.Origin {
		t.Fatalf("first update should anchor, got %v", layer.Position())
	}
}
