package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
)

// ParallaxLayer is a background placed at Origin in world units. Strength 0
// keeps it fixed in the world, 1 glues it to the camera. MaxOffset limits how
// far it may drift from its anchored spot on each axis; zero means no limit.
type ParallaxLayer struct {
	Name      string
	Origin    cp.Vector
	Size      cp.Vector
	Strength  float64
	MaxOffset cp.Vector
	Color     string

	base cp.Vector
	pos  cp.Vector
}

func (l *ParallaxLayer) Position() cp.Vector { return l.pos }

type Parallax struct {
	layers   []*ParallaxLayer
	anchor   cp.Vector
	anchored bool
}

func NewParallax(layers ...*ParallaxLayer) *Parallax {
	for _, l := range layers {
		l.Strength = common.Clamp01(l.Strength)
		l.pos = l.Origin
	}
	return &Parallax{layers: layers}
}

func (p *Parallax) Layers() []*ParallaxLayer { return p.layers }

// Anchor records the camera position the layers are measured from.
func (p *Parallax) Anchor(cam cp.Vector) {
	p.anchor = cam
	p.anchored = true
	for _, l := range p.layers {
		l.base = l.Origin.Sub(cam)
		l.pos = l.Origin
	}
}

// Update repositions every layer for the camera at cam.
func (p *Parallax) Update(cam cp.Vector) {
	if !p.anchored {
		p.Anchor(cam)
	}
	delta := cam.Sub(p.anchor)
	for _, l := range p.layers {
		off := delta.Mult(l.Strength - 1)
		off.X = clampOffset(off.X, l.MaxOffset.X)
		off.Y = clampOffset(off.Y, l.MaxOffset.Y)
		l.pos = cam.Add(l.base).Add(off)
	}
}

func clampOffset(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return common.Clamp(v, -limit, limit)
}
