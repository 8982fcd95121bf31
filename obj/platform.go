package obj

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Surface is a static hookable rectangle.
type Surface struct {
	Name   string
	Bounds common.Rect
	hooks  int
}

func (s *Surface) OnHooked(point cp.Vector) {
	s.hooks++
	log.Printf("surface: %s hooked at (%.2f, %.2f)", s.Name, point.X, point.Y)
}

// Hooks is how many times the surface has been latched onto.
func (s *Surface) Hooks() int { return s.hooks }

// Platform is a hookable rectangle that travels back and forth between two
// points. Positions are the rectangle center in world units.
type Platform struct {
	Name string

	from, to cp.Vector
	size     cp.Vector
	pos      cp.Vector
	seq      *gween.Sequence
	hooks    int
}

// NewPlatform builds a platform that takes legSeconds to go from one end to
// the other. A non-positive legSeconds leaves it parked at from.
func NewPlatform(name string, from, to, size cp.Vector, legSeconds float64) *Platform {
	pl := &Platform{Name: name, from: from, to: to, size: size, pos: from}
	if legSeconds > 0 {
		d := float32(legSeconds)
		pl.seq = gween.NewSequence(
			gween.New(0, 1, d, ease.InOutSine),
			gween.New(1, 0, d, ease.InOutSine),
		)
	}
	return pl
}

func (pl *Platform) Update(dt float64) {
	if pl.seq == nil {
		return
	}
	t, _, done := pl.seq.Update(float32(dt))
	if done {
		pl.seq.Reset()
	}
	k := float64(t)
	pl.pos = cp.Vector{
		X: common.Lerp(pl.from.X, pl.to.X, k),
		Y: common.Lerp(pl.from.Y, pl.to.Y, k),
	}
}

func (pl *Platform) Position() cp.Vector { return pl.pos }
func (pl *Platform) Size() cp.Vector { return pl.size }
func (pl *Platform) Hooks() int { return pl.hooks }

func (pl *Platform) Bounds() common.Rect {
	return common.Rect{
		X:      pl.pos.X - pl.size.X/2,
		Y:      pl.pos.Y - pl.size.Y/2,
		Width:  pl.size.X,
		Height: pl.size.Y,
	}
}

func (pl *Platform) OnHooked(point cp.Vector) {
	pl.hooks++
	log.Printf("platform: %s hooked at (%.2f, %.2f)", pl.Name, point.X, point.Y)
}
