package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
)

// Camera maps world units (y-up) to screen pixels (y-down) around a center
// point, with smoothed follow and optional clamping to world bounds.
type Camera struct {
	Pos cp.Vector

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	bounds common.Rect
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp01(f)
}

// SetBounds limits the view to r. A zero rect disables clamping.
func (c *Camera) SetBounds(r common.Rect) {
	c.bounds = r
}

// scale is screen pixels per world unit.
func (c *Camera) scale() float64 {
	return common.PixelsPerUnit * c.zoom
}

// ViewSize is the visible area in world units.
func (c *Camera) ViewSize() (float64, float64) {
	s := c.scale()
	return float64(c.screenW) / s, float64(c.screenH) / s
}

func (c *Camera) ViewRect() common.Rect {
	w, h := c.ViewSize()
	return common.Rect{X: c.Pos.X - w/2, Y: c.Pos.Y - h/2, Width: w, Height: h}
}

// Follow moves the camera toward target. Call once per fixed tick.
func (c *Camera) Follow(target cp.Vector) {
	if c.smooth <= 0 || c.smooth >= 1 {
		c.Pos = target
	} else {
		c.Pos = c.Pos.Add(target.Sub(c.Pos).Mult(c.smooth))
	}
	c.clamp()
}

// SnapTo places the camera immediately, still respecting bounds.
func (c *Camera) SnapTo(target cp.Vector) {
	c.Pos = target
	c.clamp()
}

// SetPosition places the camera with no clamping, for scripted moves.
func (c *Camera) SetPosition(p cp.Vector) {
	c.Pos = p
}

func (c *Camera) clamp() {
	if c.bounds.Width <= 0 || c.bounds.Height <= 0 {
		return
	}
	w, h := c.ViewSize()
	c.Pos.X = clampAxis(c.Pos.X, c.bounds.X, c.bounds.Width, w)
	c.Pos.Y = clampAxis(c.Pos.Y, c.bounds.Y, c.bounds.Height, h)
}

func clampAxis(v, lo, size, view float64) float64 {
	half := view / 2
	if size < view {
		// world smaller than view: center on world
		return lo + size/2
	}
	return common.Clamp(v, lo+half, lo+size-half)
}

// WorldToScreen converts a world point to screen pixels, rounded so sprites
// land on whole pixels.
func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	s := c.scale()
	x := (p.X-c.Pos.X)*s + float64(c.screenW)/2
	y := float64(c.screenH)/2 - (p.Y-c.Pos.Y)*s
	return math.Round(x), math.Round(y)
}

func (c *Camera) ScreenToWorld(x, y float64) cp.Vector {
	s := c.scale()
	return cp.Vector{
		X: c.Pos.X + (x-float64(c.screenW)/2)/s,
		Y: c.Pos.Y - (y-float64(c.screenH)/2)/s,
	}
}

// UnitsToPixels scales a world length to screen pixels.
func (c *Camera) UnitsToPixels(v float64) float64 {
	return v * c.scale()
}
