package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
	"github.com/milk9111/stress/obj"
	"github.com/milk9111/stress/prefabs"
	"golang.org/x/image/colornames"
)

// screenRect maps a world rectangle to screen x, y, width, height.
func screenRect(cam *obj.Camera, r common.Rect) (float32, float32, float32, float32) {
	x, y := cam.WorldToScreen(cp.Vector{X: r.X, Y: r.Y + r.Height})
	return float32(x), float32(y), float32(cam.UnitsToPixels(r.Width)), float32(cam.UnitsToPixels(r.Height))
}

func fillWorldRect(screen *ebiten.Image, cam *obj.Camera, r common.Rect, clr color.Color) {
	x, y, w, h := screenRect(cam, r)
	vector.FillRect(screen, x, y, w, h, clr, false)
}

func strokeWorldRect(screen *ebiten.Image, cam *obj.Camera, r common.Rect, width float32, clr color.Color) {
	x, y, w, h := screenRect(cam, r)
	vector.StrokeRect(screen, x, y, w, h, width, clr, false)
}

func worldLine(screen *ebiten.Image, cam *obj.Camera, a, b cp.Vector, width float32, clr color.Color) {
	ax, ay := cam.WorldToScreen(a)
	bx, by := cam.WorldToScreen(b)
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
}

func worldCircle(screen *ebiten.Image, cam *obj.Camera, c cp.Vector, radius float64, clr color.Color) {
	x, y := cam.WorldToScreen(c)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(cam.UnitsToPixels(radius)), clr, true)
}

// layerColor parses a level color property, falling back to fallback.
func layerColor(s string, fallback color.Color) color.Color {
	if s == "" {
		return fallback
	}
	c, err := prefabs.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// colorOr returns the prefab color or fallback when the prefab omits it.
func colorOr(c prefabs.YAMLColor, fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

var (
	groundColor   = colornames.Dimgray
	hookableColor = colornames.Goldenrod
	platformColor = colornames.Steelblue
	sceneColor    = colornames.Seagreen
	fallColor     = color.NRGBA{R: 255, A: 48}
	aimColor      = colornames.Lightgrey
)
