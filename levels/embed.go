package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
	"github.com/milk9111/stress/common"
)

//go:embed *.tmx
var LevelsFS embed.FS

var ErrNoSpawn = errors.New("levels: no spawn point")

// Object groups read from a map. Anything else is ignored.
const (
	groupGround     = "ground"
	groupHookable   = "hookable"
	groupPlatforms  = "platforms"
	groupSpawn      = "spawn"
	groupFalls      = "falls"
	groupScenes     = "scenes"
	groupCameraPath = "camera_path"
	groupParallax   = "parallax"
)

// Level is a map converted to world units: y-up, PixelsPerUnit pixels per
// unit, origin at the map's bottom-left corner.
type Level struct {
	Name   string
	Width  float64
	Height float64

	Spawn cp.Vector
	Music string

	Ground     []common.Rect
	Hookables  []Area
	Platforms  []Platform
	Falls      []Fall
	Scenes     []Scene
	CameraPath []cp.Vector
	Parallax   []ParallaxLayer
}

type Area struct {
	Name   string
	Bounds common.Rect
}

// Platform travels from its placed rectangle by Travel and back, taking
// LegSeconds each way.
type Platform struct {
	Name       string
	Bounds     common.Rect
	Travel     cp.Vector
	LegSeconds float64
}

type Fall struct {
	Name       string
	Bounds     common.Rect
	Respawn    cp.Vector
	HasRespawn bool
}

type Scene struct {
	Name   string
	Scene  string
	Bounds common.Rect
}

type ParallaxLayer struct {
	Name      string
	Bounds    common.Rect
	Strength  float64
	MaxOffset cp.Vector
	Color     string
}

func (l *Level) Bounds() common.Rect {
	return common.Rect{Width: l.Width, Height: l.Height}
}

// Names lists the embedded levels without extension.
func Names() []string {
	matches, _ := fs.Glob(LevelsFS, "*.tmx")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".tmx"))
	}
	sort.Strings(names)
	return names
}

func LoadEmbedded(name string) (*Level, error) {
	return Load(LevelsFS, name)
}

// Load parses name (with or without .tmx) from fsys.
func Load(fsys fs.FS, name string) (*Level, error) {
	file := name
	if path.Ext(file) != ".tmx" {
		file += ".tmx"
	}
	m, err := tiled.LoadFile(file, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", file, err)
	}

	conv := converter{mapHeight: float64(m.Height * m.TileHeight)}
	lvl := &Level{
		Name:   strings.TrimSuffix(path.Base(file), ".tmx"),
		Width:  float64(m.Width*m.TileWidth) / common.PixelsPerUnit,
		Height: conv.mapHeight / common.PixelsPerUnit,
	}

	hasSpawn := false
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case groupGround:
			for _, o := range og.Objects {
				lvl.Ground = append(lvl.Ground, conv.rect(o))
			}
		case groupHookable:
			for _, o := range og.Objects {
				lvl.Hookables = append(lvl.Hookables, Area{Name: o.Name, Bounds: conv.rect(o)})
			}
		case groupPlatforms:
			for _, o := range og.Objects {
				dx, _ := floatProp(o.Properties.GetString, "dx")
				dy, _ := floatProp(o.Properties.GetString, "dy")
				legs, _ := floatProp(o.Properties.GetString, "duration")
				lvl.Platforms = append(lvl.Platforms, Platform{
					Name:       o.Name,
					Bounds:     conv.rect(o),
					Travel:     conv.delta(dx, dy),
					LegSeconds: legs,
				})
			}
		case groupSpawn:
			for _, o := range og.Objects {
				if hasSpawn {
					break
				}
				hasSpawn = true
				lvl.Spawn = conv.point(o.X, o.Y)
				lvl.Music = o.Properties.GetString("music")
			}
		case groupFalls:
			for _, o := range og.Objects {
				f := Fall{Name: o.Name, Bounds: conv.rect(o)}
				rx, okX := floatProp(o.Properties.GetString, "respawn_x")
				ry, okY := floatProp(o.Properties.GetString, "respawn_y")
				if okX && okY {
					f.Respawn = conv.point(rx, ry)
					f.HasRespawn = true
				}
				lvl.Falls = append(lvl.Falls, f)
			}
		case groupScenes:
			for _, o := range og.Objects {
				lvl.Scenes = append(lvl.Scenes, Scene{
					Name:   o.Name,
					Scene:  o.Properties.GetString("scene"),
					Bounds: conv.rect(o),
				})
			}
		case groupCameraPath:
			for _, o := range og.Objects {
				if len(o.PolyLines) == 0 || o.PolyLines[0].Points == nil {
					continue
				}
				for _, p := range *o.PolyLines[0].Points {
					lvl.CameraPath = append(lvl.CameraPath, conv.point(o.X+p.X, o.Y+p.Y))
				}
				break
			}
		case groupParallax:
			for _, o := range og.Objects {
				strength, _ := floatProp(o.Properties.GetString, "strength")
				mx, _ := floatProp(o.Properties.GetString, "max_offset_x")
				my, _ := floatProp(o.Properties.GetString, "max_offset_y")
				lvl.Parallax = append(lvl.Parallax, ParallaxLayer{
					Name:      o.Name,
					Bounds:    conv.rect(o),
					Strength:  common.Clamp01(strength),
					MaxOffset: cp.Vector{X: mx / common.PixelsPerUnit, Y: my / common.PixelsPerUnit},
					Color:     o.Properties.GetString("color"),
				})
			}
		}
	}

	if !hasSpawn {
		return nil, fmt.Errorf("%w in %s", ErrNoSpawn, file)
	}
	return lvl, nil
}

// converter flips Tiled's y-down pixels into y-up world units.
type converter struct {
	mapHeight float64
}

func (c converter) point(x, y float64) cp.Vector {
	return cp.Vector{X: x / common.PixelsPerUnit, Y: (c.mapHeight - y) / common.PixelsPerUnit}
}

func (c converter) rect(o *tiled.Object) common.Rect {
	return common.Rect{
		X:      o.X / common.PixelsPerUnit,
		Y:      (c.mapHeight - o.Y - o.Height) / common.PixelsPerUnit,
		Width:  o.Width / common.PixelsPerUnit,
		Height: o.Height / common.PixelsPerUnit,
	}
}

func (c converter) delta(dx, dy float64) cp.Vector {
	return cp.Vector{X: dx / common.PixelsPerUnit, Y: -dy / common.PixelsPerUnit}
}

func floatProp(get func(string) string, name string) (float64, bool) {
	s := get(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
