package obj

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
	"github.com/solarlune/resolv"
)

const (
	tagTrigger = "trigger"
	tagScene   = "scene"
	tagFall    = "fall"

	triggerCell = 16
	probeSize   = 2
)

// SceneTrigger asks for a scene load the first time the probe enters it.
type SceneTrigger struct {
	Name   string
	Scene  string
	Bounds common.Rect
	fired  bool
}

func (s *SceneTrigger) Fired() bool { return s.fired }

// FallBox sends the player back to a respawn point every time it is entered.
// Without its own respawn point the player's start is used.
type FallBox struct {
	Name       string
	Bounds     common.Rect
	Respawn    cp.Vector
	HasRespawn bool
	inside     bool
}

type TriggerKind int

const (
	TriggerScene TriggerKind = iota
	TriggerFall
)

type TriggerEvent struct {
	Kind       TriggerKind
	Name       string
	Scene      string
	Respawn    cp.Vector
	HasRespawn bool
}

// TriggerWorld holds level trigger volumes in a resolv space. Object
// coordinates are world units scaled to pixels and offset by the world's
// minimum corner so they stay positive.
type TriggerWorld struct {
	space  *resolv.Space
	origin cp.Vector
	probe  *resolv.Object
	scenes []*SceneTrigger
	falls  []*FallBox
}

// NewTriggerWorld sizes the space to cover bounds.
func NewTriggerWorld(bounds common.Rect) *TriggerWorld {
	w := int(math.Ceil(bounds.Width*common.PixelsPerUnit)) + triggerCell
	h := int(math.Ceil(bounds.Height*common.PixelsPerUnit)) + triggerCell
	tw := &TriggerWorld{
		space:  resolv.NewSpace(w, h, triggerCell, triggerCell),
		origin: cp.Vector{X: bounds.X, Y: bounds.Y},
	}
	tw.probe = resolv.NewObject(0, 0, probeSize, probeSize, "probe")
	tw.probe.SetShape(resolv.NewRectangle(0, 0, probeSize, probeSize))
	tw.space.Add(tw.probe)
	return tw
}

func (tw *TriggerWorld) toSpace(r common.Rect) (float64, float64, float64, float64) {
	return (r.X - tw.origin.X) * common.PixelsPerUnit,
		(r.Y - tw.origin.Y) * common.PixelsPerUnit,
		r.Width * common.PixelsPerUnit,
		r.Height * common.PixelsPerUnit
}

func (tw *TriggerWorld) add(r common.Rect, data interface{}, kind string) {
	x, y, w, h := tw.toSpace(r)
	obj := resolv.NewObject(x, y, w, h, tagTrigger, kind)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = data
	tw.space.Add(obj)
}

func (tw *TriggerWorld) AddScene(t *SceneTrigger) {
	tw.scenes = append(tw.scenes, t)
	tw.add(t.Bounds, t, tagScene)
}

func (tw *TriggerWorld) AddFall(f *FallBox) {
	tw.falls = append(tw.falls, f)
	tw.add(f.Bounds, f, tagFall)
}

func (tw *TriggerWorld) Scenes() []*SceneTrigger { return tw.scenes }
func (tw *TriggerWorld) Falls() []*FallBox { return tw.falls }

// Update moves the probe to point and returns the triggers it newly entered.
func (tw *TriggerWorld) Update(point cp.Vector) []TriggerEvent {
	tw.probe.X = (point.X-tw.origin.X)*common.PixelsPerUnit - probeSize/2
	tw.probe.Y = (point.Y-tw.origin.Y)*common.PixelsPerUnit - probeSize/2
	tw.probe.Update()

	hit := map[interface{}]bool{}
	if check := tw.probe.Check(0, 0, tagTrigger); check != nil {
		for _, obj := range check.Objects {
			// Check is cell based, confirm the actual overlap
			if overlaps(tw.probe, obj) {
				hit[obj.Data] = true
			}
		}
	}

	var events []TriggerEvent
	for _, s := range tw.scenes {
		if s.fired || !hit[s] {
			continue
		}
		s.fired = true
		if s.Scene == "" {
			log.Printf("triggers: scene trigger %q has no scene name", s.Name)
			continue
		}
		events = append(events, TriggerEvent{Kind: TriggerScene, Name: s.Name, Scene: s.Scene})
	}
	for _, f := range tw.falls {
		entered := hit[f] && !f.inside
		f.inside = hit[f]
		if entered {
			events = append(events, TriggerEvent{Kind: TriggerFall, Name: f.Name, Respawn: f.Respawn, HasRespawn: f.HasRespawn})
		}
	}
	return events
}

func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
