package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
)

const (
	categoryGround uint = 1 << iota
	categoryHookable
)

var (
	groundQuery   = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryGround)
	hookableQuery = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryHookable)
)

// skin keeps a resolved body from resting exactly on a solid's edge.
const skin = 1e-4

// CollisionWorld answers the geometric questions the player and its hook ask:
// is there ground under a point, what does a hook segment cross, and how far
// can a box move. Ground and hookables live in a chipmunk space; only the
// kinematic platform bodies move in it.
type CollisionWorld struct {
	space     *cp.Space
	solids    []common.Rect
	platforms []*platformBody
}

type platformBody struct {
	platform *Platform
	body     *cp.Body
}

func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{space: cp.NewSpace()}
}

// AddGround adds a solid rectangle that bodies stand on and cannot pass.
func (cw *CollisionWorld) AddGround(r common.Rect) {
	cw.solids = append(cw.solids, r)
	shape := cw.space.AddShape(cp.NewBox2(cw.space.StaticBody, rectBB(r), 0))
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryGround, cp.ALL_CATEGORIES))
}

// AddHookable adds a static rectangle hooks can latch onto.
func (cw *CollisionWorld) AddHookable(r common.Rect, target Hookable) {
	shape := cw.space.AddShape(cp.NewBox2(cw.space.StaticBody, rectBB(r), 0))
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryHookable, cp.ALL_CATEGORIES))
	shape.UserData = target
}

// AddPlatform adds a moving hookable driven by Step.
func (cw *CollisionWorld) AddPlatform(pl *Platform) {
	body := cw.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(pl.Position())
	size := pl.Size()
	shape := cw.space.AddShape(cp.NewBox(body, size.X, size.Y, 0))
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryHookable, cp.ALL_CATEGORIES))
	shape.UserData = pl
	cw.platforms = append(cw.platforms, &platformBody{platform: pl, body: body})
}

func (cw *CollisionWorld) Platforms() []*Platform {
	out := make([]*Platform, 0, len(cw.platforms))
	for _, pb := range cw.platforms {
		out = append(out, pb.platform)
	}
	return out
}

func (cw *CollisionWorld) Solids() []common.Rect {
	return cw.solids
}

// Step advances moving platforms and steps the space so their shapes follow.
// Each kinematic body gets the velocity that carries it onto its platform's
// new position in one step.
func (cw *CollisionWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, pb := range cw.platforms {
		pb.platform.Update(dt)
		to := pb.platform.Position().Sub(pb.body.Position())
		pb.body.SetVelocityVector(to.Mult(1 / dt))
	}
	cw.space.Step(dt)
}

// Grounded reports whether any ground shape lies within radius of point.
func (cw *CollisionWorld) Grounded(point cp.Vector, radius float64) bool {
	info := cw.space.PointQueryNearest(point, radius, groundQuery)
	return info.Shape != nil
}

// HookTarget returns the first hookable crossed by the segment from..to and
// the point where it was crossed.
func (cw *CollisionWorld) HookTarget(from, to cp.Vector) (Hookable, cp.Vector, bool) {
	info := cw.space.SegmentQueryFirst(from, to, 0, hookableQuery)
	if info.Shape == nil {
		return nil, cp.Vector{}, false
	}
	target, ok := info.Shape.UserData.(Hookable)
	if !ok {
		return nil, cp.Vector{}, false
	}
	return target, info.Point, true
}

// MoveBody moves a box centered at pos with half extents half by delta,
// resolving X then Y against ground rectangles.
func (cw *CollisionWorld) MoveBody(pos, half, delta cp.Vector) (cp.Vector, bool, bool) {
	var blockedX, blockedY bool

	pos.X += delta.X
	for _, s := range cw.solids {
		box := boxAt(pos, half)
		if !box.Intersects(s) {
			continue
		}
		blockedX = true
		if delta.X > 0 {
			pos.X = s.X - half.X - skin
		} else if delta.X < 0 {
			pos.X = s.X + s.Width + half.X + skin
		}
	}

	pos.Y += delta.Y
	for _, s := range cw.solids {
		box := boxAt(pos, half)
		if !box.Intersects(s) {
			continue
		}
		blockedY = true
		if delta.Y > 0 {
			pos.Y = s.Y - half.Y - skin
		} else if delta.Y < 0 {
			pos.Y = s.Y + s.Height + half.Y + skin
		}
	}

	return pos, blockedX, blockedY
}

// Bounds is the union of all ground rectangles.
func (cw *CollisionWorld) Bounds() common.Rect {
	if len(cw.solids) == 0 {
		return common.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range cw.solids {
		minX = math.Min(minX, s.X)
		minY = math.Min(minY, s.Y)
		maxX = math.Max(maxX, s.X+s.Width)
		maxY = math.Max(maxY, s.Y+s.Height)
	}
	return common.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func boxAt(center, half cp.Vector) common.Rect {
	return common.Rect{X: center.X - half.X, Y: center.Y - half.Y, Width: half.X * 2, Height: half.Y * 2}
}

func rectBB(r common.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}
