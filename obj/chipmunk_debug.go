package obj

import "github.com/jakecoffman/cp"

// DebugDraw walks every shape in the collision space through d.
func (cw *CollisionWorld) DebugDraw(d cp.Drawer) {
	if cw == nil || cw.space == nil || d == nil {
		return
	}
	cp.DrawSpace(cw.space, d)
}

// ShapeKind names what a collision shape is for debug coloring.
func ShapeKind(shape *cp.Shape) string {
	if shape == nil {
		return ""
	}
	switch shape.UserData.(type) {
	case *Platform:
		return "platform"
	case Hookable:
		return "hookable"
	}
	return "ground"
}
