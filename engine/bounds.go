package engine

import "github.com/jakecoffman/cp"

// BoundsOf returns the axis-aligned box of a rectangle in screen space. B is
// the top edge and T the bottom edge since y grows downward.
func BoundsOf(x, y, w, h float64) cp.BB {
	return cp.BB{L: x, B: y, R: x + w, T: y + h}
}

// Overlaps is a strict AABB test: boxes that only share an edge do not
// overlap. cp.BB.Intersects counts touching edges, which would make a body
// resting on a platform collide every tick.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

// OutsideRect reports whether bb lies more than margin outside the
// rectangle (0, 0, w, h) on any side.
func OutsideRect(bb cp.BB, w, h, margin float64) bool {
	return bb.R < -margin || bb.L > w+margin || bb.T < -margin || bb.B > h+margin
}

func ContainsPoint(bb cp.BB, x, y float64) bool {
	return x >= bb.L && x <= bb.R && y >= bb.B && y <= bb.T
}
