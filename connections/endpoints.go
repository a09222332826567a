package connections

import (
	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/geometry"
)

// SnapEndpoints moves a route's first and last points so the rendered
// first/last segment axis matches the side each endpoint actually sits
// on. After re-routing or side reassignment a route can otherwise appear
// to leave a node through the wrong edge, say a horizontal line exiting
// the top border. Sides given as DirNone leave that endpoint untouched.
func SnapEndpoints(points []core.Point, sourceRect core.Rect, startSide core.Direction, targetRect core.Rect, endSide core.Direction) []core.Point {
	if len(points) < 2 {
		return points
	}
	out := make([]core.Point, len(points))
	copy(out, points)

	if startSide != core.DirNone {
		out[0] = snapAnchor(sourceRect, startSide, out[1])
	}
	if endSide != core.DirNone {
		out[len(out)-1] = snapAnchor(targetRect, endSide, out[len(out)-2])
	}
	return out
}

// snapAnchor places the anchor on the given edge, sliding it along the
// edge to line up with the neighboring route point so the connecting
// segment runs perpendicular to the border.
func snapAnchor(rect core.Rect, side core.Direction, neighbor core.Point) core.Point {
	switch side {
	case core.East:
		return core.Point{X: rect.Right(), Y: geometry.Clamp(neighbor.Y, rect.Top(), rect.Bottom())}
	case core.West:
		return core.Point{X: rect.Left(), Y: geometry.Clamp(neighbor.Y, rect.Top(), rect.Bottom())}
	case core.South:
		return core.Point{X: geometry.Clamp(neighbor.X, rect.Left(), rect.Right()), Y: rect.Bottom()}
	default:
		return core.Point{X: geometry.Clamp(neighbor.X, rect.Left(), rect.Right()), Y: rect.Top()}
	}
}
