// Package geometry provides the scalar and polyline math used by the
// routing engine.
package geometry

import (
	"math"

	"github.com/erland/pwa-modeller-sub011/core"
)

// Clamp constrains v to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// BoundsForRects returns the axis-aligned bounding box of a set of
// rectangles. Returns a zero rect when the set is empty.
func BoundsForRects(rects []core.Rect) core.Rect {
	if len(rects) == 0 {
		return core.Rect{}
	}
	minX, minY := rects[0].Left(), rects[0].Top()
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.Left())
		minY = math.Min(minY, r.Top())
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	return core.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// DistancePointToSegment returns the distance from p to the segment a-b.
// The projection of p onto the segment's line is clamped to the segment.
func DistancePointToSegment(p, a, b core.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = Clamp(t, 0, 1)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// DistancePointToPolyline returns the minimum distance from p to any
// segment of the polyline. Returns +Inf for polylines with fewer than
// two points.
func DistancePointToPolyline(p core.Point, points []core.Point) float64 {
	if len(points) < 2 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		d := DistancePointToSegment(p, points[i-1], points[i])
		if d < best {
			best = d
		}
	}
	return best
}

// RectEdgeAnchor returns the point on the border of rect lying on the ray
// from its center toward the given point. When toward coincides with the
// center the anchor degenerates to the center itself.
func RectEdgeAnchor(rect core.Rect, toward core.Point) core.Point {
	c := rect.Center()
	dx := toward.X - c.X
	dy := toward.Y - c.Y
	if dx == 0 && dy == 0 {
		return c
	}
	// Scale the ray by whichever half-extent it reaches first.
	scale := math.Inf(1)
	if dx != 0 {
		scale = (rect.W / 2) / math.Abs(dx)
	}
	if dy != 0 {
		s := (rect.H / 2) / math.Abs(dy)
		if s < scale {
			scale = s
		}
	}
	return core.Point{X: c.X + dx*scale, Y: c.Y + dy*scale}
}

// UnitPerp returns the unit vector perpendicular to a->b (rotated 90°).
// When the two points coincide or are numerically too close, it falls back
// to {0, -1} so callers never see NaN coordinates.
func UnitPerp(a, b core.Point) core.Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return core.Point{X: 0, Y: -1}
	}
	return core.Point{X: -dy / length, Y: dx / length}
}

// OffsetPolyline translates every point of a polyline by perp scaled by
// offset.
func OffsetPolyline(points []core.Point, perp core.Point, offset float64) []core.Point {
	out := make([]core.Point, len(points))
	for i, p := range points {
		out[i] = core.Point{X: p.X + perp.X*offset, Y: p.Y + perp.Y*offset}
	}
	return out
}

// RemoveRedundant collapses consecutive duplicate points and removes
// collinear interior points. Three consecutive points are collinear when
// both segments between them run along the same axis. Applying it twice
// yields the same result as applying it once.
func RemoveRedundant(points []core.Point) []core.Point {
	if len(points) <= 1 {
		return points
	}

	deduped := []core.Point{points[0]}
	for _, p := range points[1:] {
		if p != deduped[len(deduped)-1] {
			deduped = append(deduped, p)
		}
	}
	if len(deduped) <= 2 {
		return deduped
	}

	result := []core.Point{deduped[0]}
	for i := 1; i < len(deduped)-1; i++ {
		prev := result[len(result)-1]
		curr := deduped[i]
		next := deduped[i+1]
		bothHoriz := prev.Y == curr.Y && curr.Y == next.Y
		bothVert := prev.X == curr.X && curr.X == next.X
		if bothHoriz || bothVert {
			continue
		}
		result = append(result, curr)
	}
	result = append(result, deduped[len(deduped)-1])
	return result
}
