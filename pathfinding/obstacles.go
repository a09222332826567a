package pathfinding

import (
	"github.com/erland/pwa-modeller-sub011/core"
)

// ObstacleChecker reports whether a canvas point is blocked.
type ObstacleChecker func(core.Point) bool

// RectObstacleChecker builds a checker over a set of obstacle rectangles,
// each inflated by clearance before testing.
func RectObstacleChecker(rects []core.Rect, clearance float64) ObstacleChecker {
	inflated := make([]core.Rect, len(rects))
	for i, r := range rects {
		inflated[i] = r.Inflate(clearance)
	}
	return func(p core.Point) bool {
		for _, r := range inflated {
			if r.Contains(p) {
				return true
			}
		}
		return false
	}
}

// BoundsChecker blocks every point outside the given region.
func BoundsChecker(bounds core.Rect) ObstacleChecker {
	return func(p core.Point) bool {
		return !bounds.Contains(p)
	}
}

// CombineCheckers combines checkers with OR logic.
func CombineCheckers(checkers ...ObstacleChecker) ObstacleChecker {
	return func(p core.Point) bool {
		for _, c := range checkers {
			if c != nil && c(p) {
				return true
			}
		}
		return false
	}
}

// softCost returns the accumulated penalty for entering a point that lies
// inside soft-obstacle rectangles. Soft obstacles deter but never block.
func softCost(p core.Point, soft []core.Rect, penalty float64) float64 {
	if penalty == 0 || len(soft) == 0 {
		return 0
	}
	cost := 0.0
	for _, r := range soft {
		if r.Contains(p) {
			cost += penalty
		}
	}
	return cost
}

// SegmentObstacles converts a polyline's segments into thin rectangles of
// half-width radius, suitable as soft obstacles for later routes. The
// first and last skipEnds segments are excluded: those hug the node
// borders and would otherwise poison the field around every endpoint.
func SegmentObstacles(points []core.Point, radius float64, skipEnds int) []core.Rect {
	if skipEnds < 0 {
		skipEnds = 0
	}
	segCount := len(points) - 1
	if segCount <= 2*skipEnds {
		return nil
	}
	rects := make([]core.Rect, 0, segCount-2*skipEnds)
	for i := skipEnds; i < segCount-skipEnds; i++ {
		a, b := points[i], points[i+1]
		minX, maxX := a.X, b.X
		if minX > maxX {
			minX, maxX = maxX, minX
		}
		minY, maxY := a.Y, b.Y
		if minY > maxY {
			minY, maxY = maxY, minY
		}
		rects = append(rects, core.Rect{
			X: minX - radius,
			Y: minY - radius,
			W: (maxX - minX) + 2*radius,
			H: (maxY - minY) + 2*radius,
		})
	}
	return rects
}
