// Package connections turns individual routes into a coherent set: it
// infers routing hints from anchors, routes batches with soft avoidance,
// merges fan-in groups into shared corridors, and applies the final lane
// and endpoint fixups.
package connections

import (
	"math"

	"github.com/erland/pwa-modeller-sub011/core"
)

// HintEpsilon is the default tolerance when matching an anchor to a node
// edge.
const HintEpsilon = 2.0

// InferHints derives the preferred exit axis and direction for an anchor
// sitting on (or near) a node's border. Corner anchors, within epsilon of
// both a vertical and a horizontal edge, get no preference at all so the
// router is not over-constrained. Anchors not on any edge fall back to
// the nearest edge by absolute distance.
func InferHints(rect core.Rect, anchor core.Point, epsilon float64) core.RoutingHints {
	if epsilon <= 0 {
		epsilon = HintEpsilon
	}

	dLeft := math.Abs(anchor.X - rect.Left())
	dRight := math.Abs(anchor.X - rect.Right())
	dTop := math.Abs(anchor.Y - rect.Top())
	dBottom := math.Abs(anchor.Y - rect.Bottom())

	onVertical := dLeft <= epsilon || dRight <= epsilon
	onHorizontal := dTop <= epsilon || dBottom <= epsilon

	if onVertical && onHorizontal {
		// Corner anchor: leave both axis and direction undefined.
		return core.RoutingHints{}
	}

	if onVertical {
		if dLeft <= dRight {
			return core.RoutingHints{StartAxis: core.Horizontal, StartDir: core.West}
		}
		return core.RoutingHints{StartAxis: core.Horizontal, StartDir: core.East}
	}
	if onHorizontal {
		if dTop <= dBottom {
			return core.RoutingHints{StartAxis: core.Vertical, StartDir: core.North}
		}
		return core.RoutingHints{StartAxis: core.Vertical, StartDir: core.South}
	}

	// Off-edge anchor: nearest of the four edges wins.
	min := dLeft
	dir := core.West
	axis := core.Horizontal
	if dRight < min {
		min, dir, axis = dRight, core.East, core.Horizontal
	}
	if dTop < min {
		min, dir, axis = dTop, core.North, core.Vertical
	}
	if dBottom < min {
		dir, axis = core.South, core.Vertical
	}
	return core.RoutingHints{StartAxis: axis, StartDir: dir}
}

// StubLengthFor resolves the effective stub length from hints: the
// explicit stub length, else the grid size, else 8.
func StubLengthFor(hints core.RoutingHints) float64 {
	if hints.StubLength > 0 {
		return hints.StubLength
	}
	if hints.GridSize > 0 {
		return hints.GridSize
	}
	return 8
}

// ComputeStubbedEndpoints offsets an anchor outward by the resolved stub
// length along its hinted direction. Anchors with no known direction are
// returned unchanged.
func ComputeStubbedEndpoints(anchor core.Point, dir core.Direction, hints core.RoutingHints) core.Point {
	if dir == core.DirNone {
		return anchor
	}
	stub := StubLengthFor(hints)
	dx, dy := dir.Delta()
	return core.Point{X: anchor.X + dx*stub, Y: anchor.Y + dy*stub}
}
