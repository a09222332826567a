package connections

import (
	"sort"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/geometry"
)

// FanInConnection is one already-routed connection considered for corridor
// merging. TargetSide may be DirNone, in which case the side is inferred
// from the direction of the final segment.
type FanInConnection struct {
	ID         string
	ViewID     string
	TargetKey  string
	Points     []core.Point
	TargetRect core.Rect
	TargetSide core.Direction
}

// FanInOptions configures corridor placement and dock spacing.
type FanInOptions struct {
	GridSize      float64 // base unit; default 8
	ApproachGap   float64 // corridor offset from the target edge; default 2*GridSize
	LaneSpacing   float64 // spacing between lanes inside the corridor; default GridSize/2
	DockSpacing   float64 // minimum spacing between docks on the edge; default GridSize
	EdgePadding   float64 // docks keep this distance from the edge corners; default GridSize/2
	StubLength    float64 // target entry stub; default GridSize
	MaxShiftSteps int     // obstacle-probe shifts per lane; default 10
}

// DefaultFanInOptions returns the recommended configuration for a grid size.
func DefaultFanInOptions(gridSize float64) FanInOptions {
	if gridSize <= 0 {
		gridSize = 8
	}
	return FanInOptions{
		GridSize:      gridSize,
		ApproachGap:   2 * gridSize,
		LaneSpacing:   gridSize / 2,
		DockSpacing:   gridSize,
		EdgePadding:   gridSize / 2,
		StubLength:    gridSize,
		MaxShiftSteps: 10,
	}
}

func (o FanInOptions) withDefaults() FanInOptions {
	d := DefaultFanInOptions(o.GridSize)
	if o.ApproachGap <= 0 {
		o.ApproachGap = d.ApproachGap
	}
	if o.LaneSpacing <= 0 {
		o.LaneSpacing = d.LaneSpacing
	}
	if o.DockSpacing <= 0 {
		o.DockSpacing = d.DockSpacing
	}
	if o.EdgePadding <= 0 {
		o.EdgePadding = d.EdgePadding
	}
	if o.StubLength <= 0 {
		o.StubLength = d.StubLength
	}
	if o.MaxShiftSteps <= 0 {
		o.MaxShiftSteps = d.MaxShiftSteps
	}
	o.GridSize = d.GridSize
	return o
}

type fanInKey struct {
	ViewID    string
	TargetKey string
	Side      core.Direction
}

// finalSegmentDirection returns the direction of the last segment of an
// orthogonal polyline, or DirNone for zero-length or diagonal (ambiguous)
// final segments.
func finalSegmentDirection(points []core.Point) core.Direction {
	if len(points) < 2 {
		return core.DirNone
	}
	return segmentDirection(points[len(points)-2], points[len(points)-1])
}

// approachSide returns which side of the target a connection enters: the
// opposite of its final travel direction (a rightward final segment enters
// the west side).
func approachSide(c FanInConnection) core.Direction {
	if c.TargetSide != core.DirNone {
		return c.TargetSide
	}
	return finalSegmentDirection(c.Points).Opposite()
}

// RouteFanIn merges connections converging on the same side of the same
// target into shared approach corridors with individually assigned docks.
// The returned map holds replacement polylines only for connections that
// belong to a group of two or more; everything else keeps its route.
func RouteFanIn(conns []FanInConnection, obstacles []core.Rect, opts FanInOptions) map[string][]core.Point {
	opts = opts.withDefaults()

	groups := make(map[fanInKey][]FanInConnection)
	for _, c := range conns {
		// An explicit side does not make a pointless member routable.
		if len(c.Points) == 0 {
			continue
		}
		side := approachSide(c)
		if side == core.DirNone {
			continue
		}
		key := fanInKey{ViewID: c.ViewID, TargetKey: c.TargetKey, Side: side}
		groups[key] = append(groups[key], c)
	}

	keys := make([]fanInKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ViewID != b.ViewID {
			return a.ViewID < b.ViewID
		}
		if a.TargetKey != b.TargetKey {
			return a.TargetKey < b.TargetKey
		}
		return a.Side < b.Side
	})

	result := make(map[string][]core.Point)
	for _, key := range keys {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		routeFanInGroup(key.Side, group, obstacles, opts, result)
	}
	return result
}

// dockAxisCoord extracts the coordinate along the docking axis: Y for
// east/west sides, X for north/south.
func dockAxisCoord(p core.Point, side core.Direction) float64 {
	if side == core.East || side == core.West {
		return p.Y
	}
	return p.X
}

// assignDocks produces one dock coordinate per member, in member order.
// Docks grow monotonically with the configured spacing and stay inside
// the padded span; an overflowing sequence is shifted back uniformly and
// re-clamped, compressing spacing only when the span cannot hold it.
func assignDocks(desired []float64, lo, hi, spacing float64) []float64 {
	docks := make([]float64, len(desired))
	for i, d := range desired {
		if i > 0 && d < docks[i-1]+spacing {
			d = docks[i-1] + spacing
		}
		if d < lo {
			d = lo
		}
		docks[i] = d
	}
	if n := len(docks); n > 0 && docks[n-1] > hi {
		shift := docks[n-1] - hi
		for i := range docks {
			docks[i] -= shift
		}
		for i := range docks {
			if docks[i] < lo {
				docks[i] = lo
			}
			if i > 0 && docks[i] < docks[i-1]+spacing {
				docks[i] = docks[i-1] + spacing
			}
			if docks[i] > hi {
				docks[i] = hi
			}
		}
	}
	return docks
}

// corridorCoord places one member's lane: the shared approach line sits
// ApproachGap outside the edge and lanes step outward from it. Each lane
// is probed against the obstacles, shifting a grid step further out until
// it is clear; the last candidate is kept if none is.
func corridorCoord(side core.Direction, edge core.Rect, lane int, span [2]float64, obstacles []core.Rect, opts FanInOptions) float64 {
	out := opts.ApproachGap + float64(lane)*opts.LaneSpacing
	for step := 0; step <= opts.MaxShiftSteps; step++ {
		coord := corridorLine(side, edge, out+float64(step)*opts.GridSize)
		if !corridorBlocked(side, coord, span, obstacles) {
			return coord
		}
	}
	return corridorLine(side, edge, out+float64(opts.MaxShiftSteps)*opts.GridSize)
}

// corridorLine converts an outward offset into a canvas coordinate for
// the corridor's fixed axis.
func corridorLine(side core.Direction, edge core.Rect, out float64) float64 {
	switch side {
	case core.West:
		return edge.Left() - out
	case core.East:
		return edge.Right() + out
	case core.North:
		return edge.Top() - out
	default:
		return edge.Bottom() + out
	}
}

// corridorBlocked checks a thin band along the corridor line, spanning the
// dock range, against the obstacle set.
func corridorBlocked(side core.Direction, coord float64, span [2]float64, obstacles []core.Rect) bool {
	lo, hi := span[0], span[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	var band core.Rect
	if side == core.East || side == core.West {
		band = core.Rect{X: coord - 1, Y: lo, W: 2, H: hi - lo}
	} else {
		band = core.Rect{X: lo, Y: coord - 1, W: hi - lo, H: 2}
	}
	for _, o := range obstacles {
		if o.Intersects(band) {
			return true
		}
	}
	return false
}

func routeFanInGroup(side core.Direction, group []FanInConnection, obstacles []core.Rect, opts FanInOptions, result map[string][]core.Point) {
	edge := group[0].TargetRect
	horizontalDocks := side == core.North || side == core.South

	// Members are ordered by their source-side coordinate, not the desired
	// dock, so the assignment never introduces crossings.
	sort.SliceStable(group, func(i, j int) bool {
		a := dockAxisCoord(group[i].Points[0], side)
		b := dockAxisCoord(group[j].Points[0], side)
		if a != b {
			return a < b
		}
		return group[i].ID < group[j].ID
	})

	var lo, hi float64
	if horizontalDocks {
		lo, hi = edge.Left()+opts.EdgePadding, edge.Right()-opts.EdgePadding
	} else {
		lo, hi = edge.Top()+opts.EdgePadding, edge.Bottom()-opts.EdgePadding
	}

	desired := make([]float64, len(group))
	for i, c := range group {
		desired[i] = dockAxisCoord(c.Points[len(c.Points)-1], side)
	}
	docks := assignDocks(desired, lo, hi, opts.DockSpacing)

	for i, c := range group {
		corridor := corridorCoord(side, edge, i, [2]float64{lo, hi}, obstacles, opts)
		result[c.ID] = assembleFanInPolyline(c, side, edge, corridor, docks[i], opts)
	}
}

// assembleFanInPolyline builds one member's replacement route: source
// anchor, source exit stub, one extra outward point (so the route cannot
// fold back along the source edge when the corridor aligns with the exit
// stub), corridor entry, corridor at the dock, target entry stub, target
// anchor.
func assembleFanInPolyline(c FanInConnection, side core.Direction, edge core.Rect, corridor, dock float64, opts FanInOptions) []core.Point {
	srcAnchor := c.Points[0]
	srcExit := srcAnchor
	if len(c.Points) > 1 {
		srcExit = c.Points[1]
	}

	extra := srcExit
	if dir := segmentDirection(srcAnchor, srcExit); dir != core.DirNone {
		dx, dy := dir.Delta()
		extra = core.Point{X: srcExit.X + dx*opts.GridSize, Y: srcExit.Y + dy*opts.GridSize}
	}

	var entry, corridorDock, stub, anchor core.Point
	if side == core.East || side == core.West {
		edgeX := edge.Left()
		stubX := edgeX - opts.StubLength
		if side == core.East {
			edgeX = edge.Right()
			stubX = edgeX + opts.StubLength
		}
		entry = core.Point{X: corridor, Y: extra.Y}
		corridorDock = core.Point{X: corridor, Y: dock}
		stub = core.Point{X: stubX, Y: dock}
		anchor = core.Point{X: edgeX, Y: dock}
	} else {
		edgeY := edge.Top()
		stubY := edgeY - opts.StubLength
		if side == core.South {
			edgeY = edge.Bottom()
			stubY = edgeY + opts.StubLength
		}
		entry = core.Point{X: extra.X, Y: corridor}
		corridorDock = core.Point{X: dock, Y: corridor}
		stub = core.Point{X: dock, Y: stubY}
		anchor = core.Point{X: dock, Y: edgeY}
	}

	points := []core.Point{srcAnchor, srcExit, extra, entry, corridorDock, stub, anchor}
	return geometry.RemoveRedundant(points)
}

// segmentDirection returns the axis-aligned direction from a to b, or
// DirNone when the segment is degenerate or diagonal.
func segmentDirection(a, b core.Point) core.Direction {
	dx := b.X - a.X
	dy := b.Y - a.Y
	switch {
	case dx != 0 && dy != 0:
		return core.DirNone
	case dx > 0:
		return core.East
	case dx < 0:
		return core.West
	case dy > 0:
		return core.South
	case dy < 0:
		return core.North
	default:
		return core.DirNone
	}
}
