package diagram

import (
	"fmt"

	"github.com/erland/pwa-modeller-sub011/connections"
	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/pathfinding"
)

// Router computes orthogonal routes for every connection in a view. It is
// stateless between calls: identical views always produce identical
// routes, so callers may recompute per edit or memoize freely.
type Router struct {
	Notation    Notation
	Batch       connections.BatchOptions
	LaneSpacing float64
}

// NewRouter creates a router with the given notation capability; nil gets
// the standard one.
func NewRouter(n Notation) *Router {
	if n == nil {
		n = StandardNotation{}
	}
	return &Router{
		Notation:    n,
		Batch:       connections.DefaultBatchOptions(),
		LaneSpacing: connections.DefaultLaneSpacing,
	}
}

// RouteView routes all connections of a view and returns a map from
// connection ID to route points. A missing entry means no route could be
// computed and the caller should keep its previous points. The only error
// condition is a malformed view (a connection referencing an unknown
// node).
func (r *Router) RouteView(v *View) (map[string][]core.Point, error) {
	gs := v.Grid()

	rects := make(map[string]core.Rect, len(v.Nodes))
	centers := make(map[string]core.Point, len(v.Nodes))
	for _, n := range v.Nodes {
		rects[n.ID] = n.Rect()
		centers[n.ID] = n.Rect().Center()
	}

	selfLoops := make(map[string][]core.Point)
	var requests []connections.Request
	connByID := make(map[string]Connection, len(v.Connections))

	for _, conn := range v.Connections {
		src, okFrom := rects[conn.From]
		tgt, okTo := rects[conn.To]
		if !okFrom {
			return nil, fmt.Errorf("connection %q references unknown node %q", conn.ID, conn.From)
		}
		if !okTo {
			return nil, fmt.Errorf("connection %q references unknown node %q", conn.ID, conn.To)
		}
		connByID[conn.ID] = conn

		if conn.From == conn.To {
			selfLoops[conn.ID] = connections.RouteSelfLoop(src, gs)
			continue
		}

		opts := pathfinding.Options{
			GridSize:    gs,
			Clearance:   gs / 2,
			StubLength:  gs,
			BendPenalty: 3,
			Bounds:      r.Notation.RegionFor(v, conn),
		}
		if conn.SourceAnchor != nil {
			opts.StartDir = connections.InferHints(src, *conn.SourceAnchor, 0).StartDir
		}
		if conn.TargetAnchor != nil {
			// The hint is the outward normal of the edge the anchor sits
			// on; entering the target means moving against it.
			opts.EndDir = connections.InferHints(tgt, *conn.TargetAnchor, 0).StartDir.Opposite()
		}

		requests = append(requests, connections.Request{
			ID:       conn.ID,
			Source:   src,
			Target:   tgt,
			Obstacle: r.Notation.ObstaclesFor(v, conn),
			Options:  opts,
		})
	}

	routed := connections.RouteBatch(requests, r.Batch)

	final := make(map[string][]core.Point, len(routed)+len(selfLoops))
	for id, route := range routed {
		final[id] = route.Points
	}

	// Merge fan-in groups into shared corridors.
	allRects := make([]core.Rect, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		allRects = append(allRects, n.Rect())
	}
	var fanConns []connections.FanInConnection
	for id, points := range final {
		conn := connByID[id]
		fanConns = append(fanConns, connections.FanInConnection{
			ID:         id,
			ViewID:     v.ID,
			TargetKey:  conn.To,
			Points:     points,
			TargetRect: rects[conn.To],
		})
	}
	fanRouted := connections.RouteFanIn(fanConns, allRects, connections.DefaultFanInOptions(gs))
	for id, points := range fanRouted {
		final[id] = points
	}

	// Fan out parallel direct connections that survived untouched.
	var parallel []connections.ParallelConnection
	for id, points := range final {
		if _, merged := fanRouted[id]; merged {
			continue
		}
		conn := connByID[id]
		parallel = append(parallel, connections.ParallelConnection{
			ID:        id,
			SourceKey: conn.From,
			TargetKey: conn.To,
			Points:    points,
		})
	}
	for id, points := range connections.OffsetParallel(parallel, centers, r.LaneSpacing) {
		final[id] = points
	}

	// Snap endpoints back onto the borders so the rendered first/last
	// segment matches the side each route actually uses.
	for id, points := range final {
		conn := connByID[id]
		src, tgt := rects[conn.From], rects[conn.To]
		startSide := core.DirNone
		endSide := core.DirNone
		if len(points) >= 2 {
			startSide = connections.InferHints(src, points[0], 0).StartDir
			endSide = connections.InferHints(tgt, points[len(points)-1], 0).StartDir
		}
		final[id] = connections.SnapEndpoints(points, src, startSide, tgt, endSide)
	}

	for id, points := range selfLoops {
		final[id] = points
	}
	return final, nil
}
