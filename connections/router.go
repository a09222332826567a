package connections

import (
	"sort"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/pathfinding"
)

// Request describes one connection to route in a batch.
type Request struct {
	ID       string
	Source   core.Rect
	Target   core.Rect
	Obstacle []core.Rect
	Options  pathfinding.Options
}

// BatchOptions configures the soft-avoidance behavior of RouteBatch.
type BatchOptions struct {
	SoftRadius  float64 // half-width of the deterrent band around routed segments
	SoftPenalty float64 // cost added per soft band a step crosses

	// StubSegments is the number of segments at each end of a routed
	// connection excluded from the deterrent field. Zero excludes nothing;
	// a negative value selects the default of 1.
	StubSegments int
}

// DefaultBatchOptions returns the recommended batch configuration.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		SoftRadius:   4,
		SoftPenalty:  6,
		StubSegments: 1,
	}
}

// RouteBatch routes a set of connections one at a time, each finished
// route becoming a low-cost deterrent (never a hard block) for the ones
// after it. Requests are routed in ID order so identical input always
// yields identical output. A connection that cannot be routed under the
// accumulated penalties is retried with a clean field: overlap is always
// preferable to dropping a route.
//
// The soft-obstacle accumulator is local to this call; RouteBatch holds
// no state between invocations.
func RouteBatch(requests []Request, opts BatchOptions) map[string]*core.Route {
	if opts.StubSegments < 0 {
		opts.StubSegments = 1
	}

	ordered := make([]Request, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	routes := make(map[string]*core.Route, len(ordered))
	var soft []core.Rect

	for _, req := range ordered {
		ro := req.Options
		if ro.SoftPenalty == 0 {
			ro.SoftPenalty = opts.SoftPenalty
		}

		route := pathfinding.FindRoute(req.Source, req.Target, req.Obstacle, soft, ro)
		if route == nil && len(soft) > 0 {
			route = pathfinding.FindRoute(req.Source, req.Target, req.Obstacle, nil, ro)
		}
		if route == nil {
			continue
		}

		routes[req.ID] = route
		soft = append(soft, pathfinding.SegmentObstacles(route.Points, opts.SoftRadius, opts.StubSegments)...)
	}

	return routes
}
