package connections

import (
	"reflect"
	"testing"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/pathfinding"
)

func batchTestOptions() pathfinding.Options {
	return pathfinding.Options{
		GridSize:    10,
		Clearance:   4,
		StubLength:  10,
		BendPenalty: 3,
	}
}

func TestRouteBatchDeconflicts(t *testing.T) {
	// Two L-shaped connections between the same rects; the second must be
	// pushed off the first one's interior corridor by the soft field.
	source := core.Rect{X: 0, Y: 0, W: 20, H: 20}
	target := core.Rect{X: 120, Y: 120, W: 20, H: 20}
	requests := []Request{
		{ID: "a", Source: source, Target: target, Options: batchTestOptions()},
		{ID: "b", Source: source, Target: target, Options: batchTestOptions()},
	}

	routes := RouteBatch(requests, BatchOptions{SoftRadius: 6, SoftPenalty: 30, StubSegments: 1})
	if routes["a"] == nil || routes["b"] == nil {
		t.Fatalf("both connections should route, got %v", routes)
	}
	if reflect.DeepEqual(routes["a"].Points, routes["b"].Points) {
		t.Errorf("second route should diverge from the first:\n%v\n%v",
			routes["a"].Points, routes["b"].Points)
	}
}

func TestRouteBatchDeterministicOrder(t *testing.T) {
	source := core.Rect{X: 0, Y: 0, W: 20, H: 40}
	target := core.Rect{X: 120, Y: 0, W: 20, H: 40}
	forward := []Request{
		{ID: "a", Source: source, Target: target, Options: batchTestOptions()},
		{ID: "b", Source: source, Target: target, Options: batchTestOptions()},
	}
	reversed := []Request{forward[1], forward[0]}

	opts := DefaultBatchOptions()
	first := RouteBatch(forward, opts)
	second := RouteBatch(reversed, opts)

	for _, id := range []string{"a", "b"} {
		if first[id] == nil || second[id] == nil {
			t.Fatalf("connection %q missing from a batch result", id)
		}
		if !reflect.DeepEqual(first[id].Points, second[id].Points) {
			t.Errorf("input order changed the result for %q:\n%v\n%v",
				id, first[id].Points, second[id].Points)
		}
	}
}

func TestRouteBatchNeverDropsForOverlap(t *testing.T) {
	// A one-cell corridor between two walls: every connection must squeeze
	// through it, soft field or not.
	walls := []core.Rect{
		{X: 50, Y: -200, W: 20, H: 204},
		{X: 50, Y: 16, W: 20, H: 204},
	}
	source := core.Rect{X: 0, Y: 0, W: 20, H: 20}
	target := core.Rect{X: 120, Y: 0, W: 20, H: 20}

	opts := pathfinding.Options{GridSize: 10, Clearance: 2, StubLength: 10}
	requests := []Request{
		{ID: "a", Source: source, Target: target, Obstacle: walls, Options: opts},
		{ID: "b", Source: source, Target: target, Obstacle: walls, Options: opts},
	}

	routes := RouteBatch(requests, BatchOptions{SoftRadius: 6, SoftPenalty: 50, StubSegments: 1})
	if routes["a"] == nil || routes["b"] == nil {
		t.Fatalf("overlap avoidance must never drop a connection, got %v", routes)
	}
}

func TestRouteBatchStubSegments(t *testing.T) {
	// Two aligned rects route as a single straight segment. With zero stub
	// segments that whole segment joins the deterrent field, so the second
	// connection must detour; a negative value restores the default of one
	// excluded segment per end, which leaves a one-segment route with no
	// field at all.
	source := core.Rect{X: 0, Y: 0, W: 20, H: 40}
	target := core.Rect{X: 120, Y: 0, W: 20, H: 40}
	requests := []Request{
		{ID: "a", Source: source, Target: target, Options: batchTestOptions()},
		{ID: "b", Source: source, Target: target, Options: batchTestOptions()},
	}

	routes := RouteBatch(requests, BatchOptions{SoftRadius: 6, SoftPenalty: 30, StubSegments: 0})
	if routes["a"] == nil || routes["b"] == nil {
		t.Fatalf("both connections should route, got %v", routes)
	}
	if routes["a"].Bends() != 0 {
		t.Errorf("first route should stay straight, got %v", routes["a"].Points)
	}
	if routes["b"].Bends() == 0 {
		t.Errorf("second route should detour around the first, got %v", routes["b"].Points)
	}

	routes = RouteBatch(requests, BatchOptions{SoftRadius: 6, SoftPenalty: 30, StubSegments: -1})
	if !reflect.DeepEqual(routes["a"].Points, routes["b"].Points) {
		t.Errorf("with the default exclusion a one-segment route leaves no field:\n%v\n%v",
			routes["a"].Points, routes["b"].Points)
	}
}

func TestRouteBatchSkipsImpossible(t *testing.T) {
	source := core.Rect{X: 0, Y: 0, W: 20, H: 20}
	target := core.Rect{X: 120, Y: 0, W: 20, H: 20}
	bounds := core.Rect{X: -20, Y: -20, W: 80, H: 80}

	opts := batchTestOptions()
	opts.Bounds = &bounds
	routes := RouteBatch([]Request{
		{ID: "a", Source: source, Target: target, Options: opts},
	}, DefaultBatchOptions())

	if _, ok := routes["a"]; ok {
		t.Errorf("unroutable connection should be absent from the result, got %v", routes["a"])
	}
}
