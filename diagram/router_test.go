package diagram

import (
	"reflect"
	"testing"

	"github.com/erland/pwa-modeller-sub011/core"
)

func checkOrthogonalPoints(t *testing.T, points []core.Point) {
	t.Helper()
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if (a.X == b.X) == (a.Y == b.Y) {
			t.Errorf("segment %d not orthogonal: %+v -> %+v", i-1, a, b)
		}
	}
}

// segmentCrossesRect reports whether an axis-aligned segment passes through
// the interior of a rectangle. Touching the border does not count.
func segmentCrossesRect(a, b core.Point, r core.Rect) bool {
	if a.X == b.X {
		if a.X <= r.Left() || a.X >= r.Right() {
			return false
		}
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		return hi > r.Top() && lo < r.Bottom()
	}
	if a.Y <= r.Top() || a.Y >= r.Bottom() {
		return false
	}
	lo, hi := a.X, b.X
	if lo > hi {
		lo, hi = hi, lo
	}
	return hi > r.Left() && lo < r.Right()
}

func TestRouteViewBasic(t *testing.T) {
	v := &View{
		ID: "v1",
		Nodes: []Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 240, Y: 0},
		},
		Connections: []Connection{{ID: "c1", From: "a", To: "b"}},
	}

	routes, err := NewRouter(nil).RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}
	points, ok := routes["c1"]
	if !ok || len(points) < 2 {
		t.Fatalf("expected a route for c1, got %v", routes)
	}
	checkOrthogonalPoints(t, points)

	first := points[0]
	last := points[len(points)-1]
	if first.X != 120 {
		t.Errorf("route should leave a's right edge, got %+v", first)
	}
	if last.X != 240 {
		t.Errorf("route should enter b's left edge, got %+v", last)
	}
	if first.Y < 0 || first.Y > 60 || last.Y < 0 || last.Y > 60 {
		t.Errorf("anchors outside node edges: %+v .. %+v", first, last)
	}
}

func TestRouteViewUnknownNode(t *testing.T) {
	v := &View{
		ID:          "v1",
		Nodes:       []Node{{ID: "a"}},
		Connections: []Connection{{ID: "c1", From: "a", To: "ghost"}},
	}
	if _, err := NewRouter(nil).RouteView(v); err == nil {
		t.Error("a connection to a missing node must fail the view")
	}
}

func TestRouteViewSelfLoop(t *testing.T) {
	v := &View{
		ID:          "v1",
		Nodes:       []Node{{ID: "a", X: 40, Y: 40, W: 60, H: 60}},
		Connections: []Connection{{ID: "loop", From: "a", To: "a"}},
	}

	routes, err := NewRouter(nil).RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}
	points := routes["loop"]
	if len(points) != 5 {
		t.Fatalf("expected a 5-point self loop, got %v", points)
	}
	checkOrthogonalPoints(t, points)

	rect := v.Nodes[0].Rect()
	for _, p := range []core.Point{points[0], points[len(points)-1]} {
		onBorder := p.X == rect.Left() || p.X == rect.Right() ||
			p.Y == rect.Top() || p.Y == rect.Bottom()
		if !onBorder {
			t.Errorf("loop endpoint %+v should sit on the node border", p)
		}
	}
}

func TestRouteViewAnchorsConstrainDirections(t *testing.T) {
	v := &View{
		ID: "v1",
		Nodes: []Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 0, Y: 200},
		},
		Connections: []Connection{{
			ID:           "c1",
			From:         "a",
			To:           "b",
			SourceAnchor: &core.Point{X: 60, Y: 60},
			TargetAnchor: &core.Point{X: 60, Y: 200},
		}},
	}

	routes, err := NewRouter(nil).RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}
	points := routes["c1"]
	if len(points) < 2 {
		t.Fatalf("expected a route, got %v", points)
	}
	checkOrthogonalPoints(t, points)

	if points[0].Y != 60 {
		t.Errorf("south anchor should pin the exit to a's bottom edge, got %+v", points[0])
	}
	if points[1].Y <= points[0].Y || points[1].X != points[0].X {
		t.Errorf("first segment must move south, got %+v -> %+v", points[0], points[1])
	}
	n := len(points)
	if points[n-1].Y != 200 {
		t.Errorf("north anchor should pin the entry to b's top edge, got %+v", points[n-1])
	}
	if points[n-2].Y >= points[n-1].Y || points[n-2].X != points[n-1].X {
		t.Errorf("last segment must enter moving south, got %+v -> %+v", points[n-2], points[n-1])
	}
}

func TestRouteViewAvoidsOtherNodes(t *testing.T) {
	blocker := Node{ID: "blocker", X: 160, Y: 0}
	v := &View{
		ID: "v1",
		Nodes: []Node{
			{ID: "a", X: 0, Y: 0},
			blocker,
			{ID: "b", X: 320, Y: 0},
		},
		Connections: []Connection{{ID: "c1", From: "a", To: "b"}},
	}

	routes, err := NewRouter(nil).RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}
	points := routes["c1"]
	if len(points) < 2 {
		t.Fatalf("expected a route, got %v", points)
	}
	rect := blocker.Rect()
	for i := 1; i < len(points); i++ {
		if segmentCrossesRect(points[i-1], points[i], rect) {
			t.Errorf("route crosses the intermediate node: %v", points)
		}
	}
}

func TestRouteViewMergesFanIn(t *testing.T) {
	v := &View{
		ID: "v1",
		Nodes: []Node{
			{ID: "s1", X: 0, Y: 0},
			{ID: "s2", X: 0, Y: 100},
			{ID: "s3", X: 0, Y: 200},
			{ID: "t", X: 320, Y: 100},
		},
		Connections: []Connection{
			{ID: "c1", From: "s1", To: "t"},
			{ID: "c2", From: "s2", To: "t"},
			{ID: "c3", From: "s3", To: "t"},
		},
	}

	routes, err := NewRouter(nil).RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}

	target, _ := v.NodeByID("t")
	rect := target.Rect()
	docks := make(map[float64]string)
	for _, id := range []string{"c1", "c2", "c3"} {
		points := routes[id]
		if len(points) < 2 {
			t.Fatalf("expected a route for %s, got %v", id, routes)
		}
		checkOrthogonalPoints(t, points)
		last := points[len(points)-1]
		if last.X != rect.Left() {
			t.Errorf("%s should dock on the west edge, got %+v", id, last)
		}
		if prev, dup := docks[last.Y]; dup {
			t.Errorf("%s and %s share dock y=%v", id, prev, last.Y)
		}
		docks[last.Y] = id
		if last.Y < rect.Top() || last.Y > rect.Bottom() {
			t.Errorf("%s dock outside the target edge: %+v", id, last)
		}
	}

	// Docks follow the sources' vertical order, so the lanes never cross.
	y1 := routes["c1"][len(routes["c1"])-1].Y
	y2 := routes["c2"][len(routes["c2"])-1].Y
	y3 := routes["c3"][len(routes["c3"])-1].Y
	if !(y1 < y2 && y2 < y3) {
		t.Errorf("docks out of source order: %v, %v, %v", y1, y2, y3)
	}
}

func TestRouteViewDeterministic(t *testing.T) {
	v := &View{
		ID: "v1",
		Nodes: []Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 240, Y: 120},
			{ID: "c", X: 150, Y: 70, W: 40, H: 40},
		},
		Connections: []Connection{
			{ID: "c1", From: "a", To: "b"},
			{ID: "c2", From: "b", To: "a"},
		},
	}

	router := NewRouter(nil)
	first, err := router.RouteView(v)
	if err != nil {
		t.Fatalf("RouteView: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := router.RouteView(v)
		if err != nil {
			t.Fatalf("repeat RouteView: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%v\n%v", i, first, again)
		}
	}
}
