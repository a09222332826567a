package connections

import (
	"testing"

	"github.com/erland/pwa-modeller-sub011/core"
)

func TestRouteSelfLoopSquareNode(t *testing.T) {
	rect := core.Rect{X: 0, Y: 0, W: 60, H: 60}
	points := RouteSelfLoop(rect, 8)
	if len(points) != 5 {
		t.Fatalf("expected a 5-point loop, got %v", points)
	}
	checkOrthogonalPoints(t, points)

	first, last := points[0], points[len(points)-1]
	if first.X != rect.Right() || first.Y != 30 {
		t.Errorf("loop should leave the right edge at mid-height, got %+v", first)
	}
	if last.Y != rect.Top() || last.X != 30 {
		t.Errorf("loop should re-enter through the top edge, got %+v", last)
	}
	for _, p := range points[1 : len(points)-1] {
		if p.X <= rect.Right() && p.Y >= rect.Top() {
			t.Errorf("interior loop point %+v should lie outside the node", p)
		}
	}
}

func TestRouteSelfLoopWideNode(t *testing.T) {
	rect := core.Rect{X: 0, Y: 0, W: 120, H: 40}
	points := RouteSelfLoop(rect, 8)
	if len(points) != 5 {
		t.Fatalf("expected a 5-point loop, got %v", points)
	}
	checkOrthogonalPoints(t, points)

	first, last := points[0], points[len(points)-1]
	if first.Y != rect.Top() || first.X != 60 {
		t.Errorf("wide node loop should leave the top edge, got %+v", first)
	}
	if last.X != rect.Right() || last.Y != 20 {
		t.Errorf("wide node loop should re-enter the right edge, got %+v", last)
	}
}

func TestRouteSelfLoopSizeClamps(t *testing.T) {
	// Tiny node: the loop never shrinks below one grid unit.
	points := RouteSelfLoop(core.Rect{X: 0, Y: 0, W: 9, H: 9}, 8)
	if extent := points[1].X - 9; extent != 8 {
		t.Errorf("small node loop extent = %v, want one grid unit", extent)
	}

	// Huge node: the loop never grows past three grid units.
	points = RouteSelfLoop(core.Rect{X: 0, Y: 0, W: 300, H: 300}, 8)
	if extent := points[1].X - 300; extent != 24 {
		t.Errorf("large node loop extent = %v, want three grid units", extent)
	}
}

func TestRouteSelfLoopDefaultGrid(t *testing.T) {
	points := RouteSelfLoop(core.Rect{X: 0, Y: 0, W: 10, H: 10}, 0)
	if extent := points[1].X - 10; extent != 8 {
		t.Errorf("zero grid size should fall back to 8, got extent %v", extent)
	}
}
