// Package pathfinding provides the grid search that produces a single
// orthogonal route between two rectangles, avoiding hard obstacles and
// penalizing soft ones.
package pathfinding

import (
	"math"

	"github.com/erland/pwa-modeller-sub011/core"
)

// Options configures a single route search.
//
// GridSize, StubLength and MaxCells fall back to defaults when zero;
// Clearance, BendPenalty and SoftPenalty are taken as given so that a
// zero penalty genuinely means "no penalty". DefaultOptions returns the
// full recommended set.
type Options struct {
	GridSize    float64        // search grid pitch in canvas units
	Clearance   float64        // inflation applied to hard obstacles
	StubLength  float64        // length of the exit/entry stubs
	BendPenalty float64        // extra cost per direction change, in step units
	SoftPenalty float64        // extra cost for entering a soft-obstacle cell
	StartDir    core.Direction // hard exit direction (DirNone = free)
	EndDir      core.Direction // hard entry direction (DirNone = free)
	Bounds      *core.Rect     // explicit search region; nil = derived
	MaxCells    int            // safety limit on explored states
}

// DefaultOptions returns the recommended search configuration.
func DefaultOptions() Options {
	return Options{
		GridSize:    8,
		Clearance:   4,
		StubLength:  8,
		BendPenalty: 3,
		SoftPenalty: 5,
		MaxCells:    50000,
	}
}

func (o Options) withDefaults() Options {
	if o.GridSize <= 0 {
		o.GridSize = 8
	}
	if o.StubLength <= 0 {
		o.StubLength = o.GridSize
	}
	if o.MaxCells <= 0 {
		o.MaxCells = 50000
	}
	return o
}

// cell is an integer grid coordinate. Cell (x, y) maps to the canvas
// point (x*GridSize, y*GridSize).
type cell struct {
	X, Y int
}

func (c cell) point(gridSize float64) core.Point {
	return core.Point{X: float64(c.X) * gridSize, Y: float64(c.Y) * gridSize}
}

// step returns the neighboring cell one move away in the given direction.
func (c cell) step(d core.Direction) cell {
	switch d {
	case core.North:
		return cell{c.X, c.Y - 1}
	case core.East:
		return cell{c.X + 1, c.Y}
	case core.South:
		return cell{c.X, c.Y + 1}
	case core.West:
		return cell{c.X - 1, c.Y}
	default:
		return c
	}
}

// searchDirections is the fixed neighbor expansion order. Together with
// the queue tie-breaking it makes the search fully deterministic.
var searchDirections = [4]core.Direction{core.North, core.East, core.South, core.West}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// manhattan returns the Manhattan distance between two cells in steps.
func manhattan(a, b cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// sideOfAnchor returns which edge of rect an anchor point sits on,
// judged by the dominant normalized offset from the center. Horizontal
// wins exact ties so the result is deterministic for corner anchors.
func sideOfAnchor(rect core.Rect, anchor core.Point) core.Direction {
	c := rect.Center()
	nx, ny := anchor.X-c.X, anchor.Y-c.Y
	if rect.W > 0 {
		nx /= rect.W / 2
	}
	if rect.H > 0 {
		ny /= rect.H / 2
	}
	if math.Abs(nx) >= math.Abs(ny) {
		if nx >= 0 {
			return core.East
		}
		return core.West
	}
	if ny >= 0 {
		return core.South
	}
	return core.North
}
