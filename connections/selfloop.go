package connections

import (
	"github.com/erland/pwa-modeller-sub011/core"
)

// RouteSelfLoop routes a connection whose source and target are the same
// node as a rectangular loop outside the node border. Wide nodes loop off
// the top edge, everything else off the right edge; the loop size scales
// with the node but stays within sensible bounds.
func RouteSelfLoop(rect core.Rect, gridSize float64) []core.Point {
	if gridSize <= 0 {
		gridSize = 8
	}

	minDim := rect.W
	if rect.H < minDim {
		minDim = rect.H
	}
	loop := minDim / 3
	if loop < gridSize {
		loop = gridSize
	} else if loop > 3*gridSize {
		loop = 3 * gridSize
	}

	c := rect.Center()
	if rect.H > 0 && rect.W/rect.H > 1.5 {
		// Wide node: top edge out, around the corner, into the right edge.
		return []core.Point{
			{X: c.X, Y: rect.Top()},
			{X: c.X, Y: rect.Top() - loop},
			{X: rect.Right() + loop, Y: rect.Top() - loop},
			{X: rect.Right() + loop, Y: c.Y},
			{X: rect.Right(), Y: c.Y},
		}
	}
	return []core.Point{
		{X: rect.Right(), Y: c.Y},
		{X: rect.Right() + loop, Y: c.Y},
		{X: rect.Right() + loop, Y: rect.Top() - loop},
		{X: c.X, Y: rect.Top() - loop},
		{X: c.X, Y: rect.Top()},
	}
}
