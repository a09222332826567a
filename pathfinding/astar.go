package pathfinding

import (
	"container/heap"
	"math"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/geometry"
)

// searchNode represents one state in the A* search: a grid cell together
// with the direction it was entered moving. Keeping the direction in the
// state makes bend costs exact and lets direction constraints be enforced
// without losing optimality.
type searchNode struct {
	Cell   cell
	Dir    core.Direction
	GCost  float64
	HCost  float64
	FCost  float64
	Parent *searchNode
	Index  int // index in the heap
}

type stateKey struct {
	X, Y int
	Dir  core.Direction
}

// nodeQueue is a priority queue of search nodes.
//
// The ordering below is the canonical tie-break for the whole engine:
// (FCost, HCost, Y, X, Dir), lexicographic. Identical inputs must always
// produce identical routes, so this order is fixed.
type nodeQueue []*searchNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].FCost != nq[j].FCost {
		return nq[i].FCost < nq[j].FCost
	}
	if nq[i].HCost != nq[j].HCost {
		return nq[i].HCost < nq[j].HCost
	}
	if nq[i].Cell.Y != nq[j].Cell.Y {
		return nq[i].Cell.Y < nq[j].Cell.Y
	}
	if nq[i].Cell.X != nq[j].Cell.X {
		return nq[i].Cell.X < nq[j].Cell.X
	}
	return nq[i].Dir < nq[j].Dir
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].Index = i
	nq[j].Index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	node := x.(*searchNode)
	node.Index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*nq = old[:n-1]
	return node
}

// terminal describes one end of a route: the anchor on the rect border,
// the stub corner aligned with the first grid cell, and the outward side.
type terminal struct {
	anchor core.Point
	elbow  core.Point
	cell   cell
	side   core.Direction
}

// computeTerminal finds where a route leaves (or enters) a rectangle: the
// perimeter point facing the opposite rectangle, pushed outward by the
// stub length and snapped to the search grid. A forced side overrides the
// facing-point choice.
func computeTerminal(rect core.Rect, toward core.Point, forcedSide core.Direction, opts Options) terminal {
	gs := opts.GridSize
	side := forcedSide
	var anchor core.Point
	if side == core.DirNone {
		anchor = geometry.RectEdgeAnchor(rect, toward)
		side = sideOfAnchor(rect, anchor)
	}

	var t terminal
	t.side = side
	switch side {
	case core.East, core.West:
		cross := geometry.Clamp(toward.Y, rect.Top(), rect.Bottom())
		if forcedSide == core.DirNone {
			cross = geometry.Clamp(anchor.Y, rect.Top(), rect.Bottom())
		}
		var edgeX float64
		var outX int
		if side == core.East {
			edgeX = rect.Right()
			outX = int(math.Ceil((edgeX + opts.StubLength) / gs))
		} else {
			edgeX = rect.Left()
			outX = int(math.Floor((edgeX - opts.StubLength) / gs))
		}
		t.anchor = core.Point{X: edgeX, Y: cross}
		t.elbow = core.Point{X: float64(outX) * gs, Y: cross}
		t.cell = cell{X: outX, Y: int(math.Round(cross / gs))}
	default:
		cross := geometry.Clamp(toward.X, rect.Left(), rect.Right())
		if forcedSide == core.DirNone {
			cross = geometry.Clamp(anchor.X, rect.Left(), rect.Right())
		}
		var edgeY float64
		var outY int
		if side == core.South {
			edgeY = rect.Bottom()
			outY = int(math.Ceil((edgeY + opts.StubLength) / gs))
		} else {
			edgeY = rect.Top()
			outY = int(math.Floor((edgeY - opts.StubLength) / gs))
		}
		t.anchor = core.Point{X: cross, Y: edgeY}
		t.elbow = core.Point{X: cross, Y: float64(outY) * gs}
		t.cell = cell{X: int(math.Round(cross / gs)), Y: outY}
	}
	return t
}

// searchRegion returns the area the search may explore: the explicit
// bounds when given, otherwise the union box of both rectangles and all
// obstacles, expanded by a margin that comfortably covers stubs and
// clearance.
func searchRegion(source, target core.Rect, obstacles []core.Rect, opts Options) core.Rect {
	if opts.Bounds != nil {
		return *opts.Bounds
	}
	all := make([]core.Rect, 0, len(obstacles)+2)
	all = append(all, source, target)
	all = append(all, obstacles...)
	margin := 2*opts.GridSize + opts.StubLength + opts.Clearance
	return geometry.BoundsForRects(all).Inflate(margin)
}

// FindRoute computes one orthogonal route from source to target. Hard
// obstacles (inflated by Clearance) are impassable; soft obstacles add
// SoftPenalty per crossed cell. Returns nil when no route exists under
// the given constraints; it never panics.
func FindRoute(source, target core.Rect, obstacles []core.Rect, soft []core.Rect, opts Options) *core.Route {
	opts = opts.withDefaults()
	gs := opts.GridSize

	start := computeTerminal(source, target.Center(), opts.StartDir, opts)
	endSide := core.DirNone
	if opts.EndDir != core.DirNone {
		endSide = opts.EndDir.Opposite()
	}
	end := computeTerminal(target, source.Center(), endSide, opts)

	region := searchRegion(source, target, obstacles, opts)
	blocked := CombineCheckers(
		RectObstacleChecker(obstacles, opts.Clearance),
		BoundsChecker(region),
	)
	if blocked(start.cell.point(gs)) || blocked(end.cell.point(gs)) {
		return nil
	}

	if start.cell == end.cell {
		return assembleRoute(start, end, nil, gs)
	}

	// The end cell is entered without an elbow when the final approach is
	// already grid-aligned; only then can the entry direction be pinned.
	endAligned := end.elbow == end.cell.point(gs)

	openSet := &nodeQueue{}
	heap.Init(openSet)
	closedSet := make(map[stateKey]bool)
	nodeMap := make(map[stateKey]*searchNode)

	startNode := &searchNode{
		Cell:  start.cell,
		Dir:   start.side, // seeded as if we arrived moving outward
		GCost: 0,
		HCost: heuristic(start.cell, end.cell, opts),
	}
	startNode.FCost = startNode.HCost
	heap.Push(openSet, startNode)
	nodeMap[stateKey{start.cell.X, start.cell.Y, startNode.Dir}] = startNode

	explored := 0
	for openSet.Len() > 0 {
		explored++
		if explored > opts.MaxCells {
			return nil
		}

		current := heap.Pop(openSet).(*searchNode)

		if current.Cell == end.cell && acceptGoal(current, end, endAligned, opts) {
			return assembleRoute(start, end, reconstructCells(current), gs)
		}

		closedSet[stateKey{current.Cell.X, current.Cell.Y, current.Dir}] = true

		for _, d := range searchDirections {
			// Never fold back across the exit stub.
			if current.Parent == nil && d == start.side.Opposite() {
				continue
			}
			next := current.Cell.step(d)
			key := stateKey{next.X, next.Y, d}
			if closedSet[key] {
				continue
			}
			p := next.point(gs)
			if blocked(p) {
				continue
			}

			g := current.GCost + 1 + softCost(p, soft, opts.SoftPenalty)
			if d != current.Dir {
				g += opts.BendPenalty
			}

			existing, seen := nodeMap[key]
			if !seen {
				node := &searchNode{
					Cell:   next,
					Dir:    d,
					GCost:  g,
					HCost:  heuristic(next, end.cell, opts),
					Parent: current,
				}
				node.FCost = node.GCost + node.HCost
				heap.Push(openSet, node)
				nodeMap[key] = node
			} else if g < existing.GCost {
				existing.GCost = g
				existing.FCost = g + existing.HCost
				existing.Parent = current
				heap.Fix(openSet, existing.Index)
			}
		}
	}

	return nil
}

// acceptGoal decides whether popping the end cell terminates the search.
// Entering while moving outward would make the final stub double back, so
// that entry is rejected; a hard EndDir is enforced exactly when the
// approach is grid-aligned (otherwise the stub segment already guarantees
// the emitted entry direction).
func acceptGoal(n *searchNode, end terminal, endAligned bool, opts Options) bool {
	if n.Parent == nil {
		return true
	}
	if n.Dir == end.side {
		return false
	}
	if opts.EndDir != core.DirNone && endAligned && n.Dir != opts.EndDir {
		return false
	}
	return true
}

// heuristic estimates the remaining cost in step units: Manhattan
// distance plus one bend when both axes still differ (a turn is then
// unavoidable, so admissibility is preserved).
func heuristic(c, goal cell, opts Options) float64 {
	h := float64(manhattan(c, goal))
	if c.X != goal.X && c.Y != goal.Y {
		h += opts.BendPenalty
	}
	return h
}

// reconstructCells walks parents back to the start and returns the cell
// sequence in travel order.
func reconstructCells(goal *searchNode) []cell {
	var cells []cell
	for n := goal; n != nil; n = n.Parent {
		cells = append(cells, n.Cell)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// assembleRoute stitches anchor, stub corners and grid cells into the
// final polyline and strips redundant points. Every junction shares a
// coordinate with its neighbor, so the result is orthogonal by
// construction.
func assembleRoute(start, end terminal, cells []cell, gs float64) *core.Route {
	points := make([]core.Point, 0, len(cells)+4)
	points = append(points, start.anchor, start.elbow)
	if len(cells) == 0 {
		points = append(points, start.cell.point(gs))
	}
	for _, c := range cells {
		points = append(points, c.point(gs))
	}
	points = append(points, end.elbow, end.anchor)
	return &core.Route{Points: geometry.RemoveRedundant(points)}
}
