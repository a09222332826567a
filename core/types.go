// Package core contains the fundamental types used throughout the routing engine.
//
// The coordinate system matches the diagram canvas: X grows rightward and
// Y grows downward, so North points toward smaller Y. Direction labels are
// therefore inverted relative to Cartesian convention; this is intentional
// and must not be "corrected".
package core

// Point represents a 2D coordinate on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Direction represents a cardinal direction on the canvas (Y-down).
type Direction int

const (
	DirNone Direction = iota
	North
	East
	South
	West
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Axis returns the axis a move in this direction travels along.
func (d Direction) Axis() Axis {
	switch d {
	case East, West:
		return Horizontal
	case North, South:
		return Vertical
	default:
		return AxisNone
	}
}

// Delta returns the unit step for this direction (Y grows downward).
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Axis represents a movement axis.
type Axis int

const (
	AxisNone Axis = iota
	Horizontal
	Vertical
)

// String returns the string representation of an Axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "None"
	}
}

// Rect represents an axis-aligned rectangle: top-left corner plus size.
// Invariant: W >= 0 and H >= 0.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains checks if a point is inside the rectangle (borders included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inflate returns the rectangle grown by m on every side.
// Negative m shrinks it; width and height never go below zero.
func (r Rect) Inflate(m float64) Rect {
	out := Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Intersects checks if two rectangles overlap (touching edges count).
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Route represents an orthogonal polyline through the canvas.
// Every consecutive pair of points differs in exactly one axis.
type Route struct {
	Points []Point
}

// Length returns the number of points in the route.
func (r Route) Length() int {
	return len(r.Points)
}

// IsEmpty returns true if the route has no points.
func (r Route) IsEmpty() bool {
	return len(r.Points) == 0
}

// Bends returns the number of interior points where the direction changes.
func (r Route) Bends() int {
	bends := 0
	for i := 1; i < len(r.Points)-1; i++ {
		a, b, c := r.Points[i-1], r.Points[i], r.Points[i+1]
		horizIn := a.Y == b.Y && a.X != b.X
		horizOut := b.Y == c.Y && b.X != c.X
		if horizIn != horizOut {
			bends++
		}
	}
	return bends
}

// PathLength returns the total segment length of the route.
func (r Route) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(r.Points); i++ {
		dx := r.Points[i].X - r.Points[i-1].X
		dy := r.Points[i].Y - r.Points[i-1].Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		total += dx + dy
	}
	return total
}

// RoutingHints describes the preferred way a connection leaves or enters
// its endpoint shapes. Hints are advisory unless passed to the pathfinder
// as hard direction constraints.
type RoutingHints struct {
	StartAxis  Axis
	EndAxis    Axis
	StartDir   Direction
	EndDir     Direction
	StubLength float64
	GridSize   float64
}
