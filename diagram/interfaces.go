package diagram

import (
	"github.com/erland/pwa-modeller-sub011/core"
)

// Notation adapts routing inputs to a modeling notation. ArchiMate, UML
// and BPMN views differ in which elements block a route and whether a
// route may leave its container; implementations carry that knowledge so
// the router never branches on notation kind inline.
type Notation interface {
	// ObstaclesFor returns the rectangles a connection's route must avoid.
	ObstaclesFor(v *View, conn Connection) []core.Rect

	// RegionFor optionally confines the connection's search region, for
	// notations whose containers clamp their children's routes. Nil means
	// unconstrained.
	RegionFor(v *View, conn Connection) *core.Rect
}

// StandardNotation is the default capability: every node in the view
// except the connection's own endpoints is an obstacle, and routes are
// unconstrained.
type StandardNotation struct{}

// ObstaclesFor returns the footprints of all nodes other than the
// connection's endpoints.
func (StandardNotation) ObstaclesFor(v *View, conn Connection) []core.Rect {
	obstacles := make([]core.Rect, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		if n.ID == conn.From || n.ID == conn.To {
			continue
		}
		obstacles = append(obstacles, n.Rect())
	}
	return obstacles
}

// RegionFor reports no container constraint.
func (StandardNotation) RegionFor(*View, Connection) *core.Rect {
	return nil
}

// ContainerNotation clamps routes inside a container rectangle per node,
// the way BPMN pools and lanes confine their flows. Connections whose
// endpoints share a container are routed inside it; everything else is
// unconstrained.
type ContainerNotation struct {
	// ContainerOf maps node IDs to their container rectangle.
	ContainerOf map[string]core.Rect
}

// ObstaclesFor matches StandardNotation's obstacle derivation.
func (c ContainerNotation) ObstaclesFor(v *View, conn Connection) []core.Rect {
	return StandardNotation{}.ObstaclesFor(v, conn)
}

// RegionFor returns the shared container of both endpoints, if any.
func (c ContainerNotation) RegionFor(v *View, conn Connection) *core.Rect {
	from, okFrom := c.ContainerOf[conn.From]
	to, okTo := c.ContainerOf[conn.To]
	if !okFrom || !okTo || from != to {
		return nil
	}
	region := from
	return &region
}
