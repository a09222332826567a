// Package diagram holds the view-facing model the routing engine consumes:
// nodes with canvas rectangles, the connections between them, and the
// notation capability interface collaborators implement.
package diagram

import (
	"github.com/erland/pwa-modeller-sub011/core"
)

// NodeKind distinguishes shape footprints for default sizing.
type NodeKind string

const (
	// NodeKindShape is a regular notation element box.
	NodeKindShape NodeKind = ""
	// NodeKindJunction is a small connector glyph (ArchiMate junction,
	// BPMN gateway dot).
	NodeKindJunction NodeKind = "junction"
)

// Default footprint sizes applied when a node omits its own.
const (
	DefaultShapeWidth     = 120.0
	DefaultShapeHeight    = 60.0
	DefaultJunctionWidth  = 24.0
	DefaultJunctionHeight = 24.0
)

// Node represents one placed element in a view. Width and height may be
// omitted; Rect applies the kind's default footprint.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind,omitempty"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	W    float64  `json:"w,omitempty"`
	H    float64  `json:"h,omitempty"`
}

// Rect returns the node's canvas rectangle with default sizes applied.
func (n Node) Rect() core.Rect {
	w, h := n.W, n.H
	if w <= 0 || h <= 0 {
		dw, dh := DefaultShapeWidth, DefaultShapeHeight
		if n.Kind == NodeKindJunction {
			dw, dh = DefaultJunctionWidth, DefaultJunctionHeight
		}
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}
	return core.Rect{X: n.X, Y: n.Y, W: w, H: h}
}

// Connection represents a directed edge between two nodes. Anchors, when
// present, pin where the connection meets each node's border; routing
// hints are inferred from them.
type Connection struct {
	ID           string      `json:"id"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	SourceAnchor *core.Point `json:"sourceAnchor,omitempty"`
	TargetAnchor *core.Point `json:"targetAnchor,omitempty"`
}

// View is one diagram canvas: its nodes, connections and grid settings.
type View struct {
	ID          string       `json:"id"`
	GridSize    float64      `json:"gridSize,omitempty"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Grid returns the view's effective grid size.
func (v *View) Grid() float64 {
	if v.GridSize > 0 {
		return v.GridSize
	}
	return 8
}

// NodeByID finds a node in the view. The second return value reports
// whether it exists.
func (v *View) NodeByID(id string) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
