package connections

import (
	"fmt"
	"sort"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/geometry"
)

// ParallelConnection is a routed connection considered for lane offsets.
type ParallelConnection struct {
	ID        string
	SourceKey string
	TargetKey string
	Points    []core.Point
}

// DefaultLaneSpacing separates parallel connections between the same pair
// of endpoints.
const DefaultLaneSpacing = 6.0

// OffsetParallel fans out direct connections that share the same
// source/target pair so they do not overlap: member i of an n-sized group
// is shifted by (i - (n-1)/2) * spacing along the perpendicular of the
// pair's axis. The perpendicular is taken from the pair's node centers
// when both are resolvable, falling back to the polyline's own endpoints.
// The returned map holds replacement polylines for offset members only.
func OffsetParallel(conns []ParallelConnection, centers map[string]core.Point, spacing float64) map[string][]core.Point {
	if spacing <= 0 {
		spacing = DefaultLaneSpacing
	}

	groups := make(map[string][]ParallelConnection)
	for _, c := range conns {
		key := fmt.Sprintf("%s->%s", c.SourceKey, c.TargetKey)
		groups[key] = append(groups[key], c)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make(map[string][]core.Point)
	for _, key := range keys {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ID < group[j].ID
		})

		for i, c := range group {
			a, b := pairAxis(c, centers)
			perp := geometry.UnitPerp(a, b)
			offset := (float64(i) - float64(len(group)-1)/2) * spacing
			result[c.ID] = geometry.OffsetPolyline(c.Points, perp, offset)
		}
	}
	return result
}

// pairAxis resolves the axis the lane perpendicular is derived from.
func pairAxis(c ParallelConnection, centers map[string]core.Point) (core.Point, core.Point) {
	a, okA := centers[c.SourceKey]
	b, okB := centers[c.TargetKey]
	if okA && okB {
		return a, b
	}
	if len(c.Points) >= 2 {
		return c.Points[0], c.Points[len(c.Points)-1]
	}
	return core.Point{}, core.Point{}
}
