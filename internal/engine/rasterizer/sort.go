package rasterizer

import (
	"fmt"
	"sort"

	"github.com/Faultbox/meshras/pkg/math"
)

// SortOrder selects the direction of polygon depth sorting.
type SortOrder int

const (
	// SortBackToFront draws the farthest triangle first. Used for alpha blending.
	SortBackToFront SortOrder = iota
	// SortFrontToBack draws the nearest triangle first.
	SortFrontToBack
)

// String returns the config name of the order.
func (o SortOrder) String() string {
	switch o {
	case SortBackToFront:
		return "back_to_front"
	case SortFrontToBack:
		return "front_to_back"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// ParseSortOrder parses the names produced by SortOrder.String.
// The empty string means back to front.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "", "back_to_front":
		return SortBackToFront, nil
	case "front_to_back":
		return SortFrontToBack, nil
	default:
		return 0, fmt.Errorf("unknown sort order %q", s)
	}
}

// polygonSlot is one triangle of an index buffer with its depth key.
type polygonSlot struct {
	z       float32
	indices [3]uint32
}

// SortPolygons reorders the triangles of ms back to front for a camera
// whose world-to-camera transform is transform.
func (m *MeshObject) SortPolygons(ms *MeshSlot, transform math.Mat4) {
	m.SortPolygonsOrdered(ms, transform, SortBackToFront)
}

// SortPolygonsOrdered reorders the triangles of the slot's index buffer by
// depth along the third basis row of transform. The key of a triangle is the
// dot product of that axis with the sum of its corner positions; translation
// shifts every key equally and is ignored. Only the index buffer changes.
// Buffers with fewer than two triangles are left untouched, as are trailing
// indices that do not form a full triangle.
//
// The sort is not stable and assumes every polygon of the slot is a triangle
// of one material; intersecting geometry cannot be ordered correctly.
func (m *MeshObject) SortPolygonsOrdered(ms *MeshSlot, transform math.Mat4, order SortOrder) {
	array := ms.array
	total := array.TriangleCount()
	if total <= 1 {
		return
	}

	pnorm := transform.BasisRow(2)

	slots := make([]polygonSlot, total)
	for t := range slots {
		tri := array.Triangle(t)
		sum := array.Vertices[tri[0]].Position.
			Add(array.Vertices[tri[1]].Position).
			Add(array.Vertices[tri[2]].Position)
		slots[t] = polygonSlot{z: pnorm.Dot(sum), indices: tri}
	}

	if order == SortFrontToBack {
		sort.Slice(slots, func(i, j int) bool { return slots[i].z > slots[j].z })
	} else {
		sort.Slice(slots, func(i, j int) bool { return slots[i].z < slots[j].z })
	}

	for t, s := range slots {
		copy(array.Indices[t*3:t*3+3], s.indices[:])
	}
}

// NeedsSorting reports whether ms draws a material requiring per-frame
// depth sorting.
func NeedsSorting(ms *MeshSlot) bool {
	return ms.bucket.Material().IsZSort()
}
