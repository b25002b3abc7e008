package rasterizer

import "github.com/Faultbox/meshras/pkg/math"

// BoundingBox is an axis-aligned box with a modified flag, owned by deformers
// whose output moves vertices outside the mesh's static bounds.
type BoundingBox struct {
	box      math.Box3
	valid    bool
	modified bool
}

// NewBoundingBox returns an empty bounding box.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{}
}

// SetAabb replaces the box.
func (bb *BoundingBox) SetAabb(box math.Box3) {
	bb.box = box
	bb.valid = true
	bb.modified = true
}

// ExtendAabb grows the box to include box. An empty bounding box takes box as is.
func (bb *BoundingBox) ExtendAabb(box math.Box3) {
	if !bb.valid {
		bb.SetAabb(box)
		return
	}
	bb.box.ExpandByBox(box)
	bb.modified = true
}

// Aabb returns the box and false while nothing has been set.
func (bb *BoundingBox) Aabb() (math.Box3, bool) {
	return bb.box, bb.valid
}

// Modified reports whether the box changed since ClearModified.
func (bb *BoundingBox) Modified() bool { return bb.modified }

// ClearModified resets the modified flag.
func (bb *BoundingBox) ClearModified() { bb.modified = false }

// Replica returns an independent copy.
func (bb *BoundingBox) Replica() *BoundingBox {
	cp := *bb
	return &cp
}
