// Package deformer provides the deformers a mesh user can attach to its
// slots: shape keys and skeletal skinning. A user without deformation passes
// a nil rasterizer.Deformer.
package deformer

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
)

// Kind names a deformer variant.
type Kind int

const (
	KindNone Kind = iota
	KindShapeKey
	KindSkeletal
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindShapeKey:
		return "shape_key"
	case KindSkeletal:
		return "skeletal"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf reports the variant of d. A nil deformer is KindNone.
func KindOf(d rasterizer.Deformer) Kind {
	switch d.(type) {
	case nil:
		return KindNone
	case *ShapeKeyDeformer:
		return KindShapeKey
	case *SkeletalDeformer:
		return KindSkeletal
	default:
		return KindCustom
	}
}

// base holds the per-instance state shared by every variant: the bounding
// box of the deformed output and the arrays written since the last replica.
type base struct {
	bbox   *rasterizer.BoundingBox
	arrays []*rasterizer.DisplayArray
	fresh  bool // next Apply starts a new bounding box
}

func newBase() base {
	return base{bbox: rasterizer.NewBoundingBox(), fresh: true}
}

// BoundingBox returns the box enclosing every array written since the last
// change.
func (b *base) BoundingBox() *rasterizer.BoundingBox {
	return b.bbox
}

// Arrays returns the display arrays written by this instance.
func (b *base) Arrays() []*rasterizer.DisplayArray {
	return b.arrays
}

// ProcessReplica drops the arrays of the source instance and gives the
// replica its own bounding box.
func (b *base) ProcessReplica() {
	b.arrays = nil
	b.bbox = b.bbox.Replica()
	b.fresh = true
}

// beginFrame makes the next written array reset the bounding box.
func (b *base) beginFrame() {
	b.fresh = true
}

// record tracks array and grows the bounding box to enclose it.
func (b *base) record(array *rasterizer.DisplayArray) {
	found := false
	for _, a := range b.arrays {
		if a == array {
			found = true
			break
		}
	}
	if !found {
		b.arrays = append(b.arrays, array)
	}

	box, ok := array.Bounds()
	if !ok {
		return
	}
	if b.fresh {
		b.bbox.SetAabb(box)
		b.fresh = false
		return
	}
	b.bbox.ExtendAabb(box)
}

// replicate deep-copies the exported fields of src into dst.
func replicate(dst, src any) {
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic(errors.Wrap(err, "deformer: replicate"))
	}
}

// basePositions returns the undeformed geometry for mm.
func basePositions(mm *rasterizer.MeshMaterial) []rasterizer.Vertex {
	return mm.BaseSlot().DisplayArray().Vertices
}
