package rasterizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshras/pkg/math"
)

var white = PackRGBA(math.Vec4{1, 1, 1, 1})

// corner is the authoring data of one polygon corner.
type corner struct {
	orig int
	pos  math.Vec3
	rgba uint32
}

func c(orig int, x, y, z float32) corner {
	return corner{orig: orig, pos: math.Vec3{X: x, Y: y, Z: z}, rgba: white}
}

func newBucket(name string) *MaterialBucket {
	return NewMaterialBucket(&Material{Name: name, TextureName: name + ".png"})
}

// addPoly adds a polygon under bucket and fills every corner.
func addPoly(m *MeshObject, bucket *MaterialBucket, corners ...corner) *Polygon {
	poly := m.AddPolygon(bucket, len(corners))
	for i, cr := range corners {
		var uvs [MaxUVUnits]math.Vec2
		m.AddVertex(poly, i, cr.pos, uvs, math.Vec4{}, cr.rgba, math.Vec3{Z: 1}, false, cr.orig)
	}
	return poly
}

// requireContractPanic runs fn and requires a *ContractError panic for op.
func requireContractPanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var ce *ContractError
		require.True(t, errors.As(err, &ce), "panic %v is not a ContractError", err)
		require.Equal(t, op, ce.Op)
	}()
	fn()
}

// fakeDeformer records calls and offsets every private vertex along X.
type fakeDeformer struct {
	dynamic bool
	changed bool
	updates int
	applied []*MeshMaterial
	bbox    *BoundingBox
}

func (d *fakeDeformer) Update() bool {
	d.updates++
	return d.changed
}

func (d *fakeDeformer) Apply(mm *MeshMaterial, array *DisplayArray) {
	d.applied = append(d.applied, mm)
	for i := range array.Vertices {
		array.Vertices[i].Position.X += 10
	}
}

func (d *fakeDeformer) BoundingBox() *BoundingBox {
	if d.bbox == nil {
		d.bbox = NewBoundingBox()
	}
	return d.bbox
}

func (d *fakeDeformer) IsDynamic() bool { return d.dynamic }

func (d *fakeDeformer) Replica() Deformer {
	cp := *d
	return &cp
}

func (d *fakeDeformer) ProcessReplica() {
	d.applied = nil
	d.bbox = d.BoundingBox().Replica()
}

// sliceDeformer is a non-comparable value deformer.
type sliceDeformer struct {
	updates *int
	touched []int
}

func (d sliceDeformer) Update() bool {
	*d.updates++
	return true
}

func (d sliceDeformer) Apply(mm *MeshMaterial, array *DisplayArray) {}

func (d sliceDeformer) BoundingBox() *BoundingBox { return NewBoundingBox() }

func (d sliceDeformer) IsDynamic() bool { return true }

func (d sliceDeformer) Replica() Deformer { return d }

func (d sliceDeformer) ProcessReplica() {}
