package rasterizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshras/pkg/math"
)

func TestAddVertexSharedEdge(t *testing.T) {
	m := NewMeshObject("plane", 0)
	b := newBucket("grass")
	m.AddMaterial(b, 0)

	addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	addPoly(m, b, c(2, 0, 1, 0), c(1, 1, 0, 0), c(3, 1, 1, 0))

	array := m.FirstMaterial().BaseSlot().DisplayArray()
	assert.Equal(t, 4, array.VertexCount())
	assert.Equal(t, 6, array.IndexCount())
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, array.Indices)
	assert.Equal(t, 4, m.NumVertices(b.Material()))
	assert.Equal(t, 4, m.NumSharedOrigins())
}

func TestAddVertexSameCornerTwice(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	poly := addPoly(m, b, c(7, 1, 2, 3), c(7, 1, 2, 3), c(8, 0, 0, 0))

	array := poly.DisplayArray()
	assert.Equal(t, 2, array.VertexCount())
	assert.Equal(t, poly.VertexOffset(0), poly.VertexOffset(1))
	assert.Equal(t, []uint32{0, 0, 1}, array.Indices)
}

func TestAddVertexMaterialIsolation(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	b := newBucket("b")
	m.AddMaterial(a, 0)
	m.AddMaterial(b, 1)

	addPoly(m, a, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))

	arrA := m.MeshMaterialAt(0).BaseSlot().DisplayArray()
	arrB := m.MeshMaterialAt(1).BaseSlot().DisplayArray()
	assert.NotSame(t, arrA, arrB)
	assert.Equal(t, 3, arrA.VertexCount())
	assert.Equal(t, 3, arrB.VertexCount())
}

func TestAddVertexDifferentAttributes(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	red := c(0, 0, 0, 0)
	red.rgba = PackRGBA(math.Vec4{1, 0, 0, 1})
	addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	addPoly(m, b, red, c(1, 1, 0, 0), c(2, 0, 1, 0))

	array := m.FirstMaterial().BaseSlot().DisplayArray()
	assert.Equal(t, 4, array.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 1, 2}, array.Indices)
	assert.Equal(t, math.Vec3{}, m.VertexLocation(0))
}

func TestAddVertexQuad(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	poly := addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 1, 1, 0), c(3, 0, 1, 0))

	assert.Equal(t, 4, poly.VertexCount())
	array := poly.DisplayArray()
	assert.Equal(t, 4, array.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, array.Indices)
}

func TestAddVertexQuadCornersOutOfOrder(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	poly := m.AddPolygon(b, 4)
	var uvs [MaxUVUnits]math.Vec2
	add := func(corner int) {
		m.AddVertex(poly, corner, math.Vec3{X: float32(corner)}, uvs, math.Vec4{}, white, math.Vec3{}, false, corner)
	}
	add(0)
	add(1)

	requireContractPanic(t, "AddVertex", func() { add(3) })
	requireContractPanic(t, "AddVertex", func() { add(1) })

	array := poly.DisplayArray()
	assert.Equal(t, 2, array.VertexCount())
	assert.Equal(t, []uint32{0, 1}, array.Indices)

	// The polygon can still be completed in order.
	add(2)
	add(3)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, array.Indices)
}

func TestAddVertexInvisiblePolygon(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	poly := m.AddPolygon(b, 3)
	poly.SetVisible(false)
	var uvs [MaxUVUnits]math.Vec2
	for i := 0; i < 3; i++ {
		m.AddVertex(poly, i, math.Vec3{X: float32(i)}, uvs, math.Vec4{}, white, math.Vec3{}, false, i)
	}

	assert.Equal(t, 3, poly.DisplayArray().VertexCount())
	assert.Zero(t, poly.DisplayArray().IndexCount())
	assert.Equal(t, float32(2), poly.Vertex(2).Position.X)
}

func TestAddMaterialIdempotent(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)
	m.AddMaterial(b, 5)

	assert.Equal(t, 1, m.NumMaterials())
	assert.Equal(t, 1, b.NumSlots())
	assert.Equal(t, 0, m.MaterialIndex(b.Material()))
	assert.Same(t, m.FirstMaterial(), m.LastMaterial())
}

func TestMaterialLookup(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	b := newBucket("b")
	m.AddMaterial(a, 3)
	m.AddMaterial(b, 7)

	assert.Same(t, m.MeshMaterialAt(1), m.MeshMaterialFor(b.Material()))
	assert.Same(t, m.LastMaterial(), m.MeshMaterialFor(b.Material()))
	assert.Len(t, m.Materials(), 2)
	assert.Equal(t, 7, m.MaterialIndex(b.Material()))
	assert.Equal(t, -1, m.MaterialIndex(&Material{Name: "b"}))
	assert.Nil(t, m.MeshMaterialFor(&Material{Name: "a"}))
	assert.Nil(t, m.MeshMaterialAt(2))
	assert.Nil(t, m.MeshMaterialAt(-1))

	name, ok := m.MaterialName(0)
	assert.True(t, ok)
	assert.Equal(t, "a", name)
	tex, ok := m.TextureName(1)
	assert.True(t, ok)
	assert.Equal(t, "b.png", tex)
	_, ok = m.MaterialName(2)
	assert.False(t, ok)
	_, ok = m.TextureName(-1)
	assert.False(t, ok)
}

func TestEmptyMesh(t *testing.T) {
	m := NewMeshObject("empty", 0)

	assert.Nil(t, m.FirstMaterial())
	assert.Nil(t, m.LastMaterial())
	assert.Zero(t, m.NumPolygons())
	assert.False(t, m.HasColliderPolygon())
	assert.Equal(t, math.Box3{}, m.Aabb())
	assert.Nil(t, m.Vertex(0, 0))
}

func TestContractViolations(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	other := newBucket("other")
	m.AddMaterial(a, 0)
	addPoly(m, a, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))

	requireContractPanic(t, "AddPolygon", func() { m.AddPolygon(other, 3) })
	requireContractPanic(t, "AddPolygon", func() { m.AddPolygon(a, 5) })
	requireContractPanic(t, "Polygon", func() { m.Polygon(1) })
	requireContractPanic(t, "Polygon", func() { m.Polygon(-1) })
	requireContractPanic(t, "DisplayArray.Vertex", func() { m.Vertex(0, 3) })
	requireContractPanic(t, "VertexLocation", func() { m.VertexLocation(42) })
	requireContractPanic(t, "SetVertexColor", func() { m.SetVertexColor(other.Material(), math.Vec4{}) })

	poly := m.Polygon(0)
	var uvs [MaxUVUnits]math.Vec2
	requireContractPanic(t, "AddVertex", func() {
		m.AddVertex(poly, 3, math.Vec3{}, uvs, math.Vec4{}, white, math.Vec3{}, false, 0)
	})
}

func TestContractErrorMessage(t *testing.T) {
	err := &ContractError{Op: "Polygon", Msg: "index 4 out of range [0,2)"}
	assert.Equal(t, "rasterizer: Polygon: index 4 out of range [0,2)", err.Error())
}

func TestAabb(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	b := newBucket("b")
	m.AddMaterial(a, 0)
	m.AddMaterial(b, 1)

	addPoly(m, a, c(0, -1, 2, 3), c(1, 4, -5, 0), c(2, 0, 0, 0))
	addPoly(m, b, c(3, 2, 2, -7), c(4, 0, 9, 1), c(5, 0, 0, 0))

	box := m.Aabb()
	assert.Equal(t, math.Vec3{X: -1, Y: -5, Z: -7}, box.Min)
	assert.Equal(t, math.Vec3{X: 4, Y: 9, Z: 3}, box.Max)

	// Geometry added after a query invalidates the cached box.
	addPoly(m, b, c(6, 20, 0, 0), c(4, 0, 9, 1), c(5, 0, 0, 0))
	assert.Equal(t, float32(20), m.Aabb().Max.X)
}

func TestAabbSingleVertex(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	addPoly(m, b, c(0, 3, -4, 5), c(0, 3, -4, 5), c(0, 3, -4, 5))

	box := m.Aabb()
	assert.Equal(t, math.Vec3{X: 3, Y: -4, Z: 5}, box.Min)
	assert.Equal(t, box.Min, box.Max)
}

func TestHasColliderPolygon(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)

	p0 := addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	p1 := addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	p0.SetCollider(false)
	p1.SetCollider(false)
	assert.False(t, m.HasColliderPolygon())

	p1.SetCollider(true)
	assert.True(t, m.HasColliderPolygon())
}

func TestSetVertexColor(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	b := newBucket("b")
	m.AddMaterial(a, 0)
	m.AddMaterial(b, 1)
	addPoly(m, a, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))

	m.SetVertexColor(a.Material(), math.Vec4{1, 0, 0, 1})

	red := PackRGBA(math.Vec4{1, 0, 0, 1})
	for i := 0; i < 3; i++ {
		assert.Equal(t, red, m.Vertex(0, i).RGBA)
		assert.Equal(t, white, m.Vertex(1, i).RGBA)
	}
}

func TestShapeKeyWeightCache(t *testing.T) {
	m := NewMeshObject("m", 3)
	assert.Equal(t, 3, m.NumShapeKeys())
	assert.Equal(t, []int{-1, -1, -1}, m.ShapeKeyWeightCache())

	assert.Zero(t, NewMeshObject("m", 0).NumShapeKeys())
}

func TestNameAndModified(t *testing.T) {
	m := NewMeshObject("m", 0)
	m.SetName("renamed")
	assert.Equal(t, "renamed", m.Name())

	m.SetMeshModified(false)
	assert.False(t, m.MeshModified())

	b := newBucket("a")
	m.AddMaterial(b, 0)
	addPoly(m, b, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	assert.True(t, m.MeshModified())
}

func TestEndConversionKeepsSharedVertices(t *testing.T) {
	m := NewMeshObject("m", 0)
	b := newBucket("a")
	m.AddMaterial(b, 0)
	addPoly(m, b, c(0, 1, 2, 3), c(1, 1, 0, 0), c(2, 0, 1, 0))

	m.EndConversion()

	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, m.VertexLocation(0))
}

func TestRelease(t *testing.T) {
	m := NewMeshObject("m", 0)
	a := newBucket("a")
	b := newBucket("b")
	m.AddMaterial(a, 0)
	m.AddMaterial(b, 1)
	addPoly(m, a, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	m.AddMeshUser(NewUserID(), nil, nil)

	require.Equal(t, 2, a.NumSlots())
	m.Release()

	assert.Zero(t, a.NumSlots())
	assert.Zero(t, b.NumSlots())
	assert.Zero(t, m.NumPolygons())
	assert.Zero(t, m.NumMaterials())
	assert.Zero(t, m.NumSharedOrigins())
}
