package rasterizer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoMaterialMesh builds a mesh with one triangle in each of two buckets.
func twoMaterialMesh() (*MeshObject, *MaterialBucket, *MaterialBucket) {
	m := NewMeshObject("crate", 0)
	a := newBucket("wood")
	b := NewMaterialBucket(&Material{Name: "glass", Blend: BlendAlpha, ZSort: true})
	m.AddMaterial(a, 0)
	m.AddMaterial(b, 1)
	addPoly(m, a, c(0, 0, 0, 0), c(1, 1, 0, 0), c(2, 0, 1, 0))
	addPoly(m, b, c(3, 0, 0, 1), c(4, 1, 0, 1), c(5, 0, 1, 1))
	return m, a, b
}

func TestAddMeshUserSharesBaseArray(t *testing.T) {
	m, a, b := twoMaterialMesh()
	user := NewUserID()

	slots := m.AddMeshUser(user, nil, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, 2, a.NumSlots())
	assert.Equal(t, 2, b.NumSlots())
	for i, ms := range slots {
		mm := m.MeshMaterialAt(i)
		assert.Same(t, mm, ms.MeshMaterial())
		assert.Same(t, mm.BaseSlot().DisplayArray(), ms.DisplayArray())
		assert.Same(t, ms, mm.UserSlot(user))
		assert.Equal(t, user, ms.User())
		assert.False(t, ms.IsBase())
		assert.False(t, ms.HasPrivateArray())
		assert.Same(t, m, ms.Mesh())
		assert.Equal(t, 1, mm.NumUsers())
	}
	assert.True(t, m.FirstMaterial().BaseSlot().IsBase())
}

func TestAddMeshUserAppends(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	existing := []*MeshSlot{nil}

	slots := m.AddMeshUser(NewUserID(), existing, nil)

	assert.Len(t, slots, 3)
	assert.Nil(t, slots[0])
}

func TestAddMeshUserDynamicDeformer(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	d := &fakeDeformer{dynamic: true}

	slots := m.AddMeshUser(NewUserID(), nil, d)

	for _, ms := range slots {
		base := ms.MeshMaterial().BaseSlot().DisplayArray()
		assert.True(t, ms.HasPrivateArray())
		assert.NotSame(t, base, ms.DisplayArray())
		assert.Equal(t, base.Vertices, ms.DisplayArray().Vertices)
		assert.Equal(t, base.Indices, ms.DisplayArray().Indices)
		assert.Same(t, d, ms.Deformer())
	}
}

func TestAddMeshUserStaticDeformerShares(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	slots := m.AddMeshUser(NewUserID(), nil, &fakeDeformer{})
	for _, ms := range slots {
		assert.False(t, ms.HasPrivateArray())
	}
}

func TestAddMeshUserTwice(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	user := NewUserID()
	m.AddMeshUser(user, nil, nil)

	requireContractPanic(t, "AddMeshUser", func() { m.AddMeshUser(user, nil, nil) })
	requireContractPanic(t, "AddMeshUser", func() { m.AddMeshUser(uuid.Nil, nil, nil) })
}

func TestRemoveFromBucketsIsolation(t *testing.T) {
	m, a, b := twoMaterialMesh()
	keep := NewUserID()
	keepSlots := m.AddMeshUser(keep, nil, nil)

	baseA := m.MeshMaterialAt(0).BaseSlot()
	vertices := append([]Vertex(nil), baseA.DisplayArray().Vertices...)
	indices := append([]uint32(nil), baseA.DisplayArray().Indices...)

	gone := NewUserID()
	m.AddMeshUser(gone, nil, &fakeDeformer{dynamic: true})
	m.RemoveFromBuckets(gone)

	assert.Equal(t, 2, a.NumSlots())
	assert.Equal(t, 2, b.NumSlots())
	assert.Nil(t, m.MeshMaterialAt(0).UserSlot(gone))
	assert.Empty(t, m.UserSlots(gone))
	assert.Equal(t, keepSlots, m.UserSlots(keep))
	assert.Same(t, baseA, a.Slot(baseA.ID()))
	assert.Equal(t, vertices, baseA.DisplayArray().Vertices)
	assert.Equal(t, indices, baseA.DisplayArray().Indices)
}

func TestRemoveFromBucketsUnknownUser(t *testing.T) {
	m, a, b := twoMaterialMesh()
	m.RemoveFromBuckets(NewUserID())
	assert.Equal(t, 1, a.NumSlots())
	assert.Equal(t, 1, b.NumSlots())
}

func TestRemoveFromBucketsPartial(t *testing.T) {
	m, a, b := twoMaterialMesh()
	user := NewUserID()
	slots := m.AddMeshUser(user, nil, nil)

	// The user's slot in the first bucket is already gone.
	a.RemoveMesh(slots[0])
	delete(m.MeshMaterialAt(0).slots, user)

	m.RemoveFromBuckets(user)
	assert.Equal(t, 1, a.NumSlots())
	assert.Equal(t, 1, b.NumSlots())
}

func TestSlotIDReuse(t *testing.T) {
	m, a, _ := twoMaterialMesh()
	first := NewUserID()
	id := m.AddMeshUser(first, nil, nil)[0].ID()
	m.RemoveFromBuckets(first)

	again := m.AddMeshUser(NewUserID(), nil, nil)[0]
	assert.Equal(t, id, again.ID())
	assert.Same(t, again, a.Slot(id))
	assert.Nil(t, a.Slot(99))
}

func TestSlotsNeedingSort(t *testing.T) {
	m, _, b := twoMaterialMesh()
	user := NewUserID()
	m.AddMeshUser(user, nil, nil)

	sorted := m.SlotsNeedingSort(user)
	require.Len(t, sorted, 1)
	assert.Same(t, b, sorted[0].Bucket())
}

func TestUpdateDeformedSlots(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	d := &fakeDeformer{dynamic: true, changed: true}
	slots := m.AddMeshUser(NewUserID(), nil, d)
	plain := m.AddMeshUser(NewUserID(), nil, nil)

	applied := UpdateDeformedSlots(append(slots, plain...))

	assert.Equal(t, 2, applied)
	assert.Equal(t, 1, d.updates)
	assert.Equal(t, []*MeshMaterial{m.MeshMaterialAt(0), m.MeshMaterialAt(1)}, d.applied)
	assert.Equal(t, float32(10), slots[0].DisplayArray().Vertices[0].Position.X)
	assert.Equal(t, float32(0), m.Vertex(0, 0).Position.X)
}

func TestUpdateDeformedSlotsUnchanged(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	d := &fakeDeformer{dynamic: true}
	slots := m.AddMeshUser(NewUserID(), nil, d)

	assert.Zero(t, UpdateDeformedSlots(slots))
	assert.Equal(t, 1, d.updates)
	assert.Empty(t, d.applied)
}

func TestUpdateDeformedSlotsValueDeformer(t *testing.T) {
	m, _, _ := twoMaterialMesh()
	updates := 0
	d := sliceDeformer{updates: &updates, touched: []int{1}}
	slots := m.AddMeshUser(NewUserID(), nil, d)

	var applied int
	require.NotPanics(t, func() { applied = UpdateDeformedSlots(slots) })
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, updates)
}

func TestBucketCopyMeshOtherBucket(t *testing.T) {
	a := newBucket("a")
	b := newBucket("b")
	base := a.AddMesh()
	requireContractPanic(t, "CopyMesh", func() { b.CopyMesh(base) })
	requireContractPanic(t, "RemoveMesh", func() { b.RemoveMesh(base) })
}
