package rasterizer

import (
	"github.com/google/uuid"
)

// UserID identifies a runtime user (scene object) of a mesh.
type UserID = uuid.UUID

// NewUserID returns a fresh random user id.
func NewUserID() UserID {
	return uuid.New()
}

// SlotID addresses a MeshSlot inside its MaterialBucket. Ids of removed
// slots are reused.
type SlotID int

// MaterialBucket groups every mesh slot drawn with one material.
type MaterialBucket struct {
	material *Material
	slots    []*MeshSlot // nil entries are free
}

// NewMaterialBucket returns an empty bucket for mat.
func NewMaterialBucket(mat *Material) *MaterialBucket {
	return &MaterialBucket{material: mat}
}

// Material returns the bucket's material.
func (b *MaterialBucket) Material() *Material {
	return b.material
}

// AddMesh creates a base slot owning a fresh, empty display array.
func (b *MaterialBucket) AddMesh() *MeshSlot {
	ms := &MeshSlot{
		bucket: b,
		array:  NewDisplayArray(),
	}
	ms.id = b.alloc(ms)
	return ms
}

// CopyMesh instantiates a slot from base. The copy references the same
// display array and mesh material as base.
func (b *MaterialBucket) CopyMesh(base *MeshSlot) *MeshSlot {
	if base.bucket != b {
		contractf("CopyMesh", "slot %d belongs to another bucket", base.id)
	}
	ms := &MeshSlot{
		bucket:   b,
		mesh:     base.mesh,
		matIndex: base.matIndex,
		array:    base.array,
		deformer: base.deformer,
	}
	ms.id = b.alloc(ms)
	return ms
}

// RemoveMesh frees the slot's id.
func (b *MaterialBucket) RemoveMesh(ms *MeshSlot) {
	if ms.bucket != b || b.Slot(ms.id) != ms {
		contractf("RemoveMesh", "slot %d is not live in this bucket", ms.id)
	}
	b.slots[ms.id] = nil
}

// Slot returns the live slot with the given id, or nil.
func (b *MaterialBucket) Slot(id SlotID) *MeshSlot {
	if id < 0 || int(id) >= len(b.slots) {
		return nil
	}
	return b.slots[id]
}

// NumSlots returns the number of live slots.
func (b *MaterialBucket) NumSlots() int {
	n := 0
	for _, ms := range b.slots {
		if ms != nil {
			n++
		}
	}
	return n
}

// Slots returns the live slots in id order.
func (b *MaterialBucket) Slots() []*MeshSlot {
	live := make([]*MeshSlot, 0, len(b.slots))
	for _, ms := range b.slots {
		if ms != nil {
			live = append(live, ms)
		}
	}
	return live
}

// alloc stores ms in the first free entry, growing the arena when full.
func (b *MaterialBucket) alloc(ms *MeshSlot) SlotID {
	for i, s := range b.slots {
		if s == nil {
			b.slots[i] = ms
			return SlotID(i)
		}
	}
	b.slots = append(b.slots, ms)
	return SlotID(len(b.slots) - 1)
}

// MeshSlot binds one mesh material of one user to a display array.
// Base slots (user uuid.Nil) own the mesh geometry; user slots share it
// unless their deformer needs a private copy.
type MeshSlot struct {
	id       SlotID
	bucket   *MaterialBucket
	mesh     *MeshObject
	matIndex int
	user     UserID
	array    *DisplayArray
	deformer Deformer
}

// ID returns the slot id within its bucket.
func (ms *MeshSlot) ID() SlotID { return ms.id }

// Bucket returns the owning bucket.
func (ms *MeshSlot) Bucket() *MaterialBucket { return ms.bucket }

// Mesh returns the mesh the slot was created for.
func (ms *MeshSlot) Mesh() *MeshObject { return ms.mesh }

// MeshMaterial returns the mesh material the slot belongs to.
func (ms *MeshSlot) MeshMaterial() *MeshMaterial {
	if ms.mesh == nil {
		return nil
	}
	return ms.mesh.MeshMaterialAt(ms.matIndex)
}

// User returns the slot's user, uuid.Nil for base slots.
func (ms *MeshSlot) User() UserID { return ms.user }

// IsBase reports whether this is the mesh's base slot for its material.
func (ms *MeshSlot) IsBase() bool { return ms.user == uuid.Nil }

// DisplayArray returns the array drawn for this slot.
func (ms *MeshSlot) DisplayArray() *DisplayArray { return ms.array }

// Deformer returns the slot's deformer, nil when undeformed.
func (ms *MeshSlot) Deformer() Deformer { return ms.deformer }

// SetDeformer sets the slot's deformer.
func (ms *MeshSlot) SetDeformer(d Deformer) { ms.deformer = d }

// HasPrivateArray reports whether the slot draws its own copy of the geometry.
func (ms *MeshSlot) HasPrivateArray() bool {
	mm := ms.MeshMaterial()
	return mm != nil && mm.baseSlot.array != ms.array
}

// AddVertex appends v to the slot's display array.
func (ms *MeshSlot) AddVertex(v Vertex) int {
	return ms.array.AddVertex(v)
}

// AddPolygonVertex appends offset to the slot's index buffer.
func (ms *MeshSlot) AddPolygonVertex(offset int) {
	ms.array.AddIndex(offset)
}
