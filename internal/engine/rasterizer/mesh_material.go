package rasterizer

// MeshMaterial ties a mesh to one material bucket: the base slot holding the
// geometry plus the slot of every user.
type MeshMaterial struct {
	bucket   *MaterialBucket
	baseSlot *MeshSlot
	index    int
	slots    map[UserID]SlotID
}

// Bucket returns the material bucket.
func (mm *MeshMaterial) Bucket() *MaterialBucket { return mm.bucket }

// Material returns the bucket's material.
func (mm *MeshMaterial) Material() *Material { return mm.bucket.Material() }

// BaseSlot returns the slot owning the shared geometry.
func (mm *MeshMaterial) BaseSlot() *MeshSlot { return mm.baseSlot }

// Index returns the authoring-time material index.
func (mm *MeshMaterial) Index() int { return mm.index }

// UserSlot returns the slot of user, or nil.
func (mm *MeshMaterial) UserSlot(user UserID) *MeshSlot {
	id, ok := mm.slots[user]
	if !ok {
		return nil
	}
	return mm.bucket.Slot(id)
}

// NumUsers returns how many users hold a slot for this material.
func (mm *MeshMaterial) NumUsers() int {
	return len(mm.slots)
}
