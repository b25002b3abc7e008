package rasterizer

// Deformer moves a mesh's vertices at runtime (shape keys, skinning).
// The mesh object only relies on this capability set. Implementations are
// expected to be pointer types; slots sharing one deformer share its state.
type Deformer interface {
	// Update advances the deformer and reports whether its output changed.
	Update() bool
	// Apply writes deformed vertices for mm into array.
	Apply(mm *MeshMaterial, array *DisplayArray)
	// BoundingBox returns the box enclosing the deformed vertices.
	BoundingBox() *BoundingBox
	// IsDynamic reports whether vertices change from frame to frame.
	IsDynamic() bool
	// Replica returns a deep copy for another instance of the object.
	Replica() Deformer
	// ProcessReplica drops per-instance caches after Replica.
	ProcessReplica()
}
