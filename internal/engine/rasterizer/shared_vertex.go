package rasterizer

import "github.com/Faultbox/meshras/pkg/math"

// sharedVertex locates a stored vertex created for an origin index.
type sharedVertex struct {
	array  *DisplayArray
	offset int
}

// AddVertex fills corner of poly.
//
// A vertex created earlier for the same origin index in the same display
// array is reused when it is CloseTo the new one; otherwise the vertex is
// appended and recorded under origIndex. Visible polygons also append the
// corner to the index buffer: triangles append one index per corner, and
// the fourth corner of a quad appends the second triangle (0, 2, 3).
// Corners must be added in order, each exactly once.
func (m *MeshObject) AddVertex(poly *Polygon, corner int, pos math.Vec3, uvs [MaxUVUnits]math.Vec2,
	tangent math.Vec4, rgba uint32, normal math.Vec3, flat bool, origIndex int) {
	checkIndex("AddVertex", corner, poly.numVert)
	if corner != poly.added {
		contractf("AddVertex", "corner %d out of order, expected corner %d", corner, poly.added)
	}

	candidate := NewVertex(pos, uvs, tangent, rgba, normal, flat, origIndex)

	mm := m.meshMaterialOrPanic("AddVertex", poly.Material())
	slot := mm.baseSlot
	array := slot.array

	offset := -1
	for _, sv := range m.sharedVertices[origIndex] {
		if sv.array != array {
			continue
		}
		if !sv.array.Vertices[sv.offset].CloseTo(&candidate) {
			continue
		}
		offset = sv.offset
		break
	}

	if offset < 0 {
		offset = slot.AddVertex(candidate)
		m.sharedVertices[origIndex] = append(m.sharedVertices[origIndex], sharedVertex{array: array, offset: offset})
		m.aabbModified = true
		m.meshModified = true
	}

	poly.SetVertexOffset(corner, offset)
	poly.added++

	if !poly.IsVisible() {
		return
	}
	if corner == 3 {
		slot.AddPolygonVertex(poly.offsets[0])
		slot.AddPolygonVertex(poly.offsets[2])
	}
	slot.AddPolygonVertex(offset)
}

// VertexLocation returns the position of the first vertex stored for
// origIndex. origIndex must have been added.
func (m *MeshObject) VertexLocation(origIndex int) math.Vec3 {
	shared := m.sharedVertices[origIndex]
	if len(shared) == 0 {
		contractf("VertexLocation", "origin index %d has no stored vertex", origIndex)
	}
	sv := shared[0]
	return sv.array.Vertices[sv.offset].Position
}

// NumSharedOrigins returns how many distinct origin indices have stored vertices.
func (m *MeshObject) NumSharedOrigins() int {
	return len(m.sharedVertices)
}
