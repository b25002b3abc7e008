package rasterizer

import "github.com/Faultbox/meshras/pkg/math"

// DisplayArray is a dense vertex buffer plus a triangle index buffer for a
// single material. It is what the renderer uploads and draws.
type DisplayArray struct {
	Vertices []Vertex
	Indices  []uint32
}

// NewDisplayArray returns an empty display array.
func NewDisplayArray() *DisplayArray {
	return &DisplayArray{}
}

// AddVertex appends v and returns its offset.
func (a *DisplayArray) AddVertex(v Vertex) int {
	a.Vertices = append(a.Vertices, v)
	return len(a.Vertices) - 1
}

// AddIndex appends a vertex offset to the index buffer.
func (a *DisplayArray) AddIndex(offset int) {
	checkIndex("DisplayArray.AddIndex", offset, len(a.Vertices))
	a.Indices = append(a.Indices, uint32(offset))
}

// VertexCount returns the number of stored vertices.
func (a *DisplayArray) VertexCount() int {
	return len(a.Vertices)
}

// IndexCount returns the number of indices.
func (a *DisplayArray) IndexCount() int {
	return len(a.Indices)
}

// TriangleCount returns the number of complete index triples.
func (a *DisplayArray) TriangleCount() int {
	return len(a.Indices) / 3
}

// Vertex returns a pointer to the vertex at offset i.
func (a *DisplayArray) Vertex(i int) *Vertex {
	checkIndex("DisplayArray.Vertex", i, len(a.Vertices))
	return &a.Vertices[i]
}

// Triangle returns the index triple of triangle t.
func (a *DisplayArray) Triangle(t int) [3]uint32 {
	checkIndex("DisplayArray.Triangle", t, a.TriangleCount())
	return [3]uint32{a.Indices[t*3], a.Indices[t*3+1], a.Indices[t*3+2]}
}

// Bounds returns the bounding box of all vertices and false when the array is empty.
func (a *DisplayArray) Bounds() (math.Box3, bool) {
	if len(a.Vertices) == 0 {
		return math.Box3{}, false
	}
	b := math.Box3FromPoint(a.Vertices[0].Position)
	for i := 1; i < len(a.Vertices); i++ {
		b.ExpandByPoint(a.Vertices[i].Position)
	}
	return b, true
}

// Clone returns a deep copy of both buffers.
func (a *DisplayArray) Clone() *DisplayArray {
	return &DisplayArray{
		Vertices: append([]Vertex(nil), a.Vertices...),
		Indices:  append([]uint32(nil), a.Indices...),
	}
}
