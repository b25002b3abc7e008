package rasterizer

// Polygon is a triangle or quad of a mesh. Its corners are offsets into the
// display array of the material it was added under.
type Polygon struct {
	bucket  *MaterialBucket
	array   *DisplayArray
	offsets [4]int
	numVert int
	added   int // corners filled by AddVertex, in order

	visible  bool
	collider bool
	twoSided bool
}

func newPolygon(bucket *MaterialBucket, array *DisplayArray, numVert int) *Polygon {
	if numVert != 3 && numVert != 4 {
		contractf("AddPolygon", "polygons have 3 or 4 vertices, got %d", numVert)
	}
	return &Polygon{
		bucket:   bucket,
		array:    array,
		numVert:  numVert,
		visible:  true,
		collider: true,
	}
}

// VertexCount returns 3 for triangles and 4 for quads.
func (p *Polygon) VertexCount() int {
	return p.numVert
}

// VertexOffset returns the display array offset of corner i.
func (p *Polygon) VertexOffset(i int) int {
	checkIndex("Polygon.VertexOffset", i, p.numVert)
	return p.offsets[i]
}

// SetVertexOffset stores the display array offset of corner i.
func (p *Polygon) SetVertexOffset(i, offset int) {
	checkIndex("Polygon.SetVertexOffset", i, p.numVert)
	p.offsets[i] = offset
}

// Vertex returns the stored vertex of corner i.
func (p *Polygon) Vertex(i int) *Vertex {
	return p.array.Vertex(p.VertexOffset(i))
}

// Bucket returns the material bucket the polygon was added under.
func (p *Polygon) Bucket() *MaterialBucket {
	return p.bucket
}

// Material returns the polygon's material.
func (p *Polygon) Material() *Material {
	return p.bucket.Material()
}

// DisplayArray returns the array holding the polygon's vertices.
func (p *Polygon) DisplayArray() *DisplayArray {
	return p.array
}

// IsVisible reports whether the polygon contributes indices to its array.
func (p *Polygon) IsVisible() bool { return p.visible }

// SetVisible must be called before the polygon's vertices are added.
func (p *Polygon) SetVisible(visible bool) { p.visible = visible }

// IsCollider reports whether the polygon takes part in physics meshes.
func (p *Polygon) IsCollider() bool { return p.collider }

// SetCollider sets the collider flag.
func (p *Polygon) SetCollider(collider bool) { p.collider = collider }

// IsTwoSided reports whether back faces should be drawn.
func (p *Polygon) IsTwoSided() bool { return p.twoSided }

// SetTwoSided sets the two-sided flag.
func (p *Polygon) SetTwoSided(twoSided bool) { p.twoSided = twoSided }
