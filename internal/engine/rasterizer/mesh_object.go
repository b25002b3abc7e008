// Package rasterizer turns authored meshes into material-bucketed display
// arrays and keeps them ready for drawing.
//
// A MeshObject is built once by the scene converter (AddMaterial, then
// AddPolygon and AddVertex for every corner) and then shared by any number of
// users, each of which gets its own MeshSlot per material via AddMeshUser.
// Alpha-sorted slots are reordered every frame with SortPolygons.
//
// Nothing in this package is safe for concurrent use; mesh mutation, sorting
// and drawing happen on the same goroutine.
package rasterizer

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/logger"
	"github.com/Faultbox/meshras/pkg/math"
)

// MeshObject is the logical mesh: its polygons, one MeshMaterial per
// material, the shared vertex index used while converting, and a cached AABB.
type MeshObject struct {
	name      string
	polygons  []*Polygon
	materials []*MeshMaterial

	sharedVertices map[int][]sharedVertex

	aabb         math.Box3
	aabbModified bool
	meshModified bool

	// One entry per shape key, -1 until a shape deformer caches a weight index.
	weightCache []int
}

// NewMeshObject creates an empty mesh. shapeKeys is the number of shape keys
// of the authored mesh (0 when it has none).
func NewMeshObject(name string, shapeKeys int) *MeshObject {
	m := &MeshObject{
		name:           name,
		sharedVertices: make(map[int][]sharedVertex),
		aabbModified:   true,
		meshModified:   true,
	}
	if shapeKeys > 0 {
		m.weightCache = make([]int, shapeKeys)
		for i := range m.weightCache {
			m.weightCache[i] = -1
		}
	}
	return m
}

// Name returns the mesh name.
func (m *MeshObject) Name() string { return m.name }

// SetName renames the mesh.
func (m *MeshObject) SetName(name string) { m.name = name }

// MeshModified reports whether geometry changed since SetMeshModified(false).
func (m *MeshObject) MeshModified() bool { return m.meshModified }

// SetMeshModified sets or clears the geometry-changed flag.
func (m *MeshObject) SetMeshModified(v bool) { m.meshModified = v }

// NumShapeKeys returns the shape key count given at construction.
func (m *MeshObject) NumShapeKeys() int { return len(m.weightCache) }

// ShapeKeyWeightCache returns the per-shape-key cache owned by the shape deformer.
func (m *MeshObject) ShapeKeyWeightCache() []int { return m.weightCache }

// NumMaterials returns the number of mesh materials.
func (m *MeshObject) NumMaterials() int {
	return len(m.materials)
}

// Materials returns the mesh materials in insertion order.
func (m *MeshObject) Materials() []*MeshMaterial {
	return m.materials
}

// FirstMaterial returns the first mesh material, or nil.
func (m *MeshObject) FirstMaterial() *MeshMaterial {
	if len(m.materials) == 0 {
		return nil
	}
	return m.materials[0]
}

// LastMaterial returns the last mesh material, or nil.
func (m *MeshObject) LastMaterial() *MeshMaterial {
	if len(m.materials) == 0 {
		return nil
	}
	return m.materials[len(m.materials)-1]
}

// MeshMaterialAt returns the i-th mesh material, or nil when i is out of range.
func (m *MeshObject) MeshMaterialAt(i int) *MeshMaterial {
	if i < 0 || i >= len(m.materials) {
		return nil
	}
	return m.materials[i]
}

// MeshMaterialFor returns the mesh material drawn with mat, or nil.
func (m *MeshObject) MeshMaterialFor(mat *Material) *MeshMaterial {
	for _, mm := range m.materials {
		if mm.bucket.Material() == mat {
			return mm
		}
	}
	return nil
}

// MaterialIndex returns the authoring index of mat, or -1.
func (m *MeshObject) MaterialIndex(mat *Material) int {
	if mm := m.MeshMaterialFor(mat); mm != nil {
		return mm.index
	}
	return -1
}

// MaterialName returns the name of the i-th material.
func (m *MeshObject) MaterialName(i int) (string, bool) {
	mm := m.MeshMaterialAt(i)
	if mm == nil {
		return "", false
	}
	return mm.Material().Name, true
}

// TextureName returns the texture name of the i-th material.
func (m *MeshObject) TextureName(i int) (string, bool) {
	mm := m.MeshMaterialAt(i)
	if mm == nil {
		return "", false
	}
	return mm.Material().TextureName, true
}

// AddMaterial registers bucket for this mesh. Adding a bucket whose material
// is already registered does nothing.
func (m *MeshObject) AddMaterial(bucket *MaterialBucket, index int) {
	if m.MeshMaterialFor(bucket.Material()) != nil {
		return
	}

	base := bucket.AddMesh()
	base.mesh = m
	base.matIndex = len(m.materials)

	m.materials = append(m.materials, &MeshMaterial{
		bucket:   bucket,
		baseSlot: base,
		index:    index,
		slots:    make(map[UserID]SlotID),
	})

	logger.Debug("mesh material added",
		zap.String("mesh", m.name),
		zap.String("material", bucket.Material().Name),
		zap.Int("index", index))
}

// meshMaterialOrPanic is MeshMaterialFor for callers that require a match.
func (m *MeshObject) meshMaterialOrPanic(op string, mat *Material) *MeshMaterial {
	mm := m.MeshMaterialFor(mat)
	if mm == nil {
		name := "<nil>"
		if mat != nil {
			name = mat.Name
		}
		contractf(op, "material %q was not added to mesh %q", name, m.name)
	}
	return mm
}

// AddPolygon appends a polygon with numVerts corners drawn with bucket's
// material. AddMaterial must have been called for bucket first.
func (m *MeshObject) AddPolygon(bucket *MaterialBucket, numVerts int) *Polygon {
	mm := m.meshMaterialOrPanic("AddPolygon", bucket.Material())

	poly := newPolygon(bucket, mm.baseSlot.array, numVerts)
	m.polygons = append(m.polygons, poly)
	return poly
}

// NumPolygons returns the number of polygons.
func (m *MeshObject) NumPolygons() int {
	return len(m.polygons)
}

// Polygon returns polygon i. i must be in [0, NumPolygons()).
func (m *MeshObject) Polygon(i int) *Polygon {
	checkIndex("Polygon", i, len(m.polygons))
	return m.polygons[i]
}

// HasColliderPolygon reports whether any polygon is flagged as a collider.
func (m *MeshObject) HasColliderPolygon() bool {
	for _, p := range m.polygons {
		if p.IsCollider() {
			return true
		}
	}
	return false
}

// SetVertexColor overwrites the color of every vertex drawn with mat.
func (m *MeshObject) SetVertexColor(mat *Material, rgba math.Vec4) {
	mm := m.meshMaterialOrPanic("SetVertexColor", mat)
	packed := PackRGBA(rgba)

	array := mm.baseSlot.array
	for i := range array.Vertices {
		array.Vertices[i].RGBA = packed
	}
}

// NumVertices returns the number of stored vertices drawn with mat.
func (m *MeshObject) NumVertices(mat *Material) int {
	return m.meshMaterialOrPanic("NumVertices", mat).baseSlot.array.VertexCount()
}

// Vertex returns stored vertex index of the matIndex-th material. It returns
// nil when the material does not exist and panics when index is out of range.
func (m *MeshObject) Vertex(matIndex, index int) *Vertex {
	mm := m.MeshMaterialAt(matIndex)
	if mm == nil {
		return nil
	}
	return mm.baseSlot.array.Vertex(index)
}

// UpdateAabb recomputes the bounding box over the base geometry of every
// material.
func (m *MeshObject) UpdateAabb() {
	first := true
	for _, mm := range m.materials {
		if mm.baseSlot == nil {
			continue
		}
		for i := range mm.baseSlot.array.Vertices {
			pos := mm.baseSlot.array.Vertices[i].Position
			if first {
				m.aabb = math.Box3FromPoint(pos)
				first = false
				continue
			}
			m.aabb.ExpandByPoint(pos)
		}
	}
	m.aabbModified = false
}

// Aabb returns the mesh bounding box, recomputing it if geometry changed.
// A mesh without vertices has a zero box.
func (m *MeshObject) Aabb() math.Box3 {
	if m.aabbModified {
		m.UpdateAabb()
	}
	return m.aabb
}

// EndConversion marks the end of mesh construction. The shared vertex index
// is kept so VertexLocation keeps working.
func (m *MeshObject) EndConversion() {
	vertices := 0
	for _, mm := range m.materials {
		vertices += mm.baseSlot.array.VertexCount()
	}
	logger.Debug("mesh converted",
		zap.String("mesh", m.name),
		zap.Int("materials", len(m.materials)),
		zap.Int("polygons", len(m.polygons)),
		zap.Int("vertices", vertices),
		zap.Int("origins", len(m.sharedVertices)))
}

// Release tears the mesh down: every user slot and base slot is removed from
// its bucket, and polygons and the shared vertex index are dropped.
func (m *MeshObject) Release() {
	for _, mm := range m.materials {
		for user := range mm.slots {
			if ms := mm.UserSlot(user); ms != nil {
				mm.bucket.RemoveMesh(ms)
			}
		}
		mm.slots = nil
		mm.bucket.RemoveMesh(mm.baseSlot)
	}

	logger.Debug("mesh released", zap.String("mesh", m.name), zap.Int("materials", len(m.materials)))

	m.polygons = nil
	m.materials = nil
	m.sharedVertices = make(map[int][]sharedVertex)
	m.aabb = math.Box3{}
	m.aabbModified = true
	m.meshModified = true
}

// isBaseUser reports whether user is the reserved id of base slots.
func isBaseUser(user UserID) bool {
	return user == uuid.Nil
}
