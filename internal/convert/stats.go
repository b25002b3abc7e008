package convert

import (
	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/pkg/math"
)

// MaterialStats summarizes the geometry of one mesh material.
type MaterialStats struct {
	Name      string
	Texture   string
	Blend     string
	ZSort     bool
	Vertices  int
	Triangles int
}

// Stats summarizes a converted mesh.
type Stats struct {
	Name        string
	Polygons    int
	Origins     int
	Colliders   bool
	Aabb        math.Box3
	Materials   []MaterialStats
	TotalVerts  int
	TotalTris   int
	SharedRatio float32 // stored vertices per authoring vertex
	Meta        map[string]string
}

// Summarize collects Stats for mesh. meta is the free-form metadata of the
// description the mesh was converted from and may be nil.
func Summarize(mesh *rasterizer.MeshObject, meta map[string]string) Stats {
	s := Stats{
		Name:      mesh.Name(),
		Meta:      meta,
		Polygons:  mesh.NumPolygons(),
		Origins:   mesh.NumSharedOrigins(),
		Colliders: mesh.HasColliderPolygon(),
		Aabb:      mesh.Aabb(),
	}
	for _, mm := range mesh.Materials() {
		mat := mm.Material()
		array := mm.BaseSlot().DisplayArray()
		s.Materials = append(s.Materials, MaterialStats{
			Name:      mat.Name,
			Texture:   mat.TextureName,
			Blend:     mat.Blend.String(),
			ZSort:     mat.IsZSort(),
			Vertices:  array.VertexCount(),
			Triangles: array.TriangleCount(),
		})
		s.TotalVerts += array.VertexCount()
		s.TotalTris += array.TriangleCount()
	}
	if s.Origins > 0 {
		s.SharedRatio = float32(s.TotalVerts) / float32(s.Origins)
	}
	return s
}
