package convert

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
	"github.com/Faultbox/meshras/pkg/math"
)

// degenerateArea is the face normal length under which a flat polygon is
// dropped.
const degenerateArea = 1e-5

// Convert builds a mesh from desc, drawing its materials from buckets.
// Materials are added in description order, so material i of the mesh is
// desc.Materials[i]. Flat polygons take their face normal; degenerate flat
// polygons are skipped.
func Convert(desc *Description, buckets *Buckets) (*rasterizer.MeshObject, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	mesh := rasterizer.NewMeshObject(desc.Name, desc.ShapeKeys)

	byName := make(map[string]*rasterizer.MaterialBucket, len(desc.Materials))
	for i, md := range desc.Materials {
		b, err := buckets.Bucket(md)
		if err != nil {
			return nil, err
		}
		mesh.AddMaterial(b, i)
		byName[md.Name] = b
	}

	skipped := 0
	for i := range desc.Polygons {
		pd := &desc.Polygons[i]

		normal, flatOK := faceNormal(desc, pd)
		if pd.Flat && !flatOK {
			logger.Warn("skipping degenerate polygon",
				zap.String("mesh", desc.Name),
				zap.Int("polygon", i))
			skipped++
			continue
		}

		poly := mesh.AddPolygon(byName[pd.Material], len(pd.Verts))
		if pd.Visible != nil {
			poly.SetVisible(*pd.Visible)
		}
		if pd.Collider != nil {
			poly.SetCollider(*pd.Collider)
		}
		poly.SetTwoSided(pd.TwoSided)

		for corner, vi := range pd.Verts {
			v := &desc.Vertices[vi]
			n := math.Vec3FromArray(v.Normal)
			if pd.Flat {
				n = normal
			}
			mesh.AddVertex(poly, corner, math.Vec3FromArray(v.Pos), uvSets(v), math.Vec4(v.Tangent),
				color(v), n, pd.Flat, vi)
		}
	}

	mesh.EndConversion()
	if skipped > 0 {
		logger.Info("mesh converted with skipped polygons",
			zap.String("mesh", desc.Name),
			zap.Int("skipped", skipped))
	}
	return mesh, nil
}

// faceNormal returns the unit normal of the polygon's first three corners and
// false when they are collinear.
func faceNormal(desc *Description, pd *PolygonDesc) (math.Vec3, bool) {
	v0 := math.Vec3FromArray(desc.Vertices[pd.Verts[0]].Pos)
	v1 := math.Vec3FromArray(desc.Vertices[pd.Verts[1]].Pos)
	v2 := math.Vec3FromArray(desc.Vertices[pd.Verts[2]].Pos)

	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Length() < degenerateArea {
		return math.Vec3{}, false
	}
	return n.Normalize(), true
}

func uvSets(v *VertexDesc) [rasterizer.MaxUVUnits]math.Vec2 {
	var uvs [rasterizer.MaxUVUnits]math.Vec2
	for i, uv := range v.UV {
		uvs[i] = math.Vec2{X: uv[0], Y: uv[1]}
	}
	return uvs
}

func color(v *VertexDesc) uint32 {
	if v.Color == nil {
		return rasterizer.PackRGBA(math.Vec4{1, 1, 1, 1})
	}
	return rasterizer.PackRGBA(math.Vec4(*v.Color))
}
