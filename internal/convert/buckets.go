package convert

import (
	"fmt"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
)

// Buckets holds one material bucket per material name, shared by every mesh
// converted into the same scene.
type Buckets struct {
	byName map[string]*rasterizer.MaterialBucket
	order  []*rasterizer.MaterialBucket
}

// NewBuckets returns an empty bucket set.
func NewBuckets() *Buckets {
	return &Buckets{byName: make(map[string]*rasterizer.MaterialBucket)}
}

// Bucket returns the bucket for md, creating it on first use. Later
// descriptions of an existing material name are ignored.
func (s *Buckets) Bucket(md MaterialDesc) (*rasterizer.MaterialBucket, error) {
	if b, ok := s.byName[md.Name]; ok {
		return b, nil
	}

	blend, err := rasterizer.ParseBlendMode(md.Blend)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", md.Name, err)
	}
	mat := &rasterizer.Material{
		Name:        md.Name,
		TextureName: md.Texture,
		Blend:       blend,
		ZSort:       blend != rasterizer.BlendOpaque,
	}
	if md.ZSort != nil {
		mat.ZSort = *md.ZSort
	}

	b := rasterizer.NewMaterialBucket(mat)
	s.byName[md.Name] = b
	s.order = append(s.order, b)
	return b, nil
}

// Lookup returns the bucket named name.
func (s *Buckets) Lookup(name string) (*rasterizer.MaterialBucket, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// All returns the buckets in creation order.
func (s *Buckets) All() []*rasterizer.MaterialBucket {
	return s.order
}
