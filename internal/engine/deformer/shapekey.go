package deformer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
	"github.com/Faultbox/meshras/pkg/math"
)

var (
	// ErrTooManyShapeKeys is returned when a deformer has more keys than the mesh declares.
	ErrTooManyShapeKeys = errors.New("more shape keys than the mesh declares")
	// ErrNoShapeKey is returned for a shape key index out of range.
	ErrNoShapeKey = errors.New("no such shape key")
)

// ShapeKey is a named set of per-vertex offsets keyed by origin index.
type ShapeKey struct {
	Name    string
	Offsets map[int]math.Vec3
}

// ShapeKeyDeformer blends shape key offsets onto the base geometry.
type ShapeKeyDeformer struct {
	base

	Keys    []ShapeKey
	Weights []float32

	cache   []int // mesh shape key slot -> index into Keys, -1 when unbound
	applied []float32
	updated bool
}

// NewShapeKeyDeformer binds keys, in order, to the shape key slots of mesh.
// Every weight starts at zero.
func NewShapeKeyDeformer(mesh *rasterizer.MeshObject, keys []ShapeKey) (*ShapeKeyDeformer, error) {
	if len(keys) > mesh.NumShapeKeys() {
		return nil, fmt.Errorf("mesh %q: %d keys, %d slots: %w", mesh.Name(), len(keys), mesh.NumShapeKeys(), ErrTooManyShapeKeys)
	}

	cache := mesh.ShapeKeyWeightCache()
	for i := range keys {
		cache[i] = i
	}

	logger.Debug("shape key deformer created",
		zap.String("mesh", mesh.Name()),
		zap.Int("keys", len(keys)))

	return &ShapeKeyDeformer{
		base:    newBase(),
		Keys:    keys,
		Weights: make([]float32, len(keys)),
		cache:   cache,
	}, nil
}

// SetWeight sets the blend weight of key i.
func (d *ShapeKeyDeformer) SetWeight(i int, w float32) error {
	if i < 0 || i >= len(d.Weights) {
		return fmt.Errorf("shape key %d: %w", i, ErrNoShapeKey)
	}
	d.Weights[i] = w
	return nil
}

// Update reports whether the weights changed since the previous Update.
func (d *ShapeKeyDeformer) Update() bool {
	if d.updated && equalWeights(d.applied, d.Weights) {
		return false
	}
	d.applied = append(d.applied[:0], d.Weights...)
	d.updated = true
	d.beginFrame()
	return true
}

// Apply writes base positions plus the weighted key offsets into array.
func (d *ShapeKeyDeformer) Apply(mm *rasterizer.MeshMaterial, array *rasterizer.DisplayArray) {
	src := basePositions(mm)
	n := min(len(src), len(array.Vertices))

	for i := 0; i < n; i++ {
		pos := src[i].Position
		for _, k := range d.cache {
			if k < 0 || k >= len(d.Keys) {
				continue
			}
			w := d.Weights[k]
			if w == 0 {
				continue
			}
			if off, ok := d.Keys[k].Offsets[src[i].OrigIndex]; ok {
				pos = pos.Add(off.Scale(w))
			}
		}
		array.Vertices[i].Position = pos
	}
	d.record(array)
}

// IsDynamic is always true; shape keys move vertices.
func (d *ShapeKeyDeformer) IsDynamic() bool { return true }

// Replica returns an independent copy for another instance.
func (d *ShapeKeyDeformer) Replica() rasterizer.Deformer {
	r := &ShapeKeyDeformer{
		base:  d.base,
		cache: d.cache,
	}
	replicate(r, d)
	r.ProcessReplica()
	return r
}

func equalWeights(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
