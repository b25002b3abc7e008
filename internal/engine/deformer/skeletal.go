package deformer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
	"github.com/Faultbox/meshras/pkg/math"
)

// ErrBoneOrder is returned when a bone's parent does not come before it.
var ErrBoneOrder = errors.New("bone parent must precede the bone")

// ErrNoBone is returned when a weight references a missing bone.
var ErrNoBone = errors.New("no such bone")

// Bone is a joint of a skeleton. Bones rotate around Pivot (in mesh space at
// rest) and are listed parents first; the root has Parent -1.
type Bone struct {
	Name    string
	Parent  int
	Pivot   math.Vec3
	RotKeys []RotKey
	PosKeys []PosKey
}

// BoneWeight is the influence of one bone on a vertex.
type BoneWeight struct {
	Bone   int
	Weight float32
}

// SkeletalDeformer skins vertices with a keyframed bone hierarchy.
type SkeletalDeformer struct {
	base

	Bones   []Bone
	Weights map[int][]BoneWeight // keyed by origin index
	Time    float32

	pose     []math.Mat4
	posedAt  float32
	hasPosed bool
}

// NewSkeletalDeformer validates the hierarchy and the weight table.
func NewSkeletalDeformer(bones []Bone, weights map[int][]BoneWeight) (*SkeletalDeformer, error) {
	for i, b := range bones {
		if b.Parent >= i {
			return nil, fmt.Errorf("bone %d %q: parent %d: %w", i, b.Name, b.Parent, ErrBoneOrder)
		}
	}
	for orig, ws := range weights {
		for _, w := range ws {
			if w.Bone < 0 || w.Bone >= len(bones) {
				return nil, fmt.Errorf("origin %d: bone %d: %w", orig, w.Bone, ErrNoBone)
			}
		}
	}

	logger.Debug("skeletal deformer created",
		zap.Int("bones", len(bones)),
		zap.Int("weighted", len(weights)))

	return &SkeletalDeformer{
		base:    newBase(),
		Bones:   bones,
		Weights: weights,
	}, nil
}

// SetTime moves the animation to t.
func (d *SkeletalDeformer) SetTime(t float32) {
	d.Time = t
}

// Pose returns the bone matrices of the last Update.
func (d *SkeletalDeformer) Pose() []math.Mat4 {
	return d.pose
}

// Update recomputes the pose when the time changed.
func (d *SkeletalDeformer) Update() bool {
	if d.hasPosed && d.posedAt == d.Time {
		return false
	}

	if len(d.pose) != len(d.Bones) {
		d.pose = make([]math.Mat4, len(d.Bones))
	}
	for i := range d.Bones {
		b := &d.Bones[i]
		// Parent * T(pivot + offset) * R * T(-pivot)
		local := math.TranslateVec3(b.Pivot.Add(InterpolatePosKeys(b.PosKeys, d.Time))).
			Mul(InterpolateRotKeys(b.RotKeys, d.Time).ToMat4()).
			Mul(math.TranslateVec3(b.Pivot.Scale(-1)))
		if b.Parent >= 0 {
			local = d.pose[b.Parent].Mul(local)
		}
		d.pose[i] = local
	}

	d.posedAt = d.Time
	d.hasPosed = true
	d.beginFrame()
	return true
}

// Apply writes skinned base positions into array. Vertices without weights
// keep their rest position.
func (d *SkeletalDeformer) Apply(mm *rasterizer.MeshMaterial, array *rasterizer.DisplayArray) {
	src := basePositions(mm)
	n := min(len(src), len(array.Vertices))

	for i := 0; i < n; i++ {
		rest := src[i].Position
		ws := d.Weights[src[i].OrigIndex]

		var pos math.Vec3
		var total float32
		for _, w := range ws {
			if w.Weight <= 0 || w.Bone >= len(d.pose) {
				continue
			}
			pos = pos.Add(d.pose[w.Bone].TransformPoint(rest).Scale(w.Weight))
			total += w.Weight
		}
		if total == 0 {
			array.Vertices[i].Position = rest
			continue
		}
		array.Vertices[i].Position = pos.Scale(1 / total)
	}
	d.record(array)
}

// IsDynamic is always true; skinned vertices follow the bones.
func (d *SkeletalDeformer) IsDynamic() bool { return true }

// Replica returns an independent copy sharing no keyframes or weights.
func (d *SkeletalDeformer) Replica() rasterizer.Deformer {
	r := &SkeletalDeformer{base: d.base}
	replicate(r, d)
	r.ProcessReplica()
	return r
}
