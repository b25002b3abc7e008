package rasterizer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshras/pkg/math"
)

// MaxUVUnits is the number of texture coordinate sets stored per vertex.
const MaxUVUnits = 8

// closeToEpsilonSq is the squared distance under which two attribute
// vectors compare equal in Vertex.CloseTo.
const closeToEpsilonSq = 1e-10

// Vertex is a render-ready vertex as stored in a DisplayArray.
type Vertex struct {
	Position  math.Vec3
	UVs       [MaxUVUnits]math.Vec2
	Tangent   math.Vec4
	RGBA      uint32 // R in the lowest byte, A in the highest
	Normal    math.Vec3
	Flat      bool
	OrigIndex int // Authoring-time vertex index
}

// NewVertex builds a vertex record.
func NewVertex(pos math.Vec3, uvs [MaxUVUnits]math.Vec2, tangent math.Vec4, rgba uint32,
	normal math.Vec3, flat bool, origIndex int) Vertex {
	return Vertex{
		Position:  pos,
		UVs:       uvs,
		Tangent:   tangent,
		RGBA:      rgba,
		Normal:    normal,
		Flat:      flat,
		OrigIndex: origIndex,
	}
}

// CloseTo reports whether other can share storage with v.
//
// Colors must match exactly; normal, tangent direction (xyz, the w handedness
// is ignored) and every UV set must match within a squared distance of
// 1e-10. Positions are not compared: callers
// only compare vertices sharing an origin index. The flat flag is a face
// setting and is not compared either.
func (v *Vertex) CloseTo(other *Vertex) bool {
	if v.RGBA != other.RGBA {
		return false
	}
	if v.Normal.Sub(other.Normal).LengthSquared() >= closeToEpsilonSq {
		return false
	}
	if tangentXYZ(v.Tangent).Sub(tangentXYZ(other.Tangent)).LengthSquared() >= closeToEpsilonSq {
		return false
	}
	for i := range v.UVs {
		if v.UVs[i].Sub(other.UVs[i]).LengthSquared() >= closeToEpsilonSq {
			return false
		}
	}
	return true
}

func tangentXYZ(t math.Vec4) math.Vec3 {
	return math.Vec3{X: t[0], Y: t[1], Z: t[2]}
}

// SetRGBA overwrites the packed color from a normalized RGBA vector.
func (v *Vertex) SetRGBA(c math.Vec4) {
	v.RGBA = PackRGBA(c)
}

// PackRGBA packs a normalized RGBA color into a uint32, R in the lowest byte.
// Components are clamped to [0, 1].
func PackRGBA(c math.Vec4) uint32 {
	var packed uint32
	for i := 3; i >= 0; i-- {
		ch := math32.Max(0, math32.Min(1, c[i]))
		packed = packed<<8 | uint32(ch*255)
	}
	return packed
}

// UnpackRGBA expands a packed color into normalized components.
func UnpackRGBA(rgba uint32) math.Vec4 {
	var c math.Vec4
	for i := 0; i < 4; i++ {
		c[i] = float32(rgba>>(8*i)&0xff) / 255
	}
	return c
}
