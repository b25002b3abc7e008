package deformer

import "github.com/Faultbox/meshras/pkg/math"

// RotKey is a bone rotation at a frame.
type RotKey struct {
	Frame    float32
	Rotation math.Quat
}

// PosKey is a bone translation at a frame.
type PosKey struct {
	Frame  float32
	Offset math.Vec3
}

// surrounding returns the keys around t and the blend factor between them.
// Keys must be sorted by frame. prev == next when t is outside the keyed range.
func surrounding(n int, frame func(i int) float32, t float32) (prev, next int, f float32) {
	for i := 0; i < n; i++ {
		if frame(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	f0, f1 := frame(prev), frame(next)
	if f1 != f0 {
		f = (t - f0) / (f1 - f0)
	}
	return prev, next, f
}

// InterpolateRotKeys slerps rotation keys at time t.
func InterpolateRotKeys(keys []RotKey, t float32) math.Quat {
	switch len(keys) {
	case 0:
		return math.QuatIdentity()
	case 1:
		return keys[0].Rotation
	}
	prev, next, f := surrounding(len(keys), func(i int) float32 { return keys[i].Frame }, t)
	if prev == next {
		return keys[prev].Rotation
	}
	return keys[prev].Rotation.Slerp(keys[next].Rotation, f)
}

// InterpolatePosKeys lerps translation keys at time t.
func InterpolatePosKeys(keys []PosKey, t float32) math.Vec3 {
	switch len(keys) {
	case 0:
		return math.Vec3{}
	case 1:
		return keys[0].Offset
	}
	prev, next, f := surrounding(len(keys), func(i int) float32 { return keys[i].Frame }, t)
	if prev == next {
		return keys[prev].Offset
	}
	return keys[prev].Offset.Lerp(keys[next].Offset, f)
}
