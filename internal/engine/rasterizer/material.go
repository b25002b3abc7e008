package rasterizer

import "fmt"

// BlendMode selects how a material's fragments combine with the framebuffer.
type BlendMode int

const (
	BlendOpaque BlendMode = iota
	BlendAlpha
	BlendAdd
)

// String returns the config name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendOpaque:
		return "opaque"
	case BlendAlpha:
		return "alpha"
	case BlendAdd:
		return "add"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(b))
	}
}

// ParseBlendMode parses the names produced by BlendMode.String.
// The empty string means opaque.
func ParseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "", "opaque":
		return BlendOpaque, nil
	case "alpha":
		return BlendAlpha, nil
	case "add":
		return BlendAdd, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q", s)
	}
}

// Material is the renderer-side description of a polygon material.
// Materials are compared by identity.
type Material struct {
	Name        string
	TextureName string
	Blend       BlendMode
	ZSort       bool // Sort polygons by depth every frame
}

// IsAlpha reports whether the material blends with what is behind it.
func (m *Material) IsAlpha() bool {
	return m.Blend != BlendOpaque
}

// IsZSort reports whether slots of this material need per-frame polygon sorting.
func (m *Material) IsZSort() bool {
	return m.ZSort
}
