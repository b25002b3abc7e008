// Package convert builds rasterizer meshes from YAML mesh descriptions.
package convert

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
)

var (
	ErrNoName            = errors.New("mesh has no name")
	ErrNoMaterials       = errors.New("mesh has no materials")
	ErrDuplicateMaterial = errors.New("duplicate material")
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrPolygonSize       = errors.New("polygons need 3 or 4 vertices")
	ErrVertexIndex       = errors.New("vertex index out of range")
	ErrTooManyUVs        = errors.New("too many uv sets")
)

// Description is an authored mesh as read from a YAML file.
type Description struct {
	Name      string            `yaml:"name"`
	ShapeKeys int               `yaml:"shape_keys"`
	Materials []MaterialDesc    `yaml:"materials"`
	Vertices  []VertexDesc      `yaml:"vertices"`
	Polygons  []PolygonDesc     `yaml:"polygons"`
	Meta      map[string]string `yaml:"meta,omitempty"`
}

// MaterialDesc describes one material. ZSort defaults to true for blended
// materials.
type MaterialDesc struct {
	Name    string `yaml:"name"`
	Texture string `yaml:"texture"`
	Blend   string `yaml:"blend"`
	ZSort   *bool  `yaml:"zsort,omitempty"`
}

// VertexDesc is an authoring vertex. Its index in Description.Vertices is the
// origin index of every stored vertex created from it.
type VertexDesc struct {
	Pos     [3]float32   `yaml:"pos"`
	UV      [][2]float32 `yaml:"uv,omitempty"`
	Normal  [3]float32   `yaml:"normal"`
	Color   *[4]float32  `yaml:"color,omitempty"` // white when omitted
	Tangent [4]float32   `yaml:"tangent"`
}

// PolygonDesc is a triangle or quad referencing Description.Vertices.
type PolygonDesc struct {
	Material string `yaml:"material"`
	Verts    []int  `yaml:"verts"`
	Flat     bool   `yaml:"flat"`
	Visible  *bool  `yaml:"visible,omitempty"`
	Collider *bool  `yaml:"collider,omitempty"`
	TwoSided bool   `yaml:"two_sided"`
}

// Parse decodes and validates a YAML mesh description.
func Parse(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decode mesh description: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadFile reads and parses a mesh description file.
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mesh description: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Validate checks every cross reference of the description.
func (d *Description) Validate() error {
	if d.Name == "" {
		return ErrNoName
	}
	if len(d.Materials) == 0 {
		return fmt.Errorf("mesh %q: %w", d.Name, ErrNoMaterials)
	}
	if d.ShapeKeys < 0 {
		return fmt.Errorf("mesh %q: negative shape key count %d", d.Name, d.ShapeKeys)
	}

	seen := make(map[string]bool, len(d.Materials))
	for _, m := range d.Materials {
		if seen[m.Name] {
			return fmt.Errorf("material %q: %w", m.Name, ErrDuplicateMaterial)
		}
		seen[m.Name] = true
		if _, err := rasterizer.ParseBlendMode(m.Blend); err != nil {
			return fmt.Errorf("material %q: %w", m.Name, err)
		}
	}

	for i, v := range d.Vertices {
		if len(v.UV) > rasterizer.MaxUVUnits {
			return fmt.Errorf("vertex %d: %d sets: %w", i, len(v.UV), ErrTooManyUVs)
		}
	}

	for i, p := range d.Polygons {
		if !seen[p.Material] {
			return fmt.Errorf("polygon %d: material %q: %w", i, p.Material, ErrUnknownMaterial)
		}
		if len(p.Verts) != 3 && len(p.Verts) != 4 {
			return fmt.Errorf("polygon %d: %d vertices: %w", i, len(p.Verts), ErrPolygonSize)
		}
		for _, vi := range p.Verts {
			if vi < 0 || vi >= len(d.Vertices) {
				return fmt.Errorf("polygon %d: vertex %d: %w", i, vi, ErrVertexIndex)
			}
		}
	}
	return nil
}
