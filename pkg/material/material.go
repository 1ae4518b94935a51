package material

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
)

// Material describes the Phong surface attributes of a shape
type Material struct {
	Color     core.Vec3 // Surface color
	Ambient   float64   // Fraction of the light reflected regardless of orientation
	Diffuse   float64   // Fraction of the light scattered by a matte surface
	Specular  float64   // Strength of the highlight
	Shininess float64   // Size of the highlight; larger is smaller and tighter
}

// DefaultMaterial returns a white material with the standard Phong coefficients
func DefaultMaterial() Material {
	return Material{
		Color:     core.NewVec3(1, 1, 1),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200,
	}
}

// NewMaterial creates a default material with the given color
func NewMaterial(color core.Vec3) Material {
	m := DefaultMaterial()
	m.Color = color
	return m
}

// Equals compares two materials field by field within core.Epsilon
func (m Material) Equals(other Material) bool {
	return m.Color.Equals(other.Color) &&
		core.ApproxEqual(m.Ambient, other.Ambient) &&
		core.ApproxEqual(m.Diffuse, other.Diffuse) &&
		core.ApproxEqual(m.Specular, other.Specular) &&
		core.ApproxEqual(m.Shininess, other.Shininess)
}

// Validate checks that the coefficients are usable for shading
func (m Material) Validate() error {
	if m.Ambient < 0 || m.Diffuse < 0 || m.Specular < 0 {
		return fmt.Errorf("material coefficients must be non-negative (ambient %g, diffuse %g, specular %g)",
			m.Ambient, m.Diffuse, m.Specular)
	}
	if m.Shininess <= 0 {
		return fmt.Errorf("material shininess must be positive, got %g", m.Shininess)
	}
	return nil
}
