package lights

import "github.com/df07/go-raycaster/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// PointLight is a light source with no size that emits equally in all directions
type PointLight struct {
	Position  core.Vec3 // Location of the light in world space
	Intensity core.Vec3 // Color and brightness of the light
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type returns the light type
func (l *PointLight) Type() LightType {
	return LightTypePoint
}

// DirectionFrom returns the unit vector from point toward the light and the distance to it
func (l *PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	return toLight.Normalize(), toLight.Length()
}

// Equals reports whether two lights have the same position and intensity
func (l *PointLight) Equals(other *PointLight) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Position.Equals(other.Position) && l.Intensity.Equals(other.Intensity)
}
