package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Plane is the infinite xz plane through the object-space origin
type Plane struct {
	shapeBase
}

// NewPlane creates a new plane. It fails if transform cannot be inverted.
func NewPlane(id ShapeID, transform core.Matrix, mat material.Material) (*Plane, error) {
	base, err := newShapeBase(id, transform, mat)
	if err != nil {
		return nil, err
	}
	return &Plane{shapeBase: base}, nil
}

// Kind returns "plane"
func (p *Plane) Kind() string {
	return "plane"
}

// LocalIntersect returns the single crossing of the xz plane, if any
func (p *Plane) LocalIntersect(ray core.Ray) []float64 {
	// Parallel or coplanar rays never cross
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// LocalNormalAt is constant across the plane
func (p *Plane) LocalNormalAt(point core.Vec3) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}
