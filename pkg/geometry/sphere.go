package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Sphere is a unit sphere centered at the object-space origin.
// Position and size come from its transform.
type Sphere struct {
	shapeBase
}

// NewSphere creates a new sphere. It fails if transform cannot be inverted.
func NewSphere(id ShapeID, transform core.Matrix, mat material.Material) (*Sphere, error) {
	base, err := newShapeBase(id, transform, mat)
	if err != nil {
		return nil, err
	}
	return &Sphere{shapeBase: base}, nil
}

// Kind returns "sphere"
func (s *Sphere) Kind() string {
	return "sphere"
}

// LocalIntersect solves the ray/unit sphere quadratic
func (s *Sphere) LocalIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	// A tangent ray reports the same t twice
	return []float64{t1, t2}
}

// LocalNormalAt points from the center to the surface point
func (s *Sphere) LocalNormalAt(point core.Vec3) core.Vec3 {
	return point
}
