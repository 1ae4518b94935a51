package geometry

import (
	"fmt"
	"sync/atomic"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// ShapeID identifies a shape within a scene
type ShapeID uint64

// IDSource hands out increasing shape identities.
// A scene builder owns one; the zero value starts at 1.
type IDSource struct {
	last atomic.Uint64
}

// Next returns the next unused identity
func (s *IDSource) Next() ShapeID {
	return ShapeID(s.last.Add(1))
}

// Shape interface for objects that can be hit by rays.
// Implementations work in object space; Intersect and NormalAt handle the
// conversion from world space using the cached inverse transform.
type Shape interface {
	ID() ShapeID
	Kind() string
	Transform() core.Matrix
	InverseTransform() core.Matrix
	Material() material.Material

	// LocalIntersect returns the t values where an object-space ray meets the shape, in ascending order
	LocalIntersect(ray core.Ray) []float64
	// LocalNormalAt returns the object-space normal at an object-space point
	LocalNormalAt(point core.Vec3) core.Vec3
}

// Intersect converts a world ray into object space and records each hit against s
func Intersect(s Shape, ray core.Ray) Intersections {
	localRay := ray.Transform(s.InverseTransform())
	ts := s.LocalIntersect(localRay)
	if len(ts) == 0 {
		return nil
	}

	xs := make(Intersections, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, Shape: s}
	}
	return xs
}

// NormalAt returns the unit world-space normal of s at a world-space point
func NormalAt(s Shape, point core.Vec3) core.Vec3 {
	inv := s.InverseTransform()
	localNormal := s.LocalNormalAt(inv.MultiplyPoint(point))
	// MultiplyVector drops the translation row, which keeps w at zero
	return inv.Transpose().MultiplyVector(localNormal).Normalize()
}

// Equal reports whether a and b share a material or a transform.
// This is a loose comparison; use SameShape to compare identities.
func Equal(a, b Shape) bool {
	return a.Material().Equals(b.Material()) || a.Transform().Equals(b.Transform())
}

// SameShape reports whether a and b are the same shape in a scene
func SameShape(a, b Shape) bool {
	return a.ID() == b.ID()
}

// shapeBase holds the state every shape carries
type shapeBase struct {
	id        ShapeID
	transform core.Matrix
	inverse   core.Matrix
	material  material.Material
}

func newShapeBase(id ShapeID, transform core.Matrix, mat material.Material) (shapeBase, error) {
	inverse, err := transform.Inverse()
	if err != nil {
		return shapeBase{}, fmt.Errorf("shape %d transform: %w", id, err)
	}
	return shapeBase{id: id, transform: transform, inverse: inverse, material: mat}, nil
}

func (b *shapeBase) ID() ShapeID                   { return b.id }
func (b *shapeBase) Transform() core.Matrix        { return b.transform }
func (b *shapeBase) InverseTransform() core.Matrix { return b.inverse }
func (b *shapeBase) Material() material.Material   { return b.material }
