package geometry

import (
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
)

// Intersection records a ray crossing a shape at parameter T
type Intersection struct {
	T     float64
	Shape Shape
}

// Intersections is a list of crossings along a single ray
type Intersections []Intersection

// Sort orders the intersections by ascending t. Equal t values keep their order.
func (xs Intersections) Sort() {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}

// Hit returns the intersection with the smallest non-negative t.
// Intersections behind the ray origin are never selected.
func (xs Intersections) Hit() (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T < 0 {
			continue
		}
		if best < 0 || x.T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}

// Computations caches the values shading needs at an intersection
type Computations struct {
	T         float64
	Shape     Shape
	Point     core.Vec3 // World-space hit point
	EyeV      core.Vec3 // Unit vector back toward the eye
	NormalV   core.Vec3 // Unit surface normal, flipped to face the eye
	Inside    bool      // Whether the ray started inside the shape
	OverPoint core.Vec3 // Point nudged along the normal for shadow rays
}

// PrepareComputations derives the shading state for intersection x on ray
func PrepareComputations(x Intersection, ray core.Ray) Computations {
	point := ray.At(x.T)
	comps := Computations{
		T:       x.T,
		Shape:   x.Shape,
		Point:   point,
		EyeV:    ray.Direction.Negate(),
		NormalV: NormalAt(x.Shape, point),
	}

	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}

	comps.OverPoint = comps.Point.Add(comps.NormalV.Multiply(core.Epsilon))
	return comps
}
