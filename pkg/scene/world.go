package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// ErrNoLight is returned when shading is attempted in a world without a light
var ErrNoLight = errors.New("world has no light")

// World is the frozen set of shapes and the light that illuminates them.
// It is safe for concurrent reads once built.
type World struct {
	Light  *lights.PointLight
	Shapes []geometry.Shape
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{Shapes: make([]geometry.Shape, 0)}
}

// Intersect collects every intersection of ray with the world's shapes, ordered by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, shape := range w.Shapes {
		xs = append(xs, geometry.Intersect(shape, ray)...)
	}
	xs.Sort()
	return xs
}

// ShadeHit returns the color at a prepared intersection, including shadows
func (w *World) ShadeHit(comps geometry.Computations) (core.Vec3, error) {
	if w.Light == nil {
		return core.Vec3{}, fmt.Errorf("shade hit on shape %d: %w", comps.Shape.ID(), ErrNoLight)
	}

	shadowed, err := w.IsShadowed(comps.OverPoint)
	if err != nil {
		return core.Vec3{}, err
	}

	return material.Lighting(
		comps.Shape.Material(),
		w.Light,
		comps.Point,
		comps.EyeV,
		comps.NormalV,
		shadowed,
	), nil
}

// ColorAt traces ray into the world. A ray that hits nothing is black.
func (w *World) ColorAt(ray core.Ray) (core.Vec3, error) {
	hit, ok := w.Intersect(ray).Hit()
	if !ok {
		return core.Vec3{}, nil
	}
	return w.ShadeHit(geometry.PrepareComputations(hit, ray))
}

// IsShadowed reports whether something lies between point and the light
func (w *World) IsShadowed(point core.Vec3) (bool, error) {
	if w.Light == nil {
		return false, ErrNoLight
	}

	direction, distance := w.Light.DirectionFrom(point)
	hit, ok := w.Intersect(core.NewRay(point, direction)).Hit()
	return ok && hit.T < distance, nil
}
