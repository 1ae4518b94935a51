package scene

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// ShapeFactory constructs a shape with the identity it is given
type ShapeFactory func(id geometry.ShapeID) (geometry.Shape, error)

// Builder assembles a World and assigns shape identities.
// The first construction error is kept and reported by Build.
type Builder struct {
	ids    geometry.IDSource
	light  *lights.PointLight
	shapes []geometry.Shape
	err    error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// SetLight sets the world's light, replacing any earlier one
func (b *Builder) SetLight(light *lights.PointLight) *Builder {
	b.light = light
	return b
}

// AddSphere adds a unit sphere placed by transform
func (b *Builder) AddSphere(transform core.Matrix, mat material.Material) *Builder {
	return b.AddShape(func(id geometry.ShapeID) (geometry.Shape, error) {
		return geometry.NewSphere(id, transform, mat)
	})
}

// AddPlane adds an xz plane placed by transform
func (b *Builder) AddPlane(transform core.Matrix, mat material.Material) *Builder {
	return b.AddShape(func(id geometry.ShapeID) (geometry.Shape, error) {
		return geometry.NewPlane(id, transform, mat)
	})
}

// AddShape adds a shape built by factory
func (b *Builder) AddShape(factory ShapeFactory) *Builder {
	if b.err != nil {
		return b
	}

	shape, err := factory(b.ids.Next())
	if err != nil {
		b.err = fmt.Errorf("shape %d: %w", len(b.shapes), err)
		return b
	}
	b.shapes = append(b.shapes, shape)
	return b
}

// Build returns the assembled world
func (b *Builder) Build() (*World, error) {
	if b.err != nil {
		return nil, b.err
	}

	shapes := make([]geometry.Shape, len(b.shapes))
	copy(shapes, b.shapes)
	return &World{Light: b.light, Shapes: shapes}, nil
}
