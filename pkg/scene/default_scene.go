package scene

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// SceneConstructor builds a built-in scene, optionally overriding its camera
type SceneConstructor func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

var builtinScenes = map[string]SceneConstructor{
	"default":       NewDefaultScene,
	"three-spheres": NewThreeSpheresScene,
	"default-world": NewDefaultWorldScene,
	"lit-sphere":    NewLitSphereScene,
	"spheregrid":    NewSphereGridScene,
}

// withOverrides merges the first camera override, if any, into config
func withOverrides(config geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(config, overrides[0])
	}
	return config
}

// whiteLight is the light used by the showcase scenes
func whiteLight() *lights.PointLight {
	return lights.NewPointLight(core.NewVec3(-10, 10, -10), core.NewVec3(1, 1, 1))
}

// addShowcaseSpheres adds the green, lime and yellow spheres shared by the showcase scenes
func addShowcaseSpheres(b *Builder) *Builder {
	middle := material.NewMaterial(core.NewVec3(0.1, 1, 0.5))
	middle.Diffuse = 0.7
	middle.Specular = 0.3
	b.AddSphere(core.Translation(-0.5, 1, 0.5), middle)

	right := material.NewMaterial(core.NewVec3(0.5, 1, 0.1))
	right.Diffuse = 0.7
	right.Specular = 0.3
	b.AddSphere(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)), right)

	left := material.NewMaterial(core.NewVec3(1, 0.8, 0.1))
	left.Diffuse = 0.7
	left.Specular = 0.3
	b.AddSphere(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)), left)

	return b
}

// NewDefaultScene creates three spheres resting on a plane
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	b := NewBuilder().
		SetLight(whiteLight()).
		AddPlane(core.Identity(), material.DefaultMaterial())
	addShowcaseSpheres(b)

	world, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newScene("default", world, withOverrides(geometry.DefaultCameraConfig(), cameraOverrides))
}

// NewThreeSpheresScene creates three spheres in a room made of flattened spheres
func NewThreeSpheresScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	wallMaterial := material.NewMaterial(core.NewVec3(1, 0.9, 0.9))
	wallMaterial.Specular = 0

	flat := core.Scaling(10, 0.01, 10)
	wall := func(angle float64) core.Matrix {
		return core.Chain(flat, core.RotationX(math.Pi/2), core.RotationY(angle), core.Translation(0, 0, 5))
	}

	b := NewBuilder().
		SetLight(whiteLight()).
		AddSphere(flat, wallMaterial).
		AddSphere(wall(-math.Pi/4), wallMaterial).
		AddSphere(wall(math.Pi/4), wallMaterial)
	addShowcaseSpheres(b)

	world, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newScene("three-spheres", world, withOverrides(geometry.DefaultCameraConfig(), cameraOverrides))
}

// NewDefaultWorld creates the canonical two-sphere world: a green outer
// sphere and a white inner sphere of half the size, lit from above left.
func NewDefaultWorld() *World {
	outer := material.NewMaterial(core.NewVec3(0.8, 1.0, 0.6))
	outer.Diffuse = 0.7
	outer.Specular = 0.2

	world, err := NewBuilder().
		SetLight(whiteLight()).
		AddSphere(core.Identity(), outer).
		AddSphere(core.Scaling(0.5, 0.5, 0.5), material.DefaultMaterial()).
		Build()
	if err != nil {
		// Every transform above is invertible
		panic(err)
	}
	return world
}

// NewDefaultWorldScene views the default world from the front
func NewDefaultWorldScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	config := geometry.CameraConfig{
		Width:       400,
		Height:      400,
		FieldOfView: 90,
		From:        core.NewVec3(0, 0, -5),
		To:          core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return newScene("default-world", NewDefaultWorld(), withOverrides(config, cameraOverrides))
}

// NewLitSphereScene creates a single purple sphere
func NewLitSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	world, err := NewBuilder().
		SetLight(whiteLight()).
		AddSphere(core.Identity(), material.NewMaterial(core.NewVec3(1, 0.2, 1))).
		Build()
	if err != nil {
		return nil, err
	}

	config := geometry.CameraConfig{
		Width:       400,
		Height:      400,
		FieldOfView: 30,
		From:        core.NewVec3(0, 0, -5),
		To:          core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
	return newScene("lit-sphere", world, withOverrides(config, cameraOverrides))
}
