package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/material"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *World
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
}

// newScene creates the camera for config and bundles it with world
func newScene(name string, world *World, config geometry.CameraConfig) (*Scene, error) {
	camera, err := geometry.NewCameraFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return &Scene{
		Name:         name,
		World:        world,
		Camera:       camera,
		CameraConfig: config,
	}, nil
}

// NewSceneFromDescription builds a scene from a parsed YAML description.
// Camera fields left out of the description fall back to geometry.DefaultCameraConfig.
func NewSceneFromDescription(desc *loaders.SceneDescription, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	builder := NewBuilder()

	if desc.Light != nil {
		intensity := core.NewVec3(1, 1, 1)
		if desc.Light.Intensity != nil {
			intensity = desc.Light.Intensity.Vec3()
		}
		builder.SetLight(lights.NewPointLight(desc.Light.Position.Vec3(), intensity))
	}

	for _, shape := range desc.Shapes {
		mat := shape.Material.Apply(material.DefaultMaterial())
		switch shape.Type {
		case loaders.ShapeTypeSphere:
			builder.AddSphere(shape.Matrix(), mat)
		case loaders.ShapeTypePlane:
			builder.AddPlane(shape.Matrix(), mat)
		default:
			return nil, fmt.Errorf("scene %s: unknown shape type %q", desc.Name, shape.Type)
		}
	}

	world, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", desc.Name, err)
	}

	config := geometry.MergeCameraConfig(geometry.DefaultCameraConfig(), descriptionCamera(desc.Camera))
	if len(cameraOverrides) > 0 {
		config = geometry.MergeCameraConfig(config, cameraOverrides[0])
	}

	return newScene(desc.Name, world, config)
}

func descriptionCamera(c loaders.CameraDescription) geometry.CameraConfig {
	config := geometry.CameraConfig{
		Width:       c.Width,
		Height:      c.Height,
		FieldOfView: c.FieldOfView,
	}
	if c.From != nil {
		config.From = c.From.Vec3()
	}
	if c.To != nil {
		config.To = c.To.Vec3()
	}
	if c.Up != nil {
		config.Up = c.Up.Vec3()
	}
	return config
}

// LoadScene loads a YAML scene file. The file name stands in for a missing scene name.
func LoadScene(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return NewSceneFromDescription(desc, cameraOverrides...)
}

// Create returns the scene for id: a built-in scene name, a "yaml:<name>" scene
// from the scenes directory, or a path to a YAML file.
func Create(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if constructor, ok := builtinScenes[id]; ok {
		return constructor(cameraOverrides...)
	}

	path, err := ResolveSceneFile(id)
	if err != nil {
		return nil, err
	}
	return LoadScene(path, cameraOverrides...)
}

// ResolveSceneFile returns the YAML file behind a "yaml:<name>" id or a scene path.
// Built-in scene names have no file and return ErrUnknownScene.
func ResolveSceneFile(id string) (string, error) {
	if name, ok := strings.CutPrefix(id, yamlScenePrefix); ok {
		return findSceneFile(name)
	}
	if loaders.IsSceneFile(id) {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScene, id)
}
