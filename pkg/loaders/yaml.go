package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Vec is a YAML triple such as [0, 1.5, -5]
type Vec [3]float64

// Vec3 converts to a core vector
func (v Vec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneDescription is the document structure of a YAML scene file
type SceneDescription struct {
	Name        string             `yaml:"name"`        // Scene name
	Description string             `yaml:"description"` // Optional description
	Group       string             `yaml:"group"`       // Grouping category for listings
	Variant     string             `yaml:"variant"`     // Variant name (optional)
	Camera      CameraDescription  `yaml:"camera"`
	Light       *LightDescription  `yaml:"light"`
	Shapes      []ShapeDescription `yaml:"shapes"`
}

// CameraDescription holds camera settings. Zero values mean "use the default".
type CameraDescription struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FieldOfView float64 `yaml:"fov"` // Degrees
	From        *Vec    `yaml:"from"`
	To          *Vec    `yaml:"to"`
	Up          *Vec    `yaml:"up"`
}

// LightDescription describes the scene's point light
type LightDescription struct {
	Position  Vec  `yaml:"position"`
	Intensity *Vec `yaml:"intensity"` // Defaults to white
}

// ShapeDescription describes one sphere or plane
type ShapeDescription struct {
	Type      string               `yaml:"type"`      // "sphere" or "plane"
	Transform []TransformStep      `yaml:"transform"` // Applied in the order listed
	Material  *MaterialDescription `yaml:"material"`
}

// TransformStep is a single transform; exactly one field must be set
type TransformStep struct {
	Translate *Vec        `yaml:"translate"`
	Scale     *Vec        `yaml:"scale"`
	RotateX   *float64    `yaml:"rotate-x"` // Degrees
	RotateY   *float64    `yaml:"rotate-y"` // Degrees
	RotateZ   *float64    `yaml:"rotate-z"` // Degrees
	Shear     *[6]float64 `yaml:"shear"`    // xy, xz, yx, yz, zx, zy
}

// MaterialDescription overrides fields of the default material
type MaterialDescription struct {
	Color     *Vec     `yaml:"color"`
	Ambient   *float64 `yaml:"ambient"`
	Diffuse   *float64 `yaml:"diffuse"`
	Specular  *float64 `yaml:"specular"`
	Shininess *float64 `yaml:"shininess"`
}

// Shape types understood by the loader
const (
	ShapeTypeSphere = "sphere"
	ShapeTypePlane  = "plane"
)

// ParseScene decodes and validates a YAML scene from reader.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseScene(reader io.Reader) (*SceneDescription, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadSceneFile loads and parses a YAML scene file
func LoadSceneFile(filename string) (*SceneDescription, error) {
	if err := ValidateScenePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// LoadSceneMetadata reads only the descriptive fields of a scene file
func LoadSceneMetadata(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	var desc SceneDescription
	if err := yaml.NewDecoder(file).Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &desc, nil
}

// ValidateScenePath rejects empty paths, directory traversal and non-YAML files
func ValidateScenePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	for _, part := range strings.Split(filepath.ToSlash(filename), "/") {
		if part == ".." {
			return fmt.Errorf("invalid file path: directory traversal not allowed")
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("invalid file type: only .yaml and .yml files are allowed")
	}
	return nil
}

// IsSceneFile reports whether name looks like a YAML scene file
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks the description for values the scene builder cannot use
func (d *SceneDescription) Validate() error {
	if d.Camera.Width < 0 || d.Camera.Height < 0 {
		return fmt.Errorf("camera: size must not be negative, got %dx%d", d.Camera.Width, d.Camera.Height)
	}
	if d.Camera.FieldOfView < 0 || d.Camera.FieldOfView >= 180 {
		return fmt.Errorf("camera.fov: must be between 0 and 180 degrees, got %g", d.Camera.FieldOfView)
	}
	if d.Light == nil {
		return fmt.Errorf("light: a point light is required")
	}
	if len(d.Shapes) == 0 {
		return fmt.Errorf("shapes: at least one shape is required")
	}

	for i, shape := range d.Shapes {
		if shape.Type != ShapeTypeSphere && shape.Type != ShapeTypePlane {
			return fmt.Errorf("shapes[%d].type: unknown shape type %q", i, shape.Type)
		}
		for j, step := range shape.Transform {
			if n := step.count(); n != 1 {
				return fmt.Errorf("shapes[%d].transform[%d]: expected exactly one operation, got %d", i, j, n)
			}
		}
		if shape.Material != nil {
			if err := shape.Material.Apply(material.DefaultMaterial()).Validate(); err != nil {
				return fmt.Errorf("shapes[%d].material: %w", i, err)
			}
		}
	}
	return nil
}

func (s TransformStep) count() int {
	n := 0
	if s.Translate != nil {
		n++
	}
	if s.Scale != nil {
		n++
	}
	if s.RotateX != nil {
		n++
	}
	if s.RotateY != nil {
		n++
	}
	if s.RotateZ != nil {
		n++
	}
	if s.Shear != nil {
		n++
	}
	return n
}

// Matrix returns the transform for a single step
func (s TransformStep) Matrix() core.Matrix {
	switch {
	case s.Translate != nil:
		return core.Translation(s.Translate[0], s.Translate[1], s.Translate[2])
	case s.Scale != nil:
		return core.Scaling(s.Scale[0], s.Scale[1], s.Scale[2])
	case s.RotateX != nil:
		return core.RotationX(core.Radians(*s.RotateX))
	case s.RotateY != nil:
		return core.RotationY(core.Radians(*s.RotateY))
	case s.RotateZ != nil:
		return core.RotationZ(core.Radians(*s.RotateZ))
	case s.Shear != nil:
		sh := s.Shear
		return core.Shearing(sh[0], sh[1], sh[2], sh[3], sh[4], sh[5])
	default:
		return core.Identity()
	}
}

// Matrix chains the shape's transform steps in the order they are listed
func (s ShapeDescription) Matrix() core.Matrix {
	steps := make([]core.Matrix, len(s.Transform))
	for i, step := range s.Transform {
		steps[i] = step.Matrix()
	}
	return core.Chain(steps...)
}

// Apply returns base with the overridden fields replaced. A nil description returns base.
func (m *MaterialDescription) Apply(base material.Material) material.Material {
	if m == nil {
		return base
	}
	result := base
	if m.Color != nil {
		result.Color = m.Color.Vec3()
	}
	if m.Ambient != nil {
		result.Ambient = *m.Ambient
	}
	if m.Diffuse != nil {
		result.Diffuse = *m.Diffuse
	}
	if m.Specular != nil {
		result.Specular = *m.Specular
	}
	if m.Shininess != nil {
		result.Shininess = *m.Shininess
	}
	return result
}
