package scene

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := core.Radians(h)
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	lc := math.Pow(l+0.3963377774*a+0.2158037573*b, 3)
	mc := math.Pow(l-0.1055613458*a-0.0638541728*b, 3)
	sc := math.Pow(l-0.0894841775*a-1.2914855480*b, 3)

	return core.NewVec3(
		4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a 10x10 grid of colored spheres on a gray plane
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	config := geometry.CameraConfig{
		Width:       800,
		Height:      450,
		FieldOfView: 40,
		From:        core.NewVec3(4.5, 6, -13),
		To:          core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
	}

	ground := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5))
	ground.Specular = 0

	b := NewBuilder().
		SetLight(lights.NewPointLight(core.NewVec3(-5, 20, -10), core.NewVec3(1, 1, 1))).
		AddPlane(core.Identity(), ground)

	const gridSize = 10
	const spacing = 1.0
	const radius = 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			// Hue varies across x, chroma across z
			hue := float64(i) / float64(gridSize-1) * 360
			chroma := 0.05 + float64(j)/float64(gridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			mat := material.NewMaterial(oklchToRGB(lightness, chroma, hue))
			mat.Diffuse = 0.7
			mat.Specular = 0.5
			mat.Shininess = 50 + 100*float64((i+j)%3)

			transform := core.Chain(
				core.Scaling(radius, radius, radius),
				core.Translation(float64(i)*spacing, radius, float64(j)*spacing),
			)
			b.AddSphere(transform, mat)
		}
	}

	world, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newScene("spheregrid", world, withOverrides(config, cameraOverrides))
}
