package material

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Lighting shades a point with the Phong reflection model.
// eyeV and normalV must be unit vectors. The result is not clamped.
func Lighting(m Material, light *lights.PointLight, point, eyeV, normalV core.Vec3, inShadow bool) core.Vec3 {
	effectiveColor := m.Color.MultiplyVec(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)

	// Shadowed points only see the ambient term
	if inShadow {
		return ambient
	}

	lightV, _ := light.DirectionFrom(point)
	lightDotNormal := lightV.Dot(normalV)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Vec3{}
	reflectV := lightV.Negate().Reflect(normalV)
	if reflectDotEye := reflectV.Dot(eyeV); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
