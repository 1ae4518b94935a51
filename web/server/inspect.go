package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeID      uint64                 `json:"shapeId,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	InShadow     bool                   `json:"inShadow"`
	Color        string                 `json:"color,omitempty"` // Shaded color at the hit, as #rrggbb
	Material     MaterialInfo           `json:"material"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// MaterialInfo describes the Phong parameters of the hit shape
type MaterialInfo struct {
	Color     string     `json:"color"`
	RGB       [3]float64 `json:"rgb"`
	Ambient   float64    `json:"ambient"`
	Diffuse   float64    `json:"diffuse"`
	Specular  float64    `json:"specular"`
	Shininess float64    `json:"shininess"`
}

// InspectResult is the first surface seen through a pixel
type InspectResult struct {
	Hit      bool
	Comps    geometry.Computations
	Color    core.Vec3
	InShadow bool
}

// inspectPixel casts the pixel's camera ray and shades the nearest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)

	hit, ok := sceneObj.World.Intersect(ray).Hit()
	if !ok {
		return InspectResult{}, nil
	}

	comps := geometry.PrepareComputations(hit, ray)
	color, err := sceneObj.World.ShadeHit(comps)
	if err != nil {
		return InspectResult{}, err
	}
	inShadow, err := sceneObj.World.IsShadowed(comps.OverPoint)
	if err != nil {
		return InspectResult{}, err
	}

	return InspectResult{Hit: true, Comps: comps, Color: color, InShadow: inShadow}, nil
}

// extractMaterialInfo reports a material's parameters
func extractMaterialInfo(m material.Material) MaterialInfo {
	return MaterialInfo{
		Color:     hexColor(m.Color),
		RGB:       vecArray(m.Color),
		Ambient:   m.Ambient,
		Diffuse:   m.Diffuse,
		Specular:  m.Specular,
		Shininess: m.Shininess,
	}
}

// extractGeometryInfo reports where a shape sits in world space
func extractGeometryInfo(shape geometry.Shape) map[string]interface{} {
	properties := make(map[string]interface{})
	transform := shape.Transform()

	switch shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(transform.MultiplyPoint(core.NewVec3(0, 0, 0)))
	case *geometry.Plane:
		properties["origin"] = vecArray(transform.MultiplyPoint(core.NewVec3(0, 0, 0)))
		properties["normal"] = vecArray(geometry.NormalAt(shape, transform.MultiplyPoint(core.NewVec3(0, 0, 0))))
	}

	rows := make([][]float64, transform.Size())
	for r := range rows {
		rows[r] = make([]float64, transform.Size())
		for c := range rows[r] {
			rows[r][c] = transform.At(r, c)
		}
	}
	properties["transform"] = rows
	return properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &SceneRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := sceneObj.Camera
	if pixelX < 0 || pixelX >= camera.HSize() || pixelY < 0 || pixelY >= camera.VSize() {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Pixel (%d, %d) out of bounds for %dx%d image", pixelX, pixelY, camera.HSize(), camera.VSize()),
		})
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	comps := result.Comps
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ShapeID:      uint64(comps.Shape.ID()),
		GeometryType: comps.Shape.Kind(),
		Point:        vecArray(comps.Point),
		Normal:       vecArray(comps.NormalV),
		Distance:     comps.T,
		Inside:       comps.Inside,
		InShadow:     result.InShadow,
		Color:        hexColor(result.Color),
		Material:     extractMaterialInfo(comps.Shape.Material()),
		Properties:   extractGeometryInfo(comps.Shape),
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a color the way the canvas would store it
func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", canvas.ColorToByte(c.X), canvas.ColorToByte(c.Y), canvas.ColorToByte(c.Z))
}
