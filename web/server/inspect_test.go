package server

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
)

func TestHandleInspect_Hit(t *testing.T) {
	// The center pixel of an odd-sized image looks straight down the z axis
	rec := get(t, "/api/inspect?scene=default-world&width=17&height=17&x=8&y=8")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if !response.Hit {
		t.Fatal("Expected a hit")
	}
	if response.GeometryType != "sphere" || response.ShapeID != 1 {
		t.Errorf("Expected outer sphere (id 1), got %s id %d", response.GeometryType, response.ShapeID)
	}
	if math.Abs(response.Distance-4) > 1e-4 {
		t.Errorf("Expected distance 4, got %f", response.Distance)
	}
	expectedPoint := [3]float64{0, 0, -1}
	expectedNormal := [3]float64{0, 0, -1}
	for i := 0; i < 3; i++ {
		if math.Abs(response.Point[i]-expectedPoint[i]) > 1e-4 {
			t.Errorf("Expected point %v, got %v", expectedPoint, response.Point)
			break
		}
		if math.Abs(response.Normal[i]-expectedNormal[i]) > 1e-4 {
			t.Errorf("Expected normal %v, got %v", expectedNormal, response.Normal)
			break
		}
	}
	if response.Inside || response.InShadow {
		t.Errorf("Expected outside, unshadowed hit, got inside=%v inShadow=%v", response.Inside, response.InShadow)
	}
	if response.Material.Color != "#ccff99" || response.Material.Diffuse != 0.7 || response.Material.Specular != 0.2 {
		t.Errorf("Unexpected material %+v", response.Material)
	}
	if response.Color == "" || response.Color == "#000000" {
		t.Errorf("Expected a lit color, got %q", response.Color)
	}
	if _, ok := response.Properties["center"]; !ok {
		t.Errorf("Expected sphere center in properties, got %v", response.Properties)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := get(t, "/api/inspect?scene=default-world&width=17&height=17&x=0&y=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Hit {
		t.Errorf("Expected the corner ray to miss, got %+v", response)
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing x", "/api/inspect?scene=default-world&y=1"},
		{"invalid y", "/api/inspect?scene=default-world&x=1&y=top"},
		{"x out of bounds", "/api/inspect?scene=default-world&width=17&height=17&x=17&y=0"},
		{"negative y", "/api/inspect?scene=default-world&width=17&height=17&x=0&y=-1"},
		{"unknown scene", "/api/inspect?scene=nonexistent&x=0&y=0"},
		{"invalid width", "/api/inspect?scene=default-world&width=9999&x=0&y=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestExtractGeometryInfo(t *testing.T) {
	var ids geometry.IDSource
	plane, err := geometry.NewPlane(ids.Next(), core.Translation(0, -1, 0), material.DefaultMaterial())
	if err != nil {
		t.Fatalf("NewPlane failed: %v", err)
	}

	properties := extractGeometryInfo(plane)
	origin, ok := properties["origin"].([3]float64)
	if !ok || origin != [3]float64{0, -1, 0} {
		t.Errorf("Expected plane origin (0,-1,0), got %v", properties["origin"])
	}
	normal, ok := properties["normal"].([3]float64)
	if !ok || math.Abs(normal[1]-1) > 1e-9 {
		t.Errorf("Expected plane normal (0,1,0), got %v", properties["normal"])
	}
	rows, ok := properties["transform"].([][]float64)
	if !ok || len(rows) != 4 || rows[1][3] != -1 {
		t.Errorf("Unexpected transform %v", properties["transform"])
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		color    core.Vec3
		expected string
	}{
		{core.NewVec3(0, 0, 0), "#000000"},
		{core.NewVec3(1, 1, 1), "#ffffff"},
		{core.NewVec3(1.5, -0.5, 0.5), "#ff0080"},
	}

	for _, tt := range tests {
		if got := hexColor(tt.color); got != tt.expected {
			t.Errorf("hexColor(%v): expected %s, got %s", tt.color, tt.expected, got)
		}
	}
}
