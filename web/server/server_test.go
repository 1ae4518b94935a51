package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/df07/go-raycaster/pkg/scene"
)

// get performs a GET request against a fresh server
func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewServer(0, t.TempDir())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) == 0 {
		t.Fatal("Expected at least one scene group")
	}

	found := false
	for _, info := range response.Groups[0].Scenes {
		if info.ID == "default-world" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected built-in group to list default-world, got %+v", response.Groups[0])
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := get(t, "/api/scene-config?scene=default-world")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ShapeCount int `json:"shapeCount"`
		Defaults   struct {
			Width       int     `json:"width"`
			Height      int     `json:"height"`
			FieldOfView float64 `json:"fieldOfView"`
		} `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.ShapeCount != 2 {
		t.Errorf("Expected 2 shapes, got %d", body.ShapeCount)
	}
	if body.Defaults.Width != 400 || body.Defaults.Height != 400 || body.Defaults.FieldOfView != 90 {
		t.Errorf("Unexpected defaults %+v", body.Defaults)
	}

	if rec := get(t, "/api/scene-config?scene=nonexistent"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown scene, got %d", rec.Code)
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
		wantErr  bool
	}{
		{"missing uses default", "", 7, false},
		{"valid value", "n=20", 20, false},
		{"at minimum", "n=1", 1, false},
		{"at maximum", "n=100", 100, false},
		{"below minimum", "n=0", 0, true},
		{"above maximum", "n=101", 0, true},
		{"not a number", "n=abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := parseIntParam(values, "n", 7, 1, 100)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntParam error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseFloatParam(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected float64
		wantErr  bool
	}{
		{"missing uses default", "", 0, false},
		{"valid value", "fov=60.5", 60.5, false},
		{"below minimum", "fov=0.5", 0, true},
		{"above maximum", "fov=180", 0, true},
		{"not a number", "fov=wide", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := parseFloatParam(values, "fov", 0, 1, 179)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFloatParam error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("Expected %g, got %g", tt.expected, got)
			}
		})
	}
}

func TestParseRenderRequest(t *testing.T) {
	s := NewServer(0, t.TempDir())

	r := httptest.NewRequest(http.MethodGet, "/api/render?scene=lit-sphere&width=64&height=32&tileSize=16&workers=3", nil)
	req, err := s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("parseRenderRequest failed: %v", err)
	}
	if req.Scene != "lit-sphere" || req.Width != 64 || req.Height != 32 || req.TileSize != 16 || req.Workers != 3 {
		t.Errorf("Unexpected request %+v", req)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/render", nil)
	req, err = s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("parseRenderRequest failed: %v", err)
	}
	if req.Scene != "default" || req.Width != 0 || req.TileSize != DefaultTileSize || req.Workers != 0 {
		t.Errorf("Unexpected defaults %+v", req)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/render?width=5", nil)
	if _, err := s.parseRenderRequest(r); err == nil {
		t.Error("Expected error for width below minimum")
	}
}
