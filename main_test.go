package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"three-spheres scene", "three-spheres", false},
		{"default-world scene", "default-world", false},
		{"lit-sphere scene", "lit-sphere", false},
		{"spheregrid scene", "spheregrid", false},

		// YAML scenes (by name)
		{"showcase YAML", "yaml:showcase", false},
		{"shadow-room YAML", "yaml:shadow-room", false},

		// YAML scenes (by path)
		{"direct YAML path", "scenes/showcase.yaml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid YAML path", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, geometry.CameraConfig{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
			if s.World.Light == nil {
				t.Error("Expected scene to have a light")
			}
			if len(s.World.Shapes) == 0 {
				t.Error("Expected scene to have shapes")
			}
		})
	}
}

func TestCreateScene_SizeOverride(t *testing.T) {
	s, err := createScene("yaml:showcase", geometry.CameraConfig{Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.Camera.HSize() != 64 || s.Camera.VSize() != 48 {
		t.Errorf("Expected 64x48 camera, got %dx%d", s.Camera.HSize(), s.Camera.VSize())
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"YAML scene by name", "yaml:showcase", filepath.Join("output", "showcase")},
		{"YAML file path", "scenes/shadow-room.yaml", filepath.Join("output", "shadow-room")},
		{"nested YAML path", "scenes/subdir/my-scene.yml", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		explicit bool
		output   string
		expected canvas.Format
		wantErr  bool
	}{
		{"default format", "png", false, "", canvas.FormatPNG, false},
		{"explicit format", "bmp", true, "", canvas.FormatBMP, false},
		{"format from output", "png", false, "out.ppm", canvas.FormatPPM, false},
		{"explicit beats output", "ppm6", true, "out.ppm", canvas.FormatPPM6, false},
		{"unknown format", "gif", true, "", "", true},
		{"unknown output extension", "png", false, "out.gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.explicit, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderToFile(t *testing.T) {
	for _, sequential := range []bool{true, false} {
		name := "parallel"
		if sequential {
			name = "sequential"
		}
		t.Run(name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "render.ppm")
			opts := renderOptions{
				sceneType:  "default-world",
				overrides:  geometry.CameraConfig{Width: 11, Height: 11},
				config:     renderer.RenderConfig{TileSize: 4, NumWorkers: 2},
				format:     canvas.FormatPPM,
				output:     output,
				sequential: sequential,
			}

			filename, err := renderToFile(context.Background(), opts, core.NopLogger{})
			if err != nil {
				t.Fatalf("renderToFile failed: %v", err)
			}
			if filename != output {
				t.Errorf("Expected output %s, got %s", output, filename)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("Failed to read render: %v", err)
			}
			lines := strings.Split(string(data), "\n")
			if lines[0] != "P3" || lines[1] != "11 11" {
				t.Errorf("Unexpected header %q", lines[:2])
			}
			// Pixel (5,5) of the default world is (0.38066, 0.47583, 0.2855)
			if got := lines[3+5*11+5]; got != "98 122 73" {
				t.Errorf("Expected center pixel %q, got %q", "98 122 73", got)
			}
		})
	}
}

func TestPrintScenes(t *testing.T) {
	response := scene.ScenesResponse{Groups: []scene.SceneGroup{
		{Name: "Built-in Scenes", Scenes: []scene.SceneInfo{{ID: "default", DisplayName: "Default Scene", Description: "Spheres"}}},
		{Name: "Examples", Scenes: []scene.SceneInfo{{ID: "yaml:showcase", DisplayName: "Showcase"}}},
	}}

	var buf bytes.Buffer
	printScenes(&buf, response)
	out := buf.String()

	for _, expected := range []string{"Built-in Scenes:", "default", "Default Scene - Spheres", "Examples:", "yaml:showcase"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected output to contain %q, got:\n%s", expected, out)
		}
	}
}
