package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/scene"
)

var rootCmd = &cobra.Command{
	Use:   "raycast",
	Short: "Ray-casting renderer for spheres and planes",
	Long: `raycast renders scenes of spheres and planes lit by a single point light
using Phong shading with hard shadows. Scenes are either built in or described
in YAML files under scenes/.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createScene builds the scene for sceneType, applying any non-zero camera overrides
func createScene(sceneType string, overrides geometry.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	return scene.Create(sceneType, overrides)
}

// createOutputDir returns output/<scene> where <scene> is the built-in name,
// the name after "yaml:" or the base name of a scene file
func createOutputDir(sceneType string) string {
	name := strings.TrimPrefix(sceneType, "yaml:")
	if loaders.IsSceneFile(name) {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return filepath.Join("output", name)
}
