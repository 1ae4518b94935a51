package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raycaster/pkg/loaders"
)

const (
	yamlScenePrefix   = "yaml:"
	builtinSceneGroup = "Built-in Scenes"
	defaultYAMLGroup  = "YAML Scenes"
)

// scenesDirs are searched in order for YAML scene files
var scenesDirs = []string{"scenes", "../scenes"}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "yaml"
	FilePath    string `json:"filePath"`    // Path to YAML file (yaml type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltinScenes describes the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	builtin := func(id, name, description string) SceneInfo {
		return SceneInfo{
			ID:          id,
			Name:        name,
			DisplayName: name,
			Description: description,
			Group:       builtinSceneGroup,
			Type:        "builtin",
		}
	}

	return []SceneInfo{
		builtin("default", "Default Scene", "Three spheres resting on a plane"),
		builtin("three-spheres", "Three Spheres", "Three spheres in a room of flattened spheres"),
		builtin("default-world", "Default World", "Green sphere around a smaller white sphere"),
		builtin("lit-sphere", "Lit Sphere", "A single purple sphere"),
		builtin("spheregrid", "Sphere Grid", "10x10 grid of rainbow-colored spheres"),
	}
}

// findScenesDir returns the first scenes directory that exists, or ""
func findScenesDir() string {
	for _, path := range scenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// findSceneFile resolves a scene name from the scenes directory to a file path
func findSceneFile(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid scene name %q", ErrUnknownScene, name)
	}

	dir := findScenesDir()
	if dir == "" {
		return "", fmt.Errorf("%w: no scenes directory for %q", ErrUnknownScene, name)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q not found in %s", ErrUnknownScene, name, dir)
}

// ListYAMLScenes scans the scenes directory and returns discovered YAML scenes
func ListYAMLScenes() ([]SceneInfo, error) {
	dir := findScenesDir()
	if dir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return listYAMLScenesIn(dir)
}

func listYAMLScenesIn(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !loaders.IsSceneFile(entry.Name()) {
			continue
		}
		scenes = append(scenes, ParseSceneMetadata(filepath.Join(dir, entry.Name())))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the descriptive fields of a YAML scene file.
// Unreadable files keep the values derived from the file name.
func ParseSceneMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          yamlScenePrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       defaultYAMLGroup,
		Type:        "yaml",
		FilePath:    filePath,
	}

	desc, err := loaders.LoadSceneMetadata(filePath)
	if err != nil {
		return info
	}

	if desc.Name != "" {
		info.Name = desc.Name
	}
	if desc.Group != "" {
		info.Group = desc.Group
	}
	info.Description = desc.Description
	info.Variant = desc.Variant

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}
	return info
}

// ListScenes returns both built-in and YAML scenes, grouped by category.
// Built-in scenes come first, the remaining groups are alphabetical.
func ListScenes() (ScenesResponse, error) {
	yamlScenes, err := ListYAMLScenes()
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("failed to list YAML scenes: %w", err)
	}
	return groupScenes(append(BuiltinScenes(), yamlScenes...)), nil
}

func groupScenes(all []SceneInfo) ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range all {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinSceneGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[builtinSceneGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinSceneGroup,
			Scenes: builtInGroup,
		})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}
	return response
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
