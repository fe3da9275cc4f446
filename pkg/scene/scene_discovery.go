package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name passed to -scene
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the YAML file (file type only)
}

// ListSceneFiles scans dir for *.yaml and *.yml scene files. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the scene file's header comments
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	// Fallback values come from the filename
	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if strings.HasPrefix(content, "Scene:") {
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		} else if strings.HasPrefix(content, "Description:") {
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range BuiltinSceneNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: builtinScenes[name].description,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	return append(scenes, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
