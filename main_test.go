package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"materials scene", "materials", false},
		{"random scene", "random", false},
		{"spheregrid scene", "spheregrid", false},

		// Scene files (by name)
		{"two-spheres file", "two-spheres", false},
		{"glass-and-metal file", "glass-and-metal", false},

		// Scene files (by path)
		{"direct file path", "scenes/two-spheres.yaml", false},
		{"direct file path 2", "scenes/bouncing-balls.yaml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid file path", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 1, renderer.CameraConfig{Width: 48})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}

			// The width override applies to every scene source
			if scene.CameraConfig.Width != 48 {
				t.Errorf("Expected width override 48, got %d", scene.CameraConfig.Width)
			}
			if err := scene.Preprocess(); err != nil {
				t.Errorf("Preprocess() error for '%s': %v", tt.sceneType, err)
			}
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name      string
		sceneType string
		format    renderer.ImageFormat
		expected  string
	}{
		{"built-in scene", "default", renderer.FormatPNG, filepath.Join("output", "default", "render_20240305_140709.png")},
		{"ppm format", "random", renderer.FormatPPM, filepath.Join("output", "random", "render_20240305_140709.ppm")},
		{"scene file path", "scenes/two-spheres.yaml", renderer.FormatPNG, filepath.Join("output", "two-spheres", "render_20240305_140709.png")},
		{"nested file path", "scenes/subdir/my-scene.yml", renderer.FormatPNG, filepath.Join("output", "my-scene", "render_20240305_140709.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := createOutputPath(tt.sceneType, tt.format, now)
			if outputPath != tt.expected {
				t.Errorf("Expected output path '%s', got '%s'", tt.expected, outputPath)
			}
			if !strings.HasPrefix(outputPath, "output") {
				t.Errorf("Expected output path under 'output', got '%s'", outputPath)
			}
		})
	}
}

func TestIsSceneFilePath(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"scenes/a.yaml", true},
		{"b.YML", true},
		{"default", false},
		{"scene.pbrt", false},
	}

	for _, tt := range tests {
		if got := isSceneFilePath(tt.input); got != tt.expected {
			t.Errorf("isSceneFilePath(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
