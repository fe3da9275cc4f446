package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name, scene file name or path to a .yaml scene file")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	seed := flag.Int64("seed", 1, "Random seed for sampling and randomized scenes")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	output := flag.String("output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
		return
	}

	if *list {
		printScenes()
		return
	}

	imageFormat, err := renderer.ParseImageFormat(*format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Weekend Raytracer...")

	selectedScene, err := createScene(*sceneType, *seed, renderer.CameraConfig{Width: *width})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	selectedScene.SamplingConfig = renderer.MergeSamplingConfig(selectedScene.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: *samples,
		MaxDepth:        *maxDepth,
	})

	if err := selectedScene.Preprocess(); err != nil {
		fmt.Printf("Error preparing scene: %v\n", err)
		os.Exit(1)
	}

	logger := renderer.NewDefaultLogger()
	imgWidth, imgHeight := selectedScene.Camera.ImageSize()
	logger.Printf("Scene %q: %d primitives, %s\n", selectedScene.Name, selectedScene.GetPrimitiveCount(), selectedScene.BVH.Stats())
	logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d\n",
		imgWidth, imgHeight, selectedScene.SamplingConfig.SamplesPerPixel, selectedScene.SamplingConfig.MaxDepth)

	raytracer := renderer.NewRaytracer(
		selectedScene.Root(),
		selectedScene.Camera,
		integrator.NewPathTracingIntegrator(selectedScene.Background),
		selectedScene.SamplingConfig,
		core.NewSeededSampler(*seed),
		logger,
	)

	startTime := time.Now()
	img, stats := raytracer.RenderPass()
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f, average luminance %.3f\n", stats.AverageSamples, stats.AverageLuminance)

	filename := *output
	if filename == "" {
		filename = createOutputPath(*sceneType, imageFormat, time.Now())
	}

	if err := renderer.SaveImage(filename, img, imageFormat); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a built-in scene name, a scene file name in the scenes directory, or a YAML path
func createScene(sceneType string, seed int64, override renderer.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene specified")
	}

	if isSceneFilePath(sceneType) {
		return loadSceneFile(sceneType, override)
	}

	if s, err := scene.NewBuiltinScene(sceneType, seed, override); err == nil {
		return s, nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(scenesDir, sceneType+ext)
		if _, err := os.Stat(path); err == nil {
			return loadSceneFile(path, override)
		}
	}

	return nil, fmt.Errorf("unknown scene %q (use -list to see available scenes)", sceneType)
}

func loadSceneFile(path string, override renderer.CameraConfig) (*scene.Scene, error) {
	s, err := scene.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, override)
	return s, nil
}

func isSceneFilePath(sceneType string) bool {
	ext := strings.ToLower(filepath.Ext(sceneType))
	return ext == ".yaml" || ext == ".yml"
}

// createOutputPath returns output/<scene>/render_<timestamp>.<format>, using the file name for scene files
func createOutputPath(sceneType string, format renderer.ImageFormat, now time.Time) string {
	name := sceneType
	if isSceneFilePath(sceneType) {
		base := filepath.Base(sceneType)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	return filepath.Join("output", name, filename)
}

func printScenes() {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}

	fmt.Println("Available scenes:")
	for _, s := range scenes {
		id := s.ID
		if s.Type == "file" {
			base := filepath.Base(s.FilePath)
			id = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if s.Description != "" {
			fmt.Printf("  %-16s %s - %s\n", id, s.Name, s.Description)
		} else {
			fmt.Printf("  %-16s %s\n", id, s.Name)
		}
	}
}
