package renderer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// Validate reports configuration values that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Raytracer handles the rendering process: one pass over every pixel, single threaded
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	sampler    core.Sampler
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, integ integrator.Integrator, config SamplingConfig, sampler core.Sampler, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     config,
		sampler:    sampler,
		logger:     logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// RenderPixel averages SamplesPerPixel jittered samples through pixel (i, j)
func (rt *Raytracer) RenderPixel(i, j int) PixelStats {
	var stats PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, rt.config.MaxDepth, rt.sampler))
	}
	return stats
}

// RenderPass renders the full image and returns it with render statistics
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	width, height := rt.camera.ImageSize()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	stats := RenderStats{
		TotalPixels: width * height,
		MaxDepth:    rt.config.MaxDepth,
	}
	luminanceSum := 0.0

	startTime := time.Now()
	for j := 0; j < height; j++ {
		if j%progressInterval(height) == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", height-j)
		}
		for i := 0; i < width; i++ {
			pixel := rt.RenderPixel(i, j)
			colorVec := pixel.GetColor()
			stats.TotalSamples += pixel.SampleCount
			luminanceSum += colorVec.Luminance()
			img.SetRGBA(i, j, vec3ToColor(colorVec))
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
		stats.AverageLuminance = luminanceSum / float64(stats.TotalPixels)
	}

	rt.logger.Printf("Done: %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, time.Since(startTime))
	return img, stats
}

// progressInterval spaces progress messages about ten per render
func progressInterval(height int) int {
	if height < 10 {
		return 1
	}
	return height / 10
}

// vec3ToColor converts a linear color to 8-bit RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
