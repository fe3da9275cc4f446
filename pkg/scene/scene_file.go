package scene

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Vector is a YAML triple such as [0.5, 0.7, 1.0]
type Vector []float64

// Vec3 converts the triple, failing on any other length
func (v Vector) Vec3() (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// NewVector converts a Vec3 to its YAML form
func NewVector(v core.Vec3) Vector {
	return Vector{v.X, v.Y, v.Z}
}

// SceneFile is the YAML representation of a scene
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description,omitempty"`
	Camera      CameraFileConfig        `yaml:"camera"`
	Sampling    SamplingFileConfig      `yaml:"sampling"`
	Background  *BackgroundFileConfig   `yaml:"background,omitempty"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
}

// CameraFileConfig mirrors renderer.CameraConfig. Omitted fields keep the default camera's values.
type CameraFileConfig struct {
	Center        Vector  `yaml:"center,flow,omitempty"`
	LookAt        Vector  `yaml:"look_at,flow,omitempty"`
	Up            Vector  `yaml:"up,flow,omitempty"`
	Width         int     `yaml:"width,omitempty"`
	AspectRatio   float64 `yaml:"aspect_ratio,omitempty"`
	VFov          float64 `yaml:"vfov,omitempty"`
	Aperture      float64 `yaml:"aperture,omitempty"`
	FocusDistance float64 `yaml:"focus_distance,omitempty"`
}

// SamplingFileConfig mirrors renderer.SamplingConfig
type SamplingFileConfig struct {
	SamplesPerPixel int `yaml:"samples_per_pixel,omitempty"`
	MaxDepth        int `yaml:"max_depth,omitempty"`
}

// BackgroundFileConfig is the sky gradient
type BackgroundFileConfig struct {
	Top    Vector `yaml:"top,flow"`
	Bottom Vector `yaml:"bottom,flow"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string  `yaml:"type"` // lambertian, metal or dielectric
	Albedo          Vector  `yaml:"albedo,flow,omitempty"`
	Fuzz            float64 `yaml:"fuzz,omitempty"`
	RefractionIndex float64 `yaml:"refraction_index,omitempty"`
}

// SphereSpec places a sphere. Center2, when set, is the position at the end of the shutter interval.
type SphereSpec struct {
	Center   Vector  `yaml:"center,flow"`
	Center2  Vector  `yaml:"center2,flow,omitempty"`
	Radius   float64 `yaml:"radius"`
	Material string  `yaml:"material"`
}

// LoadSceneFile reads and builds a scene from a YAML file
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	sceneFile, err := ParseSceneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := sceneFile.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSceneFile decodes YAML scene data, rejecting unknown fields
func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sceneFile SceneFile
	if err := yaml.UnmarshalStrict(data, &sceneFile); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &sceneFile, nil
}

// SaveSceneFile writes the scene as YAML, preceded by discovery header comments
func SaveSceneFile(path string, sceneFile *SceneFile) error {
	data, err := MarshalSceneFile(sceneFile)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene file: %w", err)
	}
	return nil
}

// MarshalSceneFile encodes the scene file with its header comments
func MarshalSceneFile(sceneFile *SceneFile) ([]byte, error) {
	body, err := yaml.Marshal(sceneFile)
	if err != nil {
		return nil, fmt.Errorf("serializing scene: %w", err)
	}

	var buf bytes.Buffer
	if sceneFile.Name != "" {
		fmt.Fprintf(&buf, "# Scene: %s\n", sceneFile.Name)
	}
	if sceneFile.Description != "" {
		fmt.Fprintf(&buf, "# Description: %s\n", sceneFile.Description)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// Build converts the file description into a scene ready for Preprocess
func (f *SceneFile) Build() (*Scene, error) {
	s := NewScene(f.Name)

	cameraConfig, err := f.Camera.toCameraConfig()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraConfig)
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: f.Sampling.SamplesPerPixel,
		MaxDepth:        f.Sampling.MaxDepth,
	})

	if f.Background != nil {
		top, err := f.Background.Top.Vec3()
		if err != nil {
			return nil, fmt.Errorf("background top: %w", err)
		}
		bottom, err := f.Background.Bottom.Vec3()
		if err != nil {
			return nil, fmt.Errorf("background bottom: %w", err)
		}
		s.Background = integrator.GradientBackground{Top: top, Bottom: bottom}
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for _, name := range sortedKeys(f.Materials) {
		mat, err := f.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, spec := range f.Spheres {
		sphere, err := spec.build(materials)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(sphere)
	}

	return s, nil
}

func (c CameraFileConfig) toCameraConfig() (renderer.CameraConfig, error) {
	config := renderer.CameraConfig{
		Width:         c.Width,
		AspectRatio:   c.AspectRatio,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}

	vectors := []struct {
		name  string
		value Vector
		dest  *core.Vec3
	}{
		{"center", c.Center, &config.Center},
		{"look_at", c.LookAt, &config.LookAt},
		{"up", c.Up, &config.Up},
	}
	for _, v := range vectors {
		if v.value == nil {
			continue
		}
		vec, err := v.value.Vec3()
		if err != nil {
			return config, fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dest = vec
	}

	return config, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch m.Type {
	case "lambertian":
		albedo, err := m.Albedo.Vec3()
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := m.Albedo.Vec3()
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("refraction_index must be positive, got %g", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	}
	return nil, fmt.Errorf("unknown material type %q", m.Type)
}

func (sp SphereSpec) build(materials map[string]material.Material) (geometry.Shape, error) {
	mat, ok := materials[sp.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", sp.Material)
	}
	center, err := sp.Center.Vec3()
	if err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}
	if sp.Radius == 0 {
		return nil, fmt.Errorf("radius must be non-zero")
	}

	if sp.Center2 == nil {
		return geometry.NewSphere(center, sp.Radius, mat), nil
	}
	center2, err := sp.Center2.Vec3()
	if err != nil {
		return nil, fmt.Errorf("center2: %w", err)
	}
	return geometry.NewMovingSphere(center, center2, sp.Radius, mat), nil
}

func sortedKeys(m map[string]MaterialSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
