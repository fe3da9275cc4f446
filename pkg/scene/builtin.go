package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// builtinScene describes a scene constructed in code
type builtinScene struct {
	description string
	build       func(seed int64, override renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Diffuse sphere on a ground sphere",
		build: func(seed int64, override renderer.CameraConfig) *Scene {
			return NewDefaultScene(override)
		},
	},
	"materials": {
		description: "Diffuse, hollow glass and fuzzy metal spheres",
		build: func(seed int64, override renderer.CameraConfig) *Scene {
			return NewMaterialsScene(override)
		},
	},
	"random": {
		description: "Field of random spheres with motion blur and depth of field",
		build: func(seed int64, override renderer.CameraConfig) *Scene {
			return NewRandomSpheresScene(seed, override)
		},
	},
	"spheregrid": {
		description: "Grid of rainbow-colored metallic spheres",
		build: func(seed int64, override renderer.CameraConfig) *Scene {
			return NewSphereGridScene(10, override)
		},
	},
}

// BuiltinSceneNames returns the names accepted by NewBuiltinScene, sorted
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a built-in scene by name. The seed only affects randomized scenes.
func NewBuiltinScene(name string, seed int64, override renderer.CameraConfig) (*Scene, error) {
	builtin, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinSceneNames())
	}
	return builtin.build(seed, override), nil
}
