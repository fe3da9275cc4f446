package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains all the parameters needed to set up a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens aperture diameter (0 = pinhole camera)
	FocusDistance float64   // Distance to the plane in focus (0 = distance to LookAt)
}

// DefaultCameraConfig returns the camera looking down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates primary rays through the pixels of the image plane
type Camera struct {
	config      CameraConfig
	imageWidth  int
	imageHeight int
	center      core.Vec3
	pixel00Loc  core.Vec3 // Center of the upper-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below
	u, v, w     core.Vec3 // Camera frame basis vectors
	lensRadius  float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	imageWidth := config.Width
	imageHeight := int(float64(imageWidth) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * float64(imageWidth) / float64(imageHeight)

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Image rows run top to bottom, so the vertical edge vector points down
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(imageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:      config,
		imageWidth:  imageWidth,
		imageHeight: imageHeight,
		center:      config.Center,
		pixel00Loc:  pixel00Loc,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		u:           u,
		v:           v,
		w:           w,
		lensRadius:  config.Aperture / 2,
	}
}

// ImageSize returns the image dimensions in pixels
func (c *Camera) ImageSize() (width, height int) {
	return c.imageWidth, c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a randomly jittered ray through pixel (i, j), where j=0 is the top row.
// The ray carries a random shutter time in [0,1).
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	return c.GetRayAt(i, j, sampler.Get2D(), sampler.Get2D(), sampler.Get1D())
}

// GetRayAt returns the ray through pixel (i, j) for explicit samples.
// pixelSample (0.5, 0.5) is the pixel center, lensSample (0.5, 0.5) the lens center.
func (c *Camera) GetRayAt(i, j int, pixelSample, lensSample core.Vec2, time float64) core.Ray {
	pixelPoint := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + pixelSample.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + pixelSample.Y - 0.5))

	origin := c.center
	if c.lensRadius > 0 {
		p := core.SamplePointInUnitDisk(lensSample)
		origin = origin.Add(c.u.Multiply(p.X * c.lensRadius)).Add(c.v.Multiply(p.Y * c.lensRadius))
	}

	return core.NewRayAtTime(origin, pixelPoint.Subtract(origin), time)
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
