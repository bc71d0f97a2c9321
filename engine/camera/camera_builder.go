package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraConfig struct {
	position    mgl32.Vec3
	positionSet bool
	center      mgl32.Vec3
	up       mgl32.Vec3
	yaw      float32
	pitch    float32
	panning  bool

	fov    float32
	aspect float32
	near   float32
	far    float32

	bounds    [4]float32
	orthoNear float32
	orthoFar  float32
	centered  bool
}

// CameraBuilderOption configures a perspective or orthographic camera. Options that do not apply
// to the camera being built are ignored.
type CameraBuilderOption func(*cameraConfig)

func newCameraConfig(options []CameraBuilderOption) *cameraConfig {
	cfg := &cameraConfig{
		position:  mgl32.Vec3{0, 0, 3},
		up:        mgl32.Vec3{0, 1, 0},
		yaw:       -math.Pi / 2,
		panning:   true,
		fov:       defaultFov,
		aspect:    1,
		near:      0.1,
		far:       100,
		bounds:    [4]float32{-1, 1, -1, 1},
		orthoNear: -1,
		orthoFar:  1,
	}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithPosition sets the camera's world position. Perspective cameras default to (0, 0, 3) and
// orthographic cameras to the origin.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.position = mgl32.Vec3{x, y, z}
		c.positionSet = true
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithYawPitch sets the initial view direction of a perspective camera.
//
// Parameters:
//   - yaw, pitch: angles in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets yaw and pitch
func WithYawPitch(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.yaw, c.pitch = yaw, pitch
	}
}

// WithCenter disables panning and makes a perspective camera look at a fixed point.
//
// Parameters:
//   - x, y, z: the look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the center
func WithCenter(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.center = mgl32.Vec3{x, y, z}
		c.panning = false
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances. Applies to both camera types.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.near, c.far = near, far
		c.orthoNear, c.orthoFar = near, far
	}
}

// WithBounds sets an orthographic camera's frustum edges.
//
// Parameters:
//   - left, right, bottom, top: frustum edges in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the bounds
func WithBounds(left, right, bottom, top float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.bounds = [4]float32{left, right, bottom, top}
	}
}

// WithCentered keeps an orthographic frustum symmetric around the origin.
//
// Returns:
//   - CameraBuilderOption: a function that centers the frustum
func WithCentered() CameraBuilderOption {
	return func(c *cameraConfig) {
		c.centered = true
	}
}
