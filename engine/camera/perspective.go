package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

type perspectiveImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	center   mgl32.Vec3
	up       mgl32.Vec3
	yaw      float32
	pitch    float32
	panning  bool

	fov    float32
	aspect float32
	near   float32
	far    float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// PerspectiveCamera is a perspective camera. With panning on it looks along the direction given by
// yaw and pitch; with panning off it looks at a fixed center point.
type PerspectiveCamera interface {
	Camera

	// Yaw returns the rotation around the world Y axis in radians.
	Yaw() float32

	// Pitch returns the elevation in radians.
	Pitch() float32

	// SetYawPitch sets the view direction. Pitch is clamped to +/-89 degrees.
	//
	// Parameters:
	//   - yaw, pitch: angles in radians
	SetYawPitch(yaw, pitch float32)

	// Front returns the unit view direction derived from yaw and pitch.
	Front() mgl32.Vec3

	// Right returns the unit right vector, normalize(Front x Up).
	Right() mgl32.Vec3

	// Up returns the world up vector.
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// Aspect returns the aspect ratio.
	Aspect() float32

	// Panning reports whether the view follows yaw/pitch instead of the center point.
	Panning() bool

	// SetPanning switches between direction-driven and center-driven views.
	SetPanning(panning bool)

	// Center returns the look-at point used when panning is off.
	Center() mgl32.Vec3

	// SetCenter sets the look-at point used when panning is off.
	SetCenter(c mgl32.Vec3)
}

var _ PerspectiveCamera = &perspectiveImpl{}

// NewPerspectiveCamera creates a perspective camera at (0, 0, 3) looking down -Z with a 45 degree
// field of view, aspect 1, near 0.1 and far 100, with panning enabled.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveCamera: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) PerspectiveCamera {
	cfg := newCameraConfig(options)
	c := &perspectiveImpl{
		mu:       &sync.Mutex{},
		position: cfg.position,
		center:   cfg.center,
		up:       cfg.up,
		yaw:      cfg.yaw,
		pitch:    common.Clamp(cfg.pitch, -maxPitch, maxPitch),
		panning:  cfg.panning,
		fov:      cfg.fov,
		aspect:   cfg.aspect,
		near:     cfg.near,
		far:      cfg.far,
	}
	c.updateMatrices()
	return c
}

func (c *perspectiveImpl) Type() CameraType {
	return CameraTypePerspective
}

func (c *perspectiveImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *perspectiveImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *perspectiveImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection.Mul4(c.view)
}

func (c *perspectiveImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *perspectiveImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *perspectiveImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *perspectiveImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *perspectiveImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *perspectiveImpl) Apply(s shader.Shader) {
	applyUniforms(c, s)
}

func (c *perspectiveImpl) Update(s shader.Shader) {
	updateUniforms(c, s)
}

func (c *perspectiveImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *perspectiveImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *perspectiveImpl) SetYawPitch(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
	c.pitch = common.Clamp(pitch, -maxPitch, maxPitch)
	c.updateMatrices()
}

func (c *perspectiveImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.FrontFromAngles(c.yaw, c.pitch)
}

func (c *perspectiveImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.FrontFromAngles(c.yaw, c.pitch).Cross(c.up).Normalize()
}

func (c *perspectiveImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *perspectiveImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *perspectiveImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *perspectiveImpl) Panning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panning
}

func (c *perspectiveImpl) SetPanning(panning bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panning = panning
	c.updateMatrices()
}

func (c *perspectiveImpl) Center() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center
}

func (c *perspectiveImpl) SetCenter(center mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.center = center
	c.updateMatrices()
}

// updateMatrices recalculates the view and projection matrices. Caller must hold the mutex.
func (c *perspectiveImpl) updateMatrices() {
	target := c.center
	if c.panning {
		target = c.position.Add(common.FrontFromAngles(c.yaw, c.pitch))
	}
	c.view = mgl32.LookAtV(c.position, target, c.up)
	c.projection = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
