package camera

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

// CameraController owns exactly one camera and translates movement input into camera changes.
// Movement amounts are scaled by the controller's move speed, rotation by its sensitivity and
// zoom by its zoom speed.
type CameraController interface {
	// Type returns the type of the owned camera.
	Type() CameraType

	// Camera returns the owned camera.
	Camera() Camera

	// MoveForward moves along the view direction. Orthographic cameras move along -Z.
	//
	// Parameters:
	//   - amount: distance before speed scaling; negative moves backward
	MoveForward(amount float32)

	// MoveRight moves along the camera's right vector.
	//
	// Parameters:
	//   - amount: distance before speed scaling; negative moves left
	MoveRight(amount float32)

	// MoveUp moves along the world up vector.
	//
	// Parameters:
	//   - amount: distance before speed scaling; negative moves down
	MoveUp(amount float32)

	// Rotate turns a perspective camera. Pitch is clamped to +/-89 degrees. Orthographic cameras ignore it.
	//
	// Parameters:
	//   - dyaw, dpitch: angle deltas in radians before sensitivity scaling
	Rotate(dyaw, dpitch float32)

	// Zoom narrows the field of view (perspective) or shrinks the frustum (orthographic) for positive delta.
	//
	// Parameters:
	//   - delta: zoom amount before speed scaling
	Zoom(delta float32)

	// Resize adapts the camera to a new viewport size in pixels. Non-positive sizes are ignored.
	Resize(width, height int)

	// Update binds the shader and uploads the camera uniforms.
	Update(s shader.Shader)

	// MoveSpeed returns the movement multiplier.
	MoveSpeed() float32

	// SetMoveSpeed sets the movement multiplier.
	SetMoveSpeed(speed float32)
}
