package component

import "github.com/go-gl/mathgl/mgl32"

// TransformationBuilderOption configures a Transformation at construction.
type TransformationBuilderOption func(*transformationImpl)

// WithPosition sets the initial position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - TransformationBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) TransformationBuilderOption {
	return func(t *transformationImpl) {
		t.position = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - x, y, z: scale components
//
// Returns:
//   - TransformationBuilderOption: a function that sets the scale
func WithScale(x, y, z float32) TransformationBuilderOption {
	return func(t *transformationImpl) {
		t.scale = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial yaw, pitch and roll in radians.
//
// Parameters:
//   - yaw, pitch, roll: rotation angles in radians
//
// Returns:
//   - TransformationBuilderOption: a function that sets the rotation
func WithRotation(yaw, pitch, roll float32) TransformationBuilderOption {
	return func(t *transformationImpl) {
		t.yaw, t.pitch, t.roll = yaw, pitch, roll
	}
}
