package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraType selects the projection a camera uses.
type CameraType int

const (
	// CameraTypePerspective is a free-look perspective camera.
	CameraTypePerspective CameraType = iota

	// CameraTypeOrthographic is a parallel projection camera, typically used for 2D scenes.
	CameraTypeOrthographic
)

// String returns the camera type name.
func (t CameraType) String() string {
	switch t {
	case CameraTypePerspective:
		return "perspective"
	case CameraTypeOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// Uniform names uploaded by Camera.Apply.
const (
	UniformProjection     = "u_projection"
	UniformView           = "u_view"
	UniformCameraPosition = "u_camera_position"
	UniformNear           = "u_near"
	UniformFar            = "u_far"
)

// maxPitch keeps the view direction away from the world up vector.
var maxPitch = mgl32.DegToRad(89)

// Camera produces the view and projection matrices for a scene and uploads them to shaders.
type Camera interface {
	// Type returns the projection type.
	Type() CameraType

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl32.Mat4

	// Position returns the camera's world position.
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - p: the new world position
	SetPosition(p mgl32.Vec3)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetAspect updates the projection for a new viewport aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio, ignored when not positive
	SetAspect(aspect float32)

	// Apply uploads u_projection, u_view, u_camera_position, u_near and u_far to an already bound shader.
	//
	// Parameters:
	//   - s: the bound shader
	Apply(s shader.Shader)

	// Update binds the shader and then uploads the camera uniforms.
	//
	// Parameters:
	//   - s: the shader to bind
	Update(s shader.Shader)
}

// applyUniforms uploads the standard camera uniforms.
func applyUniforms(c Camera, s shader.Shader) {
	if s == nil {
		return
	}
	s.SetMat4(UniformProjection, c.ProjectionMatrix())
	s.SetMat4(UniformView, c.ViewMatrix())
	s.SetVec3(UniformCameraPosition, c.Position())
	s.SetFloat(UniformNear, c.Near())
	s.SetFloat(UniformFar, c.Far())
}

// updateUniforms binds the shader and uploads the standard camera uniforms.
func updateUniforms(c Camera, s shader.Shader) {
	if s == nil {
		return
	}
	s.Bind()
	applyUniforms(c, s)
}

// defaultFov is 45 degrees in radians.
var defaultFov = float32(45.0 * (math.Pi / 180.0))
