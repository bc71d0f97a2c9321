package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestPerspectiveDefaultsLookDownNegativeZ(t *testing.T) {
	c := NewPerspectiveCamera()

	assert.Equal(t, CameraTypePerspective, c.Type())
	assertVecNear(t, mgl32.Vec3{0, 0, 3}, c.Position())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), eps)
	assert.InDelta(t, 0.1, c.Near(), eps)
	assert.InDelta(t, 100, c.Far(), eps)
	assert.True(t, c.Panning())

	// A point straight ahead lands on the view axis.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, -3, p[2], eps)
}

func TestPerspectiveFrontFromAngles(t *testing.T) {
	c := NewPerspectiveCamera(WithYawPitch(0, 0))
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Front())

	c.SetYawPitch(0, math.Pi/4)
	s := float32(math.Sqrt2 / 2)
	assertVecNear(t, mgl32.Vec3{s, s, 0}, c.Front())
}

func TestPerspectivePitchIsClamped(t *testing.T) {
	c := NewPerspectiveCamera()
	c.SetYawPitch(0, math.Pi)
	assert.InDelta(t, mgl32.DegToRad(89), c.Pitch(), eps)

	c.SetYawPitch(0, -math.Pi)
	assert.InDelta(t, -mgl32.DegToRad(89), c.Pitch(), eps)
}

func TestPerspectiveCenterDisablesPanning(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(0, 0, 5), WithCenter(0, 0, 0))
	assert.False(t, c.Panning())

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p[2], eps)
}

func TestPerspectiveSetAspect(t *testing.T) {
	c := NewPerspectiveCamera()
	c.SetAspect(2)
	assert.InDelta(t, 2, c.Aspect(), eps)
	want := mgl32.Perspective(c.Fov(), 2, c.Near(), c.Far())
	assert.True(t, want.ApproxEqual(c.ProjectionMatrix()))

	c.SetAspect(0)
	assert.InDelta(t, 2, c.Aspect(), eps)
}

func TestOrthographicCenteredBounds(t *testing.T) {
	c := NewOrthographicCamera(WithCentered(), WithBounds(0, 800, 0, 600))

	l, r, b, top := c.Bounds()
	assert.Equal(t, [4]float32{-400, 400, -300, 300}, [4]float32{l, r, b, top})
	assertVecNear(t, mgl32.Vec3{}, c.Position())

	c.SetSize(200, 100)
	l, r, b, top = c.Bounds()
	assert.Equal(t, [4]float32{-100, 100, -50, 50}, [4]float32{l, r, b, top})
}

func TestOrthographicViewTranslatesByNegatedPosition(t *testing.T) {
	c := NewOrthographicCamera(WithPosition(2, 3, 0))
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{2, 3, 0, 1})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
}

func TestOrthographicZoomIsClamped(t *testing.T) {
	c := NewOrthographicCamera()
	c.SetZoom(100)
	assert.InDelta(t, 20, c.Zoom(), eps)
	c.SetZoom(0)
	assert.InDelta(t, 0.05, c.Zoom(), eps)

	c.SetZoom(0.5)
	want := mgl32.Ortho(-0.5, 0.5, -0.5, 0.5, -1, 1)
	assert.True(t, want.ApproxEqual(c.ProjectionMatrix()))
}

func TestUpdateBindsBeforeUploading(t *testing.T) {
	rec := backendtest.New()
	s, err := shader.NewShader(rec, "basic", "void main() {}", "void main() {}")
	require.NoError(t, err)
	rec.ResetCalls()

	c := NewPerspectiveCamera()
	c.Update(s)

	ops := rec.Ops("UseProgram", "UniformMatrix4fv", "Uniform3f", "Uniform1f")
	require.NotEmpty(t, ops)
	assert.Equal(t, "UseProgram", ops[0])

	v, ok := rec.Uniform(s.ID(), UniformView)
	require.True(t, ok)
	assert.Equal(t, [16]float32(c.ViewMatrix()), v)
	v, ok = rec.Uniform(s.ID(), UniformFar)
	require.True(t, ok)
	assert.Equal(t, float32(100), v)
}

func TestApplyDoesNotBind(t *testing.T) {
	rec := backendtest.New()
	s, err := shader.NewShader(rec, "basic", "void main() {}", "void main() {}")
	require.NoError(t, err)
	rec.ResetCalls()

	NewOrthographicCamera().Apply(s)
	assert.Zero(t, rec.Count("UseProgram"))
	assert.Equal(t, 1, rec.UniformUploads(UniformProjection))
}

func TestControllerPerspectiveMovement(t *testing.T) {
	cc := NewCameraController(CameraTypePerspective, WithMoveSpeed(2))
	require.Equal(t, CameraTypePerspective, cc.Type())

	cc.MoveForward(1)
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, cc.Camera().Position())

	cc.MoveRight(1)
	assertVecNear(t, mgl32.Vec3{2, 0, 1}, cc.Camera().Position())

	cc.MoveUp(-0.5)
	assertVecNear(t, mgl32.Vec3{2, -1, 1}, cc.Camera().Position())
}

func TestControllerRotateAndZoom(t *testing.T) {
	cc := NewCameraController(CameraTypePerspective, WithSensitivity(0.5), WithZoomSpeed(1))
	pc := cc.Camera().(PerspectiveCamera)

	cc.Rotate(0, 10)
	assert.InDelta(t, mgl32.DegToRad(89), pc.Pitch(), eps)
	assert.InDelta(t, -math.Pi/2, pc.Yaw(), eps)

	cc.Zoom(10)
	assert.InDelta(t, mgl32.DegToRad(1), pc.Fov(), eps)
	cc.Zoom(-10)
	assert.InDelta(t, mgl32.DegToRad(90), pc.Fov(), eps)
}

func TestControllerOrthographic(t *testing.T) {
	cc := NewCameraController(CameraTypeOrthographic, WithCameraOptions(WithCentered(), WithBounds(0, 4, 0, 2)))
	oc := cc.Camera().(OrthographicCamera)

	cc.MoveRight(1)
	cc.MoveUp(2)
	cc.MoveForward(1)
	assertVecNear(t, mgl32.Vec3{1, 2, -1}, oc.Position())

	cc.Rotate(1, 1)
	cc.Zoom(0.5)
	assert.InDelta(t, 0.5, oc.Zoom(), eps)

	cc.Resize(800, 600)
	l, r, b, top := oc.Bounds()
	assert.Equal(t, [4]float32{-400, 400, -300, 300}, [4]float32{l, r, b, top})

	cc.Resize(0, 10)
	l, r, _, _ = oc.Bounds()
	assert.Equal(t, float32(-400), l)
	assert.Equal(t, float32(400), r)
}

func TestControllerResizePerspective(t *testing.T) {
	cc := NewCameraController(CameraTypePerspective)
	cc.Resize(1600, 900)
	assert.InDelta(t, 1600.0/900.0, cc.Camera().(PerspectiveCamera).Aspect(), eps)
}
