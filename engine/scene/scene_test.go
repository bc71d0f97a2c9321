package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = "#version 410 core\nvoid main() {}\n"

func newRenderSystem(t *testing.T, rec *backendtest.Recorder) renderer.RenderSystem {
	t.Helper()
	shaders := shader.NewRegistry(rec)
	_, err := shaders.CreateShader("basic", src, src)
	require.NoError(t, err)
	return renderer.NewRenderSystem(rec, shaders, nil)
}

func TestInitIsIdempotent(t *testing.T) {
	s := NewScene("main")
	assert.False(t, s.Initialized())
	assert.Nil(t, s.Root())

	s.Init()
	root := s.Root()
	require.NotNil(t, root)
	assert.Equal(t, RootName, root.Name())

	s.Init()
	assert.Same(t, root, s.Root())
}

func TestAddEntityAttachesToRoot(t *testing.T) {
	s := NewScene("main")
	e := entity.New("player")
	require.NoError(t, s.AddEntity(e))

	assert.True(t, s.Initialized())
	assert.Same(t, s.Root(), e.Parent())
	assert.ErrorIs(t, s.AddEntity(e), entity.ErrAlreadyParented)
}

func TestUpdateRunsPhysics(t *testing.T) {
	e := entity.New("ball", entity.WithComponents(
		component.NewTransformation(),
		component.NewPhysics(component.WithGravity(mgl32.Vec3{}), component.WithVelocity(mgl32.Vec3{1, 0, 0})),
	))
	s := NewScene("main", WithEntities(e))

	s.Update(0.5)
	assert.InDelta(t, 0.5, e.Transformation().Position()[0], 1e-5)

	s.SetActive(false)
	s.Update(0.5)
	assert.InDelta(t, 0.5, e.Transformation().Position()[0], 1e-5)
}

func TestDrawWithoutRenderSystemIsNoop(t *testing.T) {
	s := NewScene("main")
	s.Init()
	assert.NotPanics(t, s.Draw)
}

func TestDrawClearsAndDraws(t *testing.T) {
	rec := backendtest.New()
	rs := newRenderSystem(t, rec)
	quad := shape.NewQuad(rec)
	s := NewScene("main", WithRenderSystem(rs), WithViewport(320, 240), WithClearColor(common.ColorBlack))
	require.NoError(t, s.AddEntity(entity.New("q", entity.WithComponents(
		component.NewTransformation(),
		component.NewDrawable(quad, "basic"),
	))))
	rec.ResetCalls()

	s.Draw()

	assert.Equal(t, [4]int{0, 0, 320, 240}, rec.CurrentViewport())
	assert.Equal(t, []string{"Viewport", "ClearColor", "Clear"}, rec.Ops("Viewport", "ClearColor", "Clear"))
	assert.Equal(t, 1, rec.Count("DrawElements"))

	rec.ResetCalls()
	s.SetActive(false)
	s.Draw()
	assert.Empty(t, rec.Calls())
}

func TestDrawLayerSkipsClear(t *testing.T) {
	rec := backendtest.New()
	s := NewScene("overlay", WithRenderSystem(newRenderSystem(t, rec)), WithClear(false))
	s.Init()
	assert.False(t, s.Clears())

	s.Draw()
	assert.Zero(t, rec.Count("Clear"))

	s.DrawLayer(true)
	assert.Equal(t, 1, rec.Count("Clear"))

	s.SetClears(true)
	s.Draw()
	assert.Equal(t, 2, rec.Count("Clear"))
}

func TestDrawIntoTarget(t *testing.T) {
	rec := backendtest.New()
	fb, err := framebuffer.NewFramebuffer(rec, 64, 32)
	require.NoError(t, err)
	s := NewScene("viewport", WithRenderSystem(newRenderSystem(t, rec)), WithTarget(fb))
	s.Init()

	s.Draw()
	assert.Equal(t, uint32(0), rec.CurrentFramebuffer())
	ops := rec.Ops("BindFramebuffer", "Clear")
	assert.Equal(t, []string{"BindFramebuffer", "Clear", "BindFramebuffer"}, ops[len(ops)-3:])
}

func TestSetViewportResizesTargetAndCamera(t *testing.T) {
	rec := backendtest.New()
	fb, err := framebuffer.NewFramebuffer(rec, 64, 32)
	require.NoError(t, err)
	cam := camera.NewPerspectiveCamera()
	s := NewScene("viewport", WithCamera(cam), WithTarget(fb))

	require.NoError(t, s.SetViewport(400, 200))
	w, h := s.Viewport()
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, 400, fb.Width())
	assert.Equal(t, 200, fb.Height())
	assert.InDelta(t, 2, cam.Aspect(), 1e-5)

	require.NoError(t, s.SetViewport(0, 100))
	w, _ = s.Viewport()
	assert.Equal(t, 400, w)
}

func TestSetViewportRoutesThroughController(t *testing.T) {
	cc := camera.NewCameraController(camera.CameraTypeOrthographic, camera.WithCameraOptions(camera.WithCentered()))
	s := NewScene("ui", WithCameraController(cc))
	assert.Same(t, cc, s.CameraController())

	require.NoError(t, s.SetViewport(800, 600))
	l, r, b, top := cc.Camera().(camera.OrthographicCamera).Bounds()
	assert.Equal(t, [4]float32{-400, 400, -300, 300}, [4]float32{l, r, b, top})
}

func TestCleanUpAllowsReinit(t *testing.T) {
	rec := backendtest.New()
	fb, err := framebuffer.NewFramebuffer(rec, 16, 16)
	require.NoError(t, err)
	quad := shape.NewQuad(rec)
	s := NewScene("main", WithTarget(fb))
	require.NoError(t, s.AddEntity(entity.New("q", entity.WithComponents(
		component.NewTransformation(),
		component.NewDrawable(quad, "basic", component.WithOwnedShape()),
	))))
	old := s.Root()

	s.CleanUp()
	assert.Nil(t, s.Root())
	assert.Nil(t, s.Target())
	assert.Equal(t, 0, rec.TotalLive())

	s.Init()
	assert.NotNil(t, s.Root())
	assert.NotSame(t, old, s.Root())
	assert.Zero(t, s.Root().ChildCount())
}

func TestAccessors(t *testing.T) {
	s := NewScene("a", WithZIndex(3), WithActive(false))
	assert.Equal(t, 3, s.ZIndex())
	assert.False(t, s.Active())

	s.SetName("b")
	s.SetZIndex(-1)
	s.SetClearColor(common.ColorWhite)
	assert.Equal(t, "b", s.Name())
	assert.Equal(t, -1, s.ZIndex())
	assert.Equal(t, common.ColorWhite, s.ClearColor())
	assert.NotNil(t, s.Camera())
}
