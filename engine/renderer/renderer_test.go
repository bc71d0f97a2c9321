package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const src = "#version 410 core\nvoid main() {}\n"

type fixture struct {
	rec      *backendtest.Recorder
	shaders  shader.Registry
	textures texture.Registry
	quad     shape.Shape
	system   RenderSystem
	logs     *observer.ObservedLogs
}

func newFixture(t *testing.T, shaderNames ...string) *fixture {
	t.Helper()
	rec := backendtest.New()
	core, logs := observer.New(zapcore.DebugLevel)
	shaders := shader.NewRegistry(rec)
	for _, name := range shaderNames {
		_, err := shaders.CreateShader(name, src, src)
		require.NoError(t, err)
	}
	textures := texture.NewRegistry(rec)
	return &fixture{
		rec:      rec,
		shaders:  shaders,
		textures: textures,
		quad:     shape.NewQuad(rec),
		system:   NewRenderSystem(rec, shaders, textures, WithLogger(zap.New(core))),
		logs:     logs,
	}
}

func (f *fixture) drawable(name, shaderName string, options ...component.DrawableBuilderOption) entity.Entity {
	return entity.New(name, entity.WithComponents(
		component.NewTransformation(),
		component.NewDrawable(f.quad, shaderName, options...),
	))
}

func names(entities []entity.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name()
	}
	return out
}

func TestCollectSortsByZAndPartitions(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	require.NoError(t, root.AddChild(f.drawable("a", "basic", component.WithZIndex(3), component.WithTransparent())))
	require.NoError(t, root.AddChild(f.drawable("b", "basic", component.WithZIndex(1))))
	require.NoError(t, root.AddChild(f.drawable("c", "basic", component.WithZIndex(2))))

	opaque, transparent := f.system.Collect(root)
	assert.Equal(t, []string{"b", "c"}, names(opaque))
	assert.Equal(t, []string{"a"}, names(transparent))
}

func TestCollectHandlesExtremeZ(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	require.NoError(t, root.AddChild(f.drawable("top", "basic", component.WithZIndex(math.MaxInt))))
	require.NoError(t, root.AddChild(f.drawable("bottom", "basic", component.WithZIndex(math.MinInt))))
	require.NoError(t, root.AddChild(f.drawable("middle", "basic")))

	opaque, _ := f.system.Collect(root)
	assert.Equal(t, []string{"bottom", "middle", "top"}, names(opaque))
}

func TestCollectKeepsTreeOrderForEqualZ(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	parent := f.drawable("parent", "basic")
	require.NoError(t, parent.AddChild(f.drawable("child", "basic")))
	require.NoError(t, root.AddChild(parent))
	require.NoError(t, root.AddChild(f.drawable("sibling", "basic")))
	require.NoError(t, root.AddChild(entity.New("empty")))

	opaque, transparent := f.system.Collect(root)
	assert.Equal(t, []string{"parent", "child", "sibling"}, names(opaque))
	assert.Empty(t, transparent)
}

func TestCollectSkipsDisabledSubtrees(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	hidden := f.drawable("hidden", "basic")
	require.NoError(t, hidden.AddChild(f.drawable("hidden-child", "basic")))
	hidden.SetEnabled(false)
	require.NoError(t, root.AddChild(hidden))
	require.NoError(t, root.AddChild(f.drawable("shown", "basic")))

	opaque, _ := f.system.Collect(root)
	assert.Equal(t, []string{"shown"}, names(opaque))

	opaque, transparent := f.system.Collect(nil)
	assert.Nil(t, opaque)
	assert.Nil(t, transparent)
}

func TestDrawIssuesOneDrawPerEntityAndBlendsTransparentPass(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	require.NoError(t, root.AddChild(f.drawable("glass", "basic", component.WithTransparent())))
	require.NoError(t, root.AddChild(f.drawable("wall", "basic")))
	f.rec.ResetCalls()

	f.system.Draw(root, camera.NewPerspectiveCamera())

	assert.Equal(t, 2, f.rec.Count("DrawElements"))
	assert.Equal(t, Stats{Opaque: 1, Transparent: 1}, f.system.Stats())
	assert.Equal(t, 2, f.system.Stats().Drawn())

	ops := f.rec.Ops("DrawElements", "Enable", "Disable", "DepthMask", "BlendFunc")
	blendAt := indexOf(ops, "BlendFunc")
	require.GreaterOrEqual(t, blendAt, 0)
	assert.Equal(t, "DrawElements", ops[blendAt-2], "opaque draw happens before blending is enabled")
	assert.Equal(t, []string{"BlendFunc", "DepthMask", "DrawElements", "DepthMask", "Disable"}, ops[blendAt:])

	assert.True(t, f.rec.DepthWrite())
	assert.False(t, f.rec.Enabled(backend.CapabilityBlend))
	assert.True(t, f.rec.Enabled(backend.CapabilityDepthTest))
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

func TestDrawUploadsCameraOncePerShader(t *testing.T) {
	f := newFixture(t, "basic", "other")
	root := entity.New("root")
	for range 3 {
		require.NoError(t, root.AddChild(f.drawable("q", "basic")))
	}
	require.NoError(t, root.AddChild(f.drawable("o", "other")))
	f.rec.ResetCalls()

	f.system.Draw(root, camera.NewPerspectiveCamera())
	assert.Equal(t, 2, f.rec.UniformUploads(camera.UniformView))
	assert.Equal(t, 4, f.rec.UniformUploads("u_model"))

	f.rec.ResetCalls()
	f.system.Draw(root, nil)
	assert.Zero(t, f.rec.UniformUploads(camera.UniformView))
	assert.Equal(t, 4, f.rec.Count("DrawElements"))
}

func TestDrawUploadsEntityUniforms(t *testing.T) {
	f := newFixture(t, "basic")
	color := common.Color{0.2, 0.4, 0.6, 1}
	e := f.drawable("e", "basic",
		component.WithColor(color),
		component.WithOverride("u_time", float32(1.5)),
	)
	e.Transformation().SetPosition(mgl32.Vec3{1, 2, 3})
	root := entity.New("root")
	require.NoError(t, root.AddChild(e))

	f.system.Draw(root, nil)
	program := f.shaders.Shader("basic").ID()

	v, ok := f.rec.Uniform(program, UniformColor)
	require.True(t, ok)
	assert.Equal(t, [4]float32(color), v)

	v, ok = f.rec.Uniform(program, "u_model")
	require.True(t, ok)
	assert.Equal(t, [16]float32(e.Transformation().ModelMatrix()), v)

	v, ok = f.rec.Uniform(program, UniformMaterialShininess)
	require.True(t, ok)
	assert.Equal(t, float32(32), v)

	v, ok = f.rec.Uniform(program, "u_time")
	require.True(t, ok)
	assert.Equal(t, float32(1.5), v)

	v, ok = f.rec.Uniform(program, UniformMaterialHasDiffuse)
	require.True(t, ok)
	assert.Equal(t, int32(0), v)
}

func TestDrawBindsMaterialTextures(t *testing.T) {
	f := newFixture(t, "basic")
	tex, err := f.textures.CreateFromPixels("bricks", 1, 1, []byte{255, 0, 0, 255})
	require.NoError(t, err)

	m := component.DefaultMaterial()
	m.DiffuseTexture = "bricks"
	m.SpecularTexture = "missing"
	root := entity.New("root")
	require.NoError(t, root.AddChild(f.drawable("e", "basic", component.WithMaterial(m))))
	require.NoError(t, root.AddChild(f.drawable("f", "basic", component.WithMaterial(m))))

	f.system.Draw(root, nil)
	program := f.shaders.Shader("basic").ID()

	assert.Equal(t, tex.ID(), f.rec.TextureAt(DiffuseTextureSlot))
	v, _ := f.rec.Uniform(program, UniformMaterialHasDiffuse)
	assert.Equal(t, int32(1), v)
	v, _ = f.rec.Uniform(program, UniformMaterialHasSpecular)
	assert.Equal(t, int32(0), v)
	v, _ = f.rec.Uniform(program, UniformMaterialSpecularMap)
	assert.Equal(t, int32(SpecularTextureSlot), v)

	assert.Equal(t, 1, f.logs.FilterMessage("texture not registered").Len())
}

func TestDrawSkipsMissingShaderAndWarnsOnce(t *testing.T) {
	f := newFixture(t, "basic")
	root := entity.New("root")
	require.NoError(t, root.AddChild(f.drawable("a", "ghost")))
	require.NoError(t, root.AddChild(f.drawable("b", "ghost")))
	require.NoError(t, root.AddChild(f.drawable("c", "basic")))

	f.system.Draw(root, nil)
	f.system.Draw(root, nil)

	assert.Equal(t, Stats{Opaque: 1, Skipped: 2}, f.system.Stats())
	warnings := f.logs.FilterMessage("shader not registered, skipping drawables that use it")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, "ghost", warnings.All()[0].ContextMap()["shader"])
}

func TestDrawSkipsReleasedShapes(t *testing.T) {
	f := newFixture(t, "basic")
	released := shape.NewQuad(f.rec)
	released.Release()
	root := entity.New("root")
	require.NoError(t, root.AddChild(entity.New("gone", entity.WithComponents(
		component.NewTransformation(),
		component.NewDrawable(released, "basic"),
	))))
	require.NoError(t, root.AddChild(f.drawable("kept", "basic")))
	f.rec.ResetCalls()

	f.system.Draw(root, nil)

	assert.Equal(t, 1, f.rec.Count("DrawElements"))
	assert.Equal(t, Stats{Opaque: 1, Skipped: 1}, f.system.Stats())
}

func TestClearAndViewport(t *testing.T) {
	f := newFixture(t)
	f.rec.ResetCalls()

	f.system.Clear(common.ColorBlack)
	f.system.SetViewport(640, 480)
	f.system.SetViewport(0, 480)

	assert.Equal(t, []string{"ClearColor", "Clear", "Viewport"}, f.rec.Ops())
	assert.Equal(t, [4]int{0, 0, 640, 480}, f.rec.CurrentViewport())
}

func TestNewRenderSystemPanicsWithoutBackend(t *testing.T) {
	assert.PanicsWithValue(t, "renderer: NewRenderSystem requires a non-nil Backend", func() {
		NewRenderSystem(nil, nil, nil)
	})
}

func TestPresentModeSwapInterval(t *testing.T) {
	assert.Equal(t, 1, PresentModeVSync.SwapInterval())
	assert.Equal(t, 0, PresentModeUncapped.SwapInterval())
}
