package shader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVertex   = "#version 410 core\n//@oxy:include camera\nvoid main() {}\n"
	testFragment = "#version 410 core\nvoid main() {}\n"
)

func writeSources(t *testing.T, dir, name string) Source {
	t.Helper()
	v := filepath.Join(dir, name+".vert")
	f := filepath.Join(dir, name+".frag")
	require.NoError(t, os.WriteFile(v, []byte(testVertex), 0o644))
	require.NoError(t, os.WriteFile(f, []byte(testFragment), 0o644))
	return Source{Name: name, VertexPath: v, FragmentPath: f}
}

func TestNewShaderLinksAndDeletesStages(t *testing.T) {
	rec := backendtest.New()
	s, err := NewShader(rec, "basic", testVertex, testFragment)
	require.NoError(t, err)

	assert.NotZero(t, s.ID())
	assert.Equal(t, 1, rec.Live(backendtest.ResourceProgram))
	assert.Equal(t, 0, rec.Live(backendtest.ResourceShader))

	s.Release()
	s.Release()
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceProgram))
	assert.Equal(t, 0, rec.TotalLive())
}

func TestNewShaderCompileFailureLeaksNothing(t *testing.T) {
	rec := backendtest.New()
	rec.FailCompile(backend.ShaderStageFragment, "0:1: syntax error")

	s, err := NewShader(rec, "broken", testVertex, testFragment)
	assert.Nil(t, s)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "broken", compileErr.Name)
	assert.Equal(t, backend.ShaderStageFragment, compileErr.Stage)
	assert.Contains(t, compileErr.Log, "syntax error")
	assert.Equal(t, 0, rec.TotalLive())
	assert.Equal(t, 0, rec.Count("LinkProgram"))
}

func TestNewShaderLinkFailureLeaksNothing(t *testing.T) {
	rec := backendtest.New()
	rec.FailLink("missing main")

	_, err := NewShader(rec, "unlinked", testVertex, testFragment)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "missing main", linkErr.Log)
	assert.Equal(t, 0, rec.TotalLive())
}

func TestNewShaderFromFilesWrapsReadError(t *testing.T) {
	rec := backendtest.New()
	_, err := NewShaderFromFiles(rec, "missing", "/does/not/exist.vert", "/does/not/exist.frag")

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "/does/not/exist.vert", srcErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 0, rec.Count("CompileShader"))
}

func TestUniformLocationsAreCached(t *testing.T) {
	rec := backendtest.New()
	s, err := NewShader(rec, "basic", testVertex, testFragment)
	require.NoError(t, err)

	s.SetFloat("u_near", 0.1)
	s.SetFloat("u_near", 0.2)
	s.SetMat4("u_model", mgl32.Ident4())

	assert.Equal(t, 2, rec.Count("UniformLocation"))
	assert.Equal(t, 3, rec.Count("Uniform1f")+rec.Count("UniformMatrix4fv"))
	v, ok := rec.Uniform(s.ID(), "u_near")
	require.True(t, ok)
	assert.Equal(t, float32(0.2), v)
}

func TestMissingUniformIsSkipped(t *testing.T) {
	rec := backendtest.New()
	rec.HideUniform("u_unused")
	s, err := NewShader(rec, "basic", testVertex, testFragment)
	require.NoError(t, err)

	s.SetVec3("u_unused", mgl32.Vec3{1, 2, 3})
	s.SetVec3("u_unused", mgl32.Vec3{1, 2, 3})

	assert.False(t, s.HasUniform("u_unused"))
	assert.Equal(t, 0, rec.Count("Uniform3f"))
	assert.Equal(t, 1, rec.Count("UniformLocation"))
}

func TestSetDispatchesByType(t *testing.T) {
	rec := backendtest.New()
	s, err := NewShader(rec, "basic", testVertex, testFragment)
	require.NoError(t, err)

	cases := []struct {
		name  string
		value any
		op    string
		want  any
	}{
		{"u_flag", true, "Uniform1i", int32(1)},
		{"u_count", 3, "Uniform1i", int32(3)},
		{"u_scale", 2.5, "Uniform1f", float32(2.5)},
		{"u_offset", mgl32.Vec2{1, 2}, "Uniform2f", [2]float32{1, 2}},
		{"u_light", [3]float32{1, 2, 3}, "Uniform3f", [3]float32{1, 2, 3}},
		{"u_tint", common.Color{1, 0, 0, 1}, "Uniform4f", [4]float32{1, 0, 0, 1}},
		{"u_mvp", mgl32.Ident4(), "UniformMatrix4fv", [16]float32(mgl32.Ident4())},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, s.Set(c.name, c.value))
			v, ok := rec.Uniform(s.ID(), c.name)
			require.True(t, ok)
			assert.Equal(t, c.want, v)
		})
	}

	assert.ErrorIs(t, s.Set("u_bad", "text"), ErrUnsupportedUniform)
}

func TestPreProcessorExpandsIncludes(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("#version 410 core\n  //@oxy:include material\nvoid main() {}")
	require.NoError(t, err)
	assert.Contains(t, out, "uniform Material u_material;")
	assert.Equal(t, []string{"material"}, pp.Includes())

	_, err = pp.Process("//@oxy:include nope")
	assert.ErrorContains(t, err, "line 1")

	_, err = pp.Process("//@oxy:group 0 0")
	assert.Error(t, err)
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)

	first, err := reg.CreateShader("basic", testVertex, testFragment)
	require.NoError(t, err)
	second, err := reg.CreateShader("basic", "other", "other")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, rec.Count("LinkProgram"))
}

func TestRegistryCreateFromFilesSkipsReadWhenRegistered(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)
	_, err := reg.CreateShader("basic", testVertex, testFragment)
	require.NoError(t, err)

	s, err := reg.CreateShaderFromFiles("basic", "/does/not/exist.vert", "/does/not/exist.frag")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestRegistryFailedBuildRegistersNothing(t *testing.T) {
	rec := backendtest.New()
	rec.FailCompile(backend.ShaderStageVertex, "bad")
	reg := NewRegistry(rec)

	_, err := reg.CreateShader("basic", testVertex, testFragment)
	require.Error(t, err)
	assert.Nil(t, reg.Shader("basic"))
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryBindMissIssuesNoGPUCall(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)

	assert.Nil(t, reg.Bind("ghost"))
	assert.Empty(t, rec.Calls())

	s, err := reg.CreateShader("basic", testVertex, testFragment)
	require.NoError(t, err)
	assert.Same(t, s, reg.Bind("basic"))
	assert.Equal(t, s.ID(), rec.CurrentProgram())
}

func TestRegistryLoadAll(t *testing.T) {
	dir := t.TempDir()
	rec := backendtest.New()
	reg := NewRegistry(rec)

	sources := []Source{
		writeSources(t, dir, "basic"),
		writeSources(t, dir, "unlit"),
		writeSources(t, dir, "basic"),
	}
	require.NoError(t, reg.LoadAll(context.Background(), sources))

	assert.Equal(t, []string{"basic", "unlit"}, reg.Names())
	assert.Equal(t, 2, rec.Count("LinkProgram"))
}

func TestRegistryLoadAllReportsReadError(t *testing.T) {
	dir := t.TempDir()
	rec := backendtest.New()
	reg := NewRegistry(rec)

	sources := []Source{
		writeSources(t, dir, "basic"),
		{Name: "missing", VertexPath: filepath.Join(dir, "nope.vert"), FragmentPath: filepath.Join(dir, "nope.frag")},
	}
	err := reg.LoadAll(context.Background(), sources)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "missing", srcErr.Name)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryClearReleasesEverything(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)
	_, err := reg.CreateShader("a", testVertex, testFragment)
	require.NoError(t, err)
	_, err = reg.CreateShader("b", testVertex, testFragment)
	require.NoError(t, err)

	reg.Clear()

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, rec.Live(backendtest.ResourceProgram))
}
