package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "oxy.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAMLKeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(`
window:
  title: sokoban
  width: 640
loop:
  frameLimit: 144
physics:
  gravity: [0, -3, 0]
log:
  level: debug
assets:
  shaders:
    - name: basic
      vertex: basic.vert
      fragment: /abs/basic.frag
  level: level2.txt
  textures:
    crate: crate.png
`))
	require.NoError(t, err)

	assert.Equal(t, "sokoban", c.Window.Title)
	assert.Equal(t, 640, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, 144, c.Loop.FrameLimit)
	assert.Equal(t, 60, c.Loop.TickRate)
	assert.Equal(t, [3]float32{0, -3, 0}, c.Physics.Gravity)
	assert.Equal(t, 4, c.Physics.Substeps)
	assert.Equal(t, "debug", c.Log.Level)

	sources := c.ShaderSources()
	require.Len(t, sources, 1)
	assert.Equal(t, filepath.Join("assets/shaders", "basic.vert"), sources[0].VertexPath)
	assert.Equal(t, "/abs/basic.frag", sources[0].FragmentPath)
	assert.Equal(t, map[string]string{"crate": filepath.Join("assets/textures", "crate.png")}, c.TexturePaths())
	assert.Equal(t, filepath.Join("assets/levels", "level2.txt"), c.LevelPath())
	assert.Empty(t, Default().LevelPath())
}

func TestLoadJSONNormalizesValues(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(`{"window":{"title":"","width":-5},"loop":{"tickRate":0,"frameLimit":-1},"unknown":true}`))
	require.NoError(t, err)
	assert.Equal(t, "oxy", c.Window.Title)
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 60, c.Loop.TickRate)
	assert.Equal(t, 0, c.Loop.FrameLimit)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "oxy.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"window":{"title":"from json"}}`), 0o644))
	c, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "from json", c.Window.Title)

	ymlPath := filepath.Join(dir, "oxy.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("window:\n  title: from yaml\n"), 0o644))
	c, err = Load(ymlPath)
	require.NoError(t, err)
	assert.Equal(t, "from yaml", c.Window.Title)

	tomlPath := filepath.Join(dir, "oxy.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0o644))
	_, err = Load(tomlPath)
	assert.ErrorContains(t, err, "unsupported config format")

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("window: [unclosed"), 0o644))
	_, err = Load(badPath)
	assert.Error(t, err)
}

func TestLoadEditorCopiesTemplateOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings", "editor.json")

	c, err := LoadEditor(path)
	require.NoError(t, err)
	assert.Equal(t, common.WindowModeWindowed, c.Window.WindowMode)
	assert.Equal(t, float32(16), c.UI.FontSize)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, editorTemplate, data)
}

func TestEditorSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.json")
	c := DefaultEditor()
	c.Window.WindowMode = common.WindowModeBorderless
	c.UI.FontSize = 20
	require.NoError(t, c.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"windowMode": "borderless"`)

	loaded, err := LoadEditor(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestParseEditor(t *testing.T) {
	c, err := ParseEditor([]byte(`{"window":{"windowMode":"FULLSCREEN"},"extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, common.WindowModeFullscreen, c.Window.WindowMode)
	assert.Equal(t, float32(16), c.UI.FontSize)

	c, err = ParseEditor(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultEditor(), c)

	_, err = ParseEditor([]byte(`{"window":{"windowMode":"tiled"}}`))
	assert.ErrorContains(t, err, "tiled")
}
