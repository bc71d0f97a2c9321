package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = "WWWWW\nWPBGW\nWWWWW\n"

func newTestGame(t *testing.T, source string, layouts config.LayoutManager) (*game, scene.Scene) {
	t.Helper()
	rec := backendtest.New()
	s := scene.NewScene("test", scene.WithRenderSystem(renderer.NewRenderSystem(rec, nil, nil)))
	cfg := config.Default()
	g, err := newGame(source, gameOptions{
		quad:       shape.NewQuad(rec),
		shaderName: defaultShader,
		scene:      s,
		layouts:    layouts,
		physics:    cfg.Physics,
	})
	require.NoError(t, err)
	return g, s
}

func TestNewGameFramesLevel(t *testing.T) {
	g, s := newTestGame(t, corridor, nil)

	require.NotNil(t, s.CameraController())
	assert.Equal(t, camera.CameraTypeOrthographic, s.CameraController().Type())
	require.Equal(t, 1, s.Root().ChildCount())
	assert.Equal(t, boardName, s.Root().Child(0).Name())
	assert.Same(t, g.board, s.Root().Child(0))
}

func TestNewGameRejectsBadLevel(t *testing.T) {
	_, err := newGame("W?W", gameOptions{})
	assert.Error(t, err)
}

func TestMoveRebuildsBoardAndCelebrates(t *testing.T) {
	g, s := newTestGame(t, corridor, nil)
	old := g.board

	g.keyDown(common.KeyLeft)
	assert.Same(t, old, g.board, "blocked move keeps the board")
	assert.Zero(t, g.moves)

	g.keyDown(common.KeyRight)
	assert.NotSame(t, old, g.board)
	assert.Nil(t, old.Parent())
	assert.Equal(t, 1, g.moves)
	assert.True(t, g.solved)

	c := g.celebration()
	require.NotNil(t, c)
	assert.Equal(t, 8, c.ChildCount())
	player := g.board.FindByName("player_2_1")
	require.NotNil(t, player)
	for _, piece := range c.Children() {
		assert.Greater(t, piece.Transformation().Position()[2], player.Transformation().Position()[2])
	}
	assert.Equal(t, 2, s.Root().ChildCount())

	g.keyDown(common.KeyLeft)
	assert.Equal(t, 1, g.moves, "solved levels ignore input")

	s.Update(3)
	g.tick(0)
	assert.Zero(t, c.ChildCount())
}

func TestResetRestoresLevel(t *testing.T) {
	g, s := newTestGame(t, corridor, nil)
	g.keyDown(common.KeyRight)
	require.True(t, g.solved)

	g.keyDown(common.KeyR)
	assert.False(t, g.solved)
	assert.Zero(t, g.moves)
	assert.Nil(t, g.celebration())
	assert.Equal(t, 1, s.Root().ChildCount())
	x, y, ok := g.level.Player()
	require.True(t, ok)
	assert.Equal(t, []int{1, 1}, []int{x, y})
}

func TestHeldKeysPanCamera(t *testing.T) {
	g, s := newTestGame(t, corridor, nil)
	before := s.Camera().Position()

	g.keyDown(common.KeyD)
	g.tick(0.5)
	g.keyUp(common.KeyD)
	g.tick(0.5)

	after := s.Camera().Position()
	assert.InDelta(t, before[0]+cameraSpeed*0.5, after[0], 1e-4)
	assert.InDelta(t, before[1], after[1], 1e-4)
}

func TestLayoutKeysRequestRestart(t *testing.T) {
	lm := config.NewLayoutManager(t.TempDir())
	require.NoError(t, lm.Ensure())
	g, _ := newTestGame(t, corridor, lm)

	restarts := 0
	g.restart = func() { restarts++ }

	g.keyDown(common.Key1)
	assert.Zero(t, restarts, "default layout is already active")

	g.keyDown(common.Key2)
	assert.Equal(t, 1, restarts)

	g.keyDown(common.Key3)
	names, err := lm.Custom()
	require.NoError(t, err)
	assert.Equal(t, []string{"quick"}, names)
}

func TestReadLevel(t *testing.T) {
	text, err := readLevel("")
	require.NoError(t, err)
	assert.Equal(t, defaultLevel, text)

	path := filepath.Join(t.TempDir(), "small.txt")
	require.NoError(t, os.WriteFile(path, []byte(corridor), 0o644))

	text, err = readLevel(path)
	require.NoError(t, err)
	assert.Equal(t, corridor, text)

	_, err = readLevel(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRunFailsWithExitOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	assert.Equal(t, 1, run(context.Background(), Options{ConfigPath: path}))
}

func TestWindowModeCyclesAndPersists(t *testing.T) {
	g, _ := newTestGame(t, corridor, nil)
	g.editor = config.DefaultEditor()
	g.editorPath = filepath.Join(t.TempDir(), "editor.json")
	restarts := 0
	g.restart = func() { restarts++ }

	g.keyDown(common.KeyL)
	assert.Equal(t, common.WindowModeBorderless, g.editor.Window.WindowMode)
	assert.Equal(t, 1, restarts)

	saved, err := config.LoadEditor(g.editorPath)
	require.NoError(t, err)
	assert.Equal(t, common.WindowModeBorderless, saved.Window.WindowMode)

	g.keyDown(common.KeyL)
	g.keyDown(common.KeyL)
	assert.Equal(t, common.WindowModeWindowed, g.editor.Window.WindowMode)
}
