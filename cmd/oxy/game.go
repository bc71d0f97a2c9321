package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/level"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	boardName       = "board"
	celebrationName = "celebration"

	// cameraSpeed is in world units per second.
	cameraSpeed = 4

	// celebrationFloor is the height below which celebration pieces are dropped.
	celebrationFloor = -10

	// celebrationDepth keeps celebration pieces in front of every tile layer.
	celebrationDepth = float32(level.LayerPlayer+1) * level.LayerDepth
)

// game is the Sokoban sample: a level rendered as a quad grid inside one scene.
type game struct {
	logger     *zap.Logger
	source     string
	level      *level.Level
	quad       shape.Shape
	shaderName string
	scene      scene.Scene
	board      entity.Entity
	layouts    config.LayoutManager
	editor     *config.EditorConfig
	editorPath string
	restart    func()
	gravity    mgl32.Vec3
	substeps   int
	held       map[uint32]bool
	moves      int
	solved     bool
}

// gameOptions is what newGame needs beyond the level text.
type gameOptions struct {
	logger     *zap.Logger
	quad       shape.Shape
	shaderName string
	scene      scene.Scene
	layouts    config.LayoutManager
	editor     *config.EditorConfig
	editorPath string
	physics    config.PhysicsConfig
}

// newGame parses the level, frames the scene camera around it and builds the board.
func newGame(source string, opts gameOptions) (*game, error) {
	l, err := level.ParseString(source)
	if err != nil {
		return nil, err
	}
	g := &game{
		logger:     opts.logger,
		source:     source,
		level:      l,
		quad:       opts.quad,
		shaderName: opts.shaderName,
		scene:      opts.scene,
		layouts:    opts.layouts,
		editor:     opts.editor,
		editorPath: opts.editorPath,
		restart:    func() {},
		gravity:    mgl32.Vec3(opts.physics.Gravity),
		substeps:   opts.physics.Substeps,
		held:       make(map[uint32]bool),
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	w, h := float32(l.Width()), float32(l.Height())
	cc := camera.NewCameraController(camera.CameraTypeOrthographic,
		camera.WithMoveSpeed(cameraSpeed),
		camera.WithCameraOptions(
			camera.WithBounds(-0.5, w-0.5, -0.5, h-0.5),
			camera.WithClipPlanes(-10, 10),
		),
	)
	g.scene.SetCameraController(cc)

	if err := g.rebuild(); err != nil {
		return nil, err
	}
	return g, nil
}

// rebuild replaces the board subtree with one built from the current level state.
func (g *game) rebuild() error {
	board, err := level.BuildEntities(g.level, g.quad, g.shaderName, level.WithRootName(boardName))
	if err != nil {
		return fmt.Errorf("build level: %w", err)
	}
	if g.board != nil {
		g.board.Destroy()
	}
	if err := g.scene.AddEntity(board); err != nil {
		board.Destroy()
		return err
	}
	g.board = board
	return nil
}

// reset reloads the level from its source text.
func (g *game) reset() error {
	l, err := level.ParseString(g.source)
	if err != nil {
		return err
	}
	g.level = l
	g.moves = 0
	g.solved = false
	if c := g.celebration(); c != nil {
		c.Destroy()
	}
	return g.rebuild()
}

func (g *game) keyDown(key uint32) {
	g.held[key] = true

	switch key {
	case common.KeyUp:
		g.move(0, 1)
	case common.KeyDown:
		g.move(0, -1)
	case common.KeyLeft:
		g.move(-1, 0)
	case common.KeyRight:
		g.move(1, 0)
	case common.KeyR:
		if err := g.reset(); err != nil {
			g.logger.Error("reset level", zap.Error(err))
		}
	case common.KeyL:
		g.cycleWindowMode()
	case common.Key1:
		g.applyLayout(config.LayoutDefault)
	case common.Key2:
		g.applyLayout(config.LayoutViewportOnly)
	case common.Key3:
		if g.layouts == nil {
			return
		}
		if err := g.layouts.SaveCustom("quick"); err != nil {
			g.logger.Warn("save layout", zap.Error(err))
		}
	}
}

func (g *game) keyUp(key uint32) {
	delete(g.held, key)
}

func (g *game) scroll(delta float32) {
	if cc := g.scene.CameraController(); cc != nil {
		cc.Zoom(delta * 0.1)
	}
}

// move steps the player and rebuilds the board when something changed.
func (g *game) move(dx, dy int) {
	if g.solved || !g.level.Move(dx, dy) {
		return
	}
	g.moves++
	if err := g.rebuild(); err != nil {
		g.logger.Error("rebuild level", zap.Error(err))
		return
	}
	if g.level.Solved() {
		g.solved = true
		g.logger.Info("level solved", zap.Int("moves", g.moves))
		g.celebrate()
	}
}

// applyLayout switches the docking layout and restarts when the active file changed.
func (g *game) applyLayout(name string) {
	if g.layouts == nil {
		return
	}
	changed, err := g.layouts.Apply(name)
	if err != nil {
		g.logger.Warn("apply layout", zap.String("layout", name), zap.Error(err))
		return
	}
	if changed {
		g.logger.Info("layout changed, restarting", zap.String("layout", name))
		g.restart()
	}
}

// windowModes is the order KeyL steps through.
var windowModes = []common.WindowMode{
	common.WindowModeWindowed,
	common.WindowModeBorderless,
	common.WindowModeFullscreen,
}

// cycleWindowMode stores the next window mode in the editor preferences and restarts so the
// window is recreated with it.
func (g *game) cycleWindowMode() {
	if g.editor == nil {
		return
	}
	next := windowModes[0]
	for i, m := range windowModes {
		if m == g.editor.Window.WindowMode {
			next = windowModes[(i+1)%len(windowModes)]
		}
	}
	g.editor.Window.WindowMode = next
	if err := g.savePreferences(); err != nil {
		g.logger.Warn("save editor config", zap.Error(err))
		return
	}
	g.logger.Info("window mode changed, restarting", zap.Stringer("mode", next))
	g.restart()
}

// savePreferences writes the editor preferences back to disk.
func (g *game) savePreferences() error {
	if g.editor == nil || g.editorPath == "" {
		return nil
	}
	return g.editor.Save(g.editorPath)
}

// tick pans the camera for held keys and drops celebration pieces that fell out of view.
func (g *game) tick(dt float32) {
	if cc := g.scene.CameraController(); cc != nil {
		var dx, dy float32
		if g.held[common.KeyD] {
			dx++
		}
		if g.held[common.KeyA] {
			dx--
		}
		if g.held[common.KeyW] {
			dy++
		}
		if g.held[common.KeyS] {
			dy--
		}
		if dx != 0 {
			cc.MoveRight(dx * dt)
		}
		if dy != 0 {
			cc.MoveUp(dy * dt)
		}
		if g.held[common.KeyE] {
			cc.Zoom(dt)
		}
		if g.held[common.KeyQ] {
			cc.Zoom(-dt)
		}
	}

	c := g.celebration()
	if c == nil {
		return
	}
	for _, piece := range c.Children() {
		if t := piece.Transformation(); t != nil && t.Position()[1] < celebrationFloor {
			piece.Destroy()
		}
	}
}

// celebrate launches a fan of falling quads from the player's tile.
func (g *game) celebrate() {
	root := entity.New(celebrationName)
	px, py, _ := g.level.Player()
	for i := range 8 {
		spread := float32(i) - 3.5
		piece := entity.New(fmt.Sprintf("piece_%d", i), entity.WithComponents(
			component.NewTransformation(
				component.WithPosition(float32(px), float32(py), celebrationDepth),
				component.WithScale(0.3, 0.3, 1),
			),
			component.NewPhysics(
				component.WithVelocity(mgl32.Vec3{spread, 6, 0}),
				component.WithGravity(g.gravity),
				component.WithSubsteps(g.substeps),
			),
			component.NewDrawable(g.quad, g.shaderName,
				component.WithColor(common.Color{1, 0.85, 0.2, 0.8}),
				component.WithZIndex(level.LayerPlayer+1),
				component.WithTransparent(),
			),
		))
		if err := root.AddChild(piece); err != nil {
			g.logger.Warn("celebration piece", zap.Error(err))
		}
	}
	if err := g.scene.AddEntity(root); err != nil {
		g.logger.Warn("celebration", zap.Error(err))
		root.Destroy()
	}
}

func (g *game) celebration() entity.Entity {
	root := g.scene.Root()
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if c.Name() == celebrationName {
			return c
		}
	}
	return nil
}
