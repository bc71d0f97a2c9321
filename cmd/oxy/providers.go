package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// defaultShader is the registry name of the built-in flat color shader.
const defaultShader = "basic"

//go:embed assets/shaders/basic.vert
var basicVertex string

//go:embed assets/shaders/basic.frag
var basicFragment string

//go:embed assets/levels/level1.txt
var defaultLevel string

// Options are the inputs to the application graph.
type Options struct {
	ConfigPath string
}

// App is one run of the application: window, GPU resources and the game scene.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Engine  engine.Engine
	Game    *game
	Layouts config.LayoutManager
	Editor  *config.EditorConfig
}

var providerSet = wire.NewSet(
	provideConfig,
	provideLogger,
	provideEditor,
	provideLayouts,
	provideWindow,
	provideBackend,
	provideShaders,
	provideTextures,
	provideShapes,
	provideRenderSystem,
	provideScene,
	provideGame,
	provideEngine,
	wire.Struct(new(App), "*"),
)

func provideConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", opts.ConfigPath, err)
	}
	return cfg, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func provideEditor(cfg *config.Config) (*config.EditorConfig, error) {
	return config.LoadEditor(cfg.Assets.EditorFile)
}

func provideLayouts(cfg *config.Config, log *zap.Logger) (config.LayoutManager, error) {
	lm := config.NewLayoutManager(cfg.Assets.LayoutDir, config.WithLayoutLogger(log.Named("layout")))
	if err := lm.Ensure(); err != nil {
		return nil, err
	}
	return lm, nil
}

func provideWindow(cfg *config.Config, editor *config.EditorConfig) (window.Window, func(), error) {
	present := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		present = renderer.PresentModeVSync
	}
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithMinWidth(cfg.Window.MinWidth),
		window.WithMinHeight(cfg.Window.MinHeight),
		window.WithMaxWidth(cfg.Window.MaxWidth),
		window.WithMaxHeight(cfg.Window.MaxHeight),
		window.WithMode(editor.Window.WindowMode),
		window.WithSwapInterval(present.SwapInterval()),
	)
	if err != nil {
		return nil, nil, err
	}
	return w, func() { _ = w.Close() }, nil
}

// provideBackend loads GL against the window's context, so it must run after the window exists.
func provideBackend(w window.Window) (backend.Backend, error) {
	w.MakeContextCurrent()
	return renderer.NewBackend(backend.BackendTypeGL)
}

func provideShaders(ctx context.Context, b backend.Backend, cfg *config.Config, log *zap.Logger) (shader.Registry, func(), error) {
	reg := shader.NewRegistry(b, shader.WithLogger(log.Named("shader")))
	if _, err := reg.CreateShader(defaultShader, basicVertex, basicFragment); err != nil {
		return nil, nil, err
	}
	if err := reg.LoadAll(ctx, cfg.ShaderSources()); err != nil {
		reg.Clear()
		return nil, nil, err
	}
	return reg, reg.Clear, nil
}

func provideTextures(ctx context.Context, b backend.Backend, cfg *config.Config, log *zap.Logger) (texture.Registry, func()) {
	reg := texture.NewRegistry(b, texture.WithLogger(log.Named("texture")))
	if err := reg.Preload(ctx, cfg.TexturePaths()); err != nil {
		log.Warn("some textures failed to load", zap.Error(err))
	}
	return reg, reg.Clear
}

func provideShapes(b backend.Backend) (shape.Library, func()) {
	lib := shape.NewLibrary(b)
	return lib, lib.Clear
}

func provideRenderSystem(b backend.Backend, shaders shader.Registry, textures texture.Registry, log *zap.Logger) renderer.RenderSystem {
	return renderer.NewRenderSystem(b, shaders, textures, renderer.WithLogger(log.Named("renderer")))
}

func provideScene(cfg *config.Config, rs renderer.RenderSystem, log *zap.Logger) (scene.Scene, func()) {
	s := scene.NewScene("sokoban",
		scene.WithRenderSystem(rs),
		scene.WithLogger(log.Named("scene")),
		scene.WithViewport(cfg.Window.Width, cfg.Window.Height),
	)
	s.Init()
	return s, s.CleanUp
}

func provideGame(cfg *config.Config, s scene.Scene, shapes shape.Library, layouts config.LayoutManager, editor *config.EditorConfig, log *zap.Logger) (*game, error) {
	source, err := readLevel(cfg.LevelPath())
	if err != nil {
		return nil, err
	}
	return newGame(source, gameOptions{
		logger:     log.Named("game"),
		quad:       shapes.Quad(),
		shaderName: defaultShader,
		scene:      s,
		layouts:    layouts,
		editor:     editor,
		editorPath: cfg.Assets.EditorFile,
		physics:    cfg.Physics,
	})
}

func provideEngine(cfg *config.Config, w window.Window, s scene.Scene, g *game, log *zap.Logger) engine.Engine {
	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithLogger(log.Named("engine")),
		engine.WithTickRate(float64(cfg.Loop.TickRate)),
		engine.WithRenderFrameLimit(float64(cfg.Loop.FrameLimit)),
		engine.WithProfiling(cfg.Loop.ProfileInterval > 0),
		engine.WithProfileInterval(time.Duration(cfg.Loop.ProfileInterval*float64(time.Second))),
		engine.WithScene(0, s),
	)
	g.restart = e.RequestRestart
	e.SetTickCallback(g.tick)
	w.SetKeyDownCallback(g.keyDown)
	w.SetKeyUpCallback(g.keyUp)
	w.SetScrollCallback(g.scroll)
	return e
}

// readLevel returns the level text at path, or the built-in level for an empty path.
func readLevel(path string) (string, error) {
	if path == "" {
		return defaultLevel, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read level: %w", err)
	}
	return string(data), nil
}
