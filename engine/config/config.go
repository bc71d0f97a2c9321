// Package config loads the engine configuration (oxy.yaml or oxy.json), the editor preferences
// (editor.json) and the docking layout snapshots.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"gopkg.in/yaml.v3"
)

// WindowConfig configures the application window.
type WindowConfig struct {
	Title     string `json:"title" yaml:"title"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	MinWidth  int    `json:"minWidth" yaml:"minWidth"`
	MinHeight int    `json:"minHeight" yaml:"minHeight"`
	MaxWidth  int    `json:"maxWidth" yaml:"maxWidth"`
	MaxHeight int    `json:"maxHeight" yaml:"maxHeight"`
	VSync     bool   `json:"vsync" yaml:"vsync"`
}

// LoopConfig configures the engine loop.
type LoopConfig struct {
	// TickRate is the fixed number of scene updates per second.
	TickRate int `json:"tickRate" yaml:"tickRate"`

	// FrameLimit caps rendered frames per second. Zero renders every loop iteration.
	FrameLimit int `json:"frameLimit" yaml:"frameLimit"`

	// ProfileInterval is the number of seconds between profiler reports. Zero disables the profiler.
	ProfileInterval float64 `json:"profileInterval" yaml:"profileInterval"`
}

// PhysicsConfig holds the defaults applied to Physics components created by the engine.
type PhysicsConfig struct {
	Substeps int        `json:"substeps" yaml:"substeps"`
	Gravity  [3]float32 `json:"gravity" yaml:"gravity"`
}

// AssetsConfig locates the engine's on-disk assets.
type AssetsConfig struct {
	ShaderDir  string `json:"shaderDir" yaml:"shaderDir"`
	TextureDir string `json:"textureDir" yaml:"textureDir"`
	LevelDir   string `json:"levelDir" yaml:"levelDir"`
	LayoutDir  string `json:"layoutDir" yaml:"layoutDir"`
	EditorFile string `json:"editorFile" yaml:"editorFile"`

	// Level is the level file loaded at startup. Empty selects the built-in level.
	Level string `json:"level" yaml:"level"`

	// Shaders lists the shader programs compiled at startup. Relative paths resolve against ShaderDir.
	Shaders []shader.Source `json:"shaders" yaml:"shaders"`

	// Textures maps texture names to image paths preloaded at startup. Relative paths resolve against TextureDir.
	Textures map[string]string `json:"textures" yaml:"textures"`
}

// Config is the engine configuration.
type Config struct {
	Window  WindowConfig  `json:"window" yaml:"window"`
	Loop    LoopConfig    `json:"loop" yaml:"loop"`
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Log     logger.Config `json:"log" yaml:"log"`
	Assets  AssetsConfig  `json:"assets" yaml:"assets"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "oxy",
			Width:     1280,
			Height:    720,
			MinWidth:  600,
			MinHeight: 200,
			MaxWidth:  3840,
			MaxHeight: 2160,
			VSync:     true,
		},
		Loop: LoopConfig{
			TickRate:   60,
			FrameLimit: 0,
		},
		Physics: PhysicsConfig{
			Substeps: 4,
			Gravity:  [3]float32{0, -9.81, 0},
		},
		Log: logger.Config{
			Level:    "info",
			Encoding: logger.EncodingConsole,
		},
		Assets: AssetsConfig{
			ShaderDir:  "assets/shaders",
			TextureDir: "assets/textures",
			LevelDir:   "assets/levels",
			LayoutDir:  "layouts",
			EditorFile: "editor.json",
		},
	}
}

// LoadJSON decodes a configuration from r on top of the defaults.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	if err := json.NewDecoder(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.normalize()
	return c, nil
}

// LoadYAML decodes a configuration from r on top of the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.normalize()
	return c, nil
}

// Load reads a configuration file. The format is chosen by extension: .json, or .yaml/.yml.
// An empty path or a missing file yields Default().
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - *Config: the loaded configuration
//   - error: an error if the file cannot be read or decoded, or has an unknown extension
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		c, err = LoadJSON(f)
	case ".yaml", ".yml":
		c, err = LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return c, nil
}

// ShaderSources returns the configured shader sources with relative paths resolved against ShaderDir.
func (c *Config) ShaderSources() []shader.Source {
	out := make([]shader.Source, len(c.Assets.Shaders))
	for i, s := range c.Assets.Shaders {
		s.VertexPath = resolve(c.Assets.ShaderDir, s.VertexPath)
		s.FragmentPath = resolve(c.Assets.ShaderDir, s.FragmentPath)
		out[i] = s
	}
	return out
}

// LevelPath returns the configured level file resolved against LevelDir, or "" when unset.
func (c *Config) LevelPath() string {
	return resolve(c.Assets.LevelDir, c.Assets.Level)
}

// TexturePaths returns the configured textures with relative paths resolved against TextureDir.
func (c *Config) TexturePaths() map[string]string {
	out := make(map[string]string, len(c.Assets.Textures))
	for name, p := range c.Assets.Textures {
		out[name] = resolve(c.Assets.TextureDir, p)
	}
	return out
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	d := Default()
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = positive(c.Window.Width, d.Window.Width)
	c.Window.Height = positive(c.Window.Height, d.Window.Height)
	c.Loop.TickRate = positive(c.Loop.TickRate, d.Loop.TickRate)
	c.Loop.FrameLimit = max(c.Loop.FrameLimit, 0)
	c.Loop.ProfileInterval = max(c.Loop.ProfileInterval, 0)
	c.Physics.Substeps = positive(c.Physics.Substeps, d.Physics.Substeps)
	c.Assets.EditorFile = common.Coalesce(c.Assets.EditorFile, d.Assets.EditorFile)
	c.Assets.LayoutDir = common.Coalesce(c.Assets.LayoutDir, d.Assets.LayoutDir)
}

func positive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func resolve(dir, p string) string {
	if p == "" || dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
