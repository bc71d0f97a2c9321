package level

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
)

// Z-index of each kind of tile entity.
const (
	LayerFloor  = 0
	LayerGoal   = 1
	LayerWall   = 2
	LayerBox    = 3
	LayerPlayer = 4
)

// LayerDepth is the world Z distance between tile layers, so stacked quads never share a plane.
const LayerDepth float32 = 0.01

// DefaultColors are the tile colors used unless overridden with WithColor.
var DefaultColors = map[Tile]common.Color{
	TileFloor:  {0.2, 0.2, 0.22, 1},
	TileWall:   {0.45, 0.3, 0.2, 1},
	TileGoal:   {0.9, 0.8, 0.2, 0.6},
	TileBox:    {0.7, 0.5, 0.25, 1},
	TilePlayer: {0.2, 0.6, 0.9, 1},
}

type buildConfig struct {
	tileSize float32
	floor    bool
	colors   map[Tile]common.Color
	rootName string
}

// BuildOption configures BuildEntities.
type BuildOption func(*buildConfig)

// WithTileSize sets the world size of one cell.
//
// Parameters:
//   - size: the cell edge length in world units
//
// Returns:
//   - BuildOption: option function to apply
func WithTileSize(size float32) BuildOption {
	return func(c *buildConfig) {
		if size > 0 {
			c.tileSize = size
		}
	}
}

// WithoutFloor skips floor entities.
//
// Returns:
//   - BuildOption: option function to apply
func WithoutFloor() BuildOption {
	return func(c *buildConfig) {
		c.floor = false
	}
}

// WithColor overrides the color of one base tile kind (floor, wall, goal, box or player).
//
// Parameters:
//   - t: the tile kind
//   - color: the color
//
// Returns:
//   - BuildOption: option function to apply
func WithColor(t Tile, color common.Color) BuildOption {
	return func(c *buildConfig) {
		c.colors[t] = color
	}
}

// WithRootName sets the name of the returned root entity.
//
// Parameters:
//   - name: the root name
//
// Returns:
//   - BuildOption: option function to apply
func WithRootName(name string) BuildOption {
	return func(c *buildConfig) {
		c.rootName = name
	}
}

// BuildEntities converts a level into an entity subtree. Every non-empty cell becomes one child
// per layer it holds: a box on a goal yields a goal entity and a box entity. Each child has a
// Transformation at (x*size, y*size, 0) and a Drawable drawing quad with the named shader, colored
// and Z-ordered by tile kind. Colors with alpha below 1 are drawn in the transparent pass.
//
// Parameters:
//   - l: the level
//   - quad: the shared quad shape
//   - shaderName: the shader registry name
//   - options: functional options
//
// Returns:
//   - entity.Entity: the root of the subtree
//   - error: an error if an entity could not be assembled
func BuildEntities(l *Level, quad shape.Shape, shaderName string, options ...BuildOption) (entity.Entity, error) {
	cfg := &buildConfig{
		tileSize: 1,
		floor:    true,
		colors:   make(map[Tile]common.Color, len(DefaultColors)),
		rootName: "level",
	}
	for t, c := range DefaultColors {
		cfg.colors[t] = c
	}
	for _, opt := range options {
		opt(cfg)
	}

	root := entity.New(cfg.rootName)
	for y := range l.Height() {
		for x := range l.Width() {
			for _, layer := range layers(l.At(x, y), cfg.floor) {
				e, err := tileEntity(cfg, layer, x, y, quad, shaderName)
				if err != nil {
					return nil, err
				}
				if err := root.AddChild(e); err != nil {
					return nil, err
				}
			}
		}
	}
	return root, nil
}

// layers splits a cell into the base tiles drawn for it, bottom first.
func layers(t Tile, floor bool) []Tile {
	var out []Tile
	if floor && t != TileWall {
		out = append(out, TileFloor)
	}
	switch t {
	case TileWall:
		out = append(out, TileWall)
	case TileGoal:
		out = append(out, TileGoal)
	case TileBox:
		out = append(out, TileBox)
	case TilePlayer:
		out = append(out, TilePlayer)
	case TileBoxOnGoal:
		out = append(out, TileGoal, TileBox)
	case TilePlayerOnGoal:
		out = append(out, TileGoal, TilePlayer)
	}
	return out
}

func layerZ(t Tile) int {
	switch t {
	case TileGoal:
		return LayerGoal
	case TileWall:
		return LayerWall
	case TileBox:
		return LayerBox
	case TilePlayer:
		return LayerPlayer
	default:
		return LayerFloor
	}
}

func tileEntity(cfg *buildConfig, t Tile, x, y int, quad shape.Shape, shaderName string) (entity.Entity, error) {
	color := cfg.colors[t]
	options := []component.DrawableBuilderOption{
		component.WithColor(color),
		component.WithZIndex(layerZ(t)),
	}
	if !color.Opaque() {
		options = append(options, component.WithTransparent())
	}

	e := entity.New(fmt.Sprintf("%s_%d_%d", t, x, y))
	size := cfg.tileSize
	tr := component.NewTransformation(
		component.WithPosition(float32(x)*size, float32(y)*size, float32(layerZ(t))*LayerDepth),
		component.WithScale(size, size, 1),
	)
	if err := e.AddComponent(tr); err != nil {
		return nil, err
	}
	if err := e.AddComponent(component.NewDrawable(quad, shaderName, options...)); err != nil {
		return nil, err
	}
	return e, nil
}
