// Package level parses the plain-text Sokoban level format used by the sample game and turns
// levels into entity trees.
package level

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tile is the content of one grid cell.
type Tile int

const (
	TileFloor Tile = iota
	TileWall
	TileBox
	TileGoal
	TilePlayer
	TileBoxOnGoal
	TilePlayerOnGoal
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileBox:
		return "box"
	case TileGoal:
		return "goal"
	case TilePlayer:
		return "player"
	case TileBoxOnGoal:
		return "box_on_goal"
	case TilePlayerOnGoal:
		return "player_on_goal"
	default:
		return "unknown"
	}
}

// HasGoal reports whether the tile sits on a goal.
func (t Tile) HasGoal() bool {
	return t == TileGoal || t == TileBoxOnGoal || t == TilePlayerOnGoal
}

// HasBox reports whether the tile holds a box.
func (t Tile) HasBox() bool {
	return t == TileBox || t == TileBoxOnGoal
}

// HasPlayer reports whether the tile holds the player.
func (t Tile) HasPlayer() bool {
	return t == TilePlayer || t == TilePlayerOnGoal
}

var runeTiles = map[rune]Tile{
	'W': TileWall,
	'#': TileWall,
	'B': TileBox,
	'G': TileGoal,
	'P': TilePlayer,
	'*': TileBoxOnGoal,
	'+': TilePlayerOnGoal,
	' ': TileFloor,
	'.': TileFloor,
	'-': TileFloor,
}

// ParseError reports a rune the level format does not know. Line and Column are 1-based
// positions in the source text.
type ParseError struct {
	Line   int
	Column int
	Rune   rune
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("level: unknown tile %q at line %d, column %d", e.Rune, e.Line, e.Column)
}

// Level is a parsed Sokoban grid. Row 0 is the bottom row, which is the last line of the source
// text, so y grows upward like world space.
type Level struct {
	width  int
	height int
	tiles  [][]Tile
}

// Parse reads a level from r. Lines are read top to bottom and stored bottom to top; rows shorter
// than the widest one are padded with floor. Trailing blank lines are ignored.
//
// Parameters:
//   - r: the level source
//
// Returns:
//   - *Level: the parsed level
//   - error: *ParseError for an unknown rune, or the read error
func Parse(r io.Reader) (*Level, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	l := &Level{height: len(lines), tiles: make([][]Tile, len(lines))}
	for i, line := range lines {
		row := make([]Tile, 0, len(line))
		col := 0
		for _, ch := range line {
			col++
			t, ok := runeTiles[ch]
			if !ok {
				return nil, &ParseError{Line: i + 1, Column: col, Rune: ch}
			}
			row = append(row, t)
		}
		l.tiles[len(lines)-1-i] = row
		l.width = max(l.width, len(row))
	}
	for y, row := range l.tiles {
		for len(row) < l.width {
			row = append(row, TileFloor)
		}
		l.tiles[y] = row
	}
	return l, nil
}

// ParseString parses a level from a string.
func ParseString(s string) (*Level, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the level file at path.
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Width returns the number of columns.
func (l *Level) Width() int {
	return l.width
}

// Height returns the number of rows.
func (l *Level) Height() int {
	return l.height
}

// At returns the tile at column x, row y. Cells outside the grid are walls.
func (l *Level) At(x, y int) Tile {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return TileWall
	}
	return l.tiles[y][x]
}

// Player returns the player's position.
//
// Returns:
//   - int, int: the column and row
//   - bool: false if the level has no player
func (l *Level) Player() (int, int, bool) {
	for y, row := range l.tiles {
		for x, t := range row {
			if t.HasPlayer() {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Count returns the number of cells satisfying match.
func (l *Level) Count(match func(Tile) bool) int {
	n := 0
	for _, row := range l.tiles {
		for _, t := range row {
			if match(t) {
				n++
			}
		}
	}
	return n
}

// Solved reports whether every goal holds a box. A level without goals is never solved.
func (l *Level) Solved() bool {
	goals := l.Count(Tile.HasGoal)
	return goals > 0 && l.Count(func(t Tile) bool { return t == TileBoxOnGoal }) == goals
}

// Move moves the player one cell by (dx, dy), pushing a single box if one is in the way. Walls and
// box chains block the move.
//
// Parameters:
//   - dx, dy: the step; exactly one must be +/-1 and the other 0
//
// Returns:
//   - bool: true if the player moved
func (l *Level) Move(dx, dy int) bool {
	if dx*dx+dy*dy != 1 {
		return false
	}
	px, py, ok := l.Player()
	if !ok {
		return false
	}
	nx, ny := px+dx, py+dy
	next := l.At(nx, ny)
	switch {
	case next == TileWall:
		return false
	case next.HasBox():
		bx, by := nx+dx, ny+dy
		beyond := l.At(bx, by)
		if beyond == TileWall || beyond.HasBox() {
			return false
		}
		l.set(bx, by, withBox(beyond))
		l.set(nx, ny, withoutBox(next))
	}
	l.set(px, py, withoutPlayer(l.At(px, py)))
	l.set(nx, ny, withPlayer(l.At(nx, ny)))
	return true
}

func (l *Level) set(x, y int, t Tile) {
	l.tiles[y][x] = t
}

func withBox(t Tile) Tile {
	if t.HasGoal() {
		return TileBoxOnGoal
	}
	return TileBox
}

func withoutBox(t Tile) Tile {
	if t.HasGoal() {
		return TileGoal
	}
	return TileFloor
}

func withPlayer(t Tile) Tile {
	if t.HasGoal() {
		return TilePlayerOnGoal
	}
	return TilePlayer
}

func withoutPlayer(t Tile) Tile {
	if t.HasGoal() {
		return TileGoal
	}
	return TileFloor
}
