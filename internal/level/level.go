// Package level converts authored ASCII level definitions into structured
// levels for the crystal puzzle engine.
//
// The package holds no state: Parse and the batch loaders are pure functions
// of their inputs and are safe to call from multiple goroutines.
package level

import (
	"fmt"
	"sort"
)

// Grid symbols with a fixed meaning in every palette.
const (
	SymbolWall   = '#'
	SymbolFloor  = '.'
	SymbolPlayer = 'P'
)

// TileKind is the static type of a grid cell.
type TileKind uint8

const (
	Floor TileKind = iota
	Wall
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Coord is a 0-based grid position. X is the column, Y is the row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Less reports whether c comes before other in row-major order.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Marker is a colored entity placed on a floor cell: a crystal or a restore point.
type Marker struct {
	Coord
	Color Color
}

// Definition is one authored level as it appears in a level pack.
type Definition struct {
	Name         string
	Hint         string
	OptimalMoves int
	Grid         []string
}

// Level is a parsed level ready to hand to the game engine.
// It is built once by Parse and must not be modified afterwards; use Clone
// to get a private copy.
type Level struct {
	Name         string
	Hint         string
	OptimalMoves int

	Width  int
	Height int
	Tiles  [][]TileKind // [row][col]

	Player        *Coord // nil when the level has no player start
	Crystals      []Marker
	RestorePoints []Marker
}

// InBounds reports whether c lies inside the grid.
func (l *Level) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.Width && c.Y >= 0 && c.Y < l.Height
}

// At returns the tile at (x, y). Cells outside the grid read as walls.
func (l *Level) At(x, y int) TileKind {
	if !l.InBounds(C(x, y)) {
		return Wall
	}
	return l.Tiles[y][x]
}

// IsWall reports whether c is a wall or outside the grid.
func (l *Level) IsWall(c Coord) bool {
	return l.At(c.X, c.Y) == Wall
}

// WallCount returns the number of wall tiles.
func (l *Level) WallCount() int {
	n := 0
	for _, row := range l.Tiles {
		for _, t := range row {
			if t == Wall {
				n++
			}
		}
	}
	return n
}

// CrystalColors returns the distinct crystal colors, sorted by name.
func (l *Level) CrystalColors() []Color {
	seen := make(map[Color]bool)
	var colors []Color
	for _, m := range l.Crystals {
		if !seen[m.Color] {
			seen[m.Color] = true
			colors = append(colors, m.Color)
		}
	}
	sort.Slice(colors, func(i, j int) bool {
		return colors[i] < colors[j]
	})
	return colors
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() Level {
	clone := Level{
		Name:         l.Name,
		Hint:         l.Hint,
		OptimalMoves: l.OptimalMoves,
		Width:        l.Width,
		Height:       l.Height,
		Tiles:        make([][]TileKind, len(l.Tiles)),
	}
	for i, row := range l.Tiles {
		clone.Tiles[i] = make([]TileKind, len(row))
		copy(clone.Tiles[i], row)
	}
	if l.Player != nil {
		p := *l.Player
		clone.Player = &p
	}
	if l.Crystals != nil {
		clone.Crystals = append([]Marker(nil), l.Crystals...)
	}
	if l.RestorePoints != nil {
		clone.RestorePoints = append([]Marker(nil), l.RestorePoints...)
	}
	return clone
}
