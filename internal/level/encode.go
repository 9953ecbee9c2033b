package level

import (
	"fmt"
)

// Encode renders a level back to grid rows using pal, so that
// Parse(Encode(l)) reproduces l. It fails if the palette has no symbol for
// one of the level's colors or if two entities share a cell.
func Encode(l Level, pal Palette) ([]string, error) {
	cells := make([][]rune, l.Height)
	for y := 0; y < l.Height; y++ {
		cells[y] = make([]rune, l.Width)
		for x := 0; x < l.Width; x++ {
			if l.At(x, y) == Wall {
				cells[y][x] = SymbolWall
			} else {
				cells[y][x] = SymbolFloor
			}
		}
	}

	place := func(c Coord, sym rune, what string) error {
		if !l.InBounds(c) {
			return fmt.Errorf("encode %q: %s at %s is outside the grid", l.Name, what, c)
		}
		if cur := cells[c.Y][c.X]; cur != SymbolFloor {
			return fmt.Errorf("encode %q: %s at %s overlaps %q", l.Name, what, c, cur)
		}
		cells[c.Y][c.X] = sym
		return nil
	}

	if l.Player != nil {
		if err := place(*l.Player, SymbolPlayer, "player start"); err != nil {
			return nil, err
		}
	}
	for _, group := range []struct {
		markers []Marker
		role    Role
	}{
		{l.Crystals, RoleCrystal},
		{l.RestorePoints, RoleRestore},
	} {
		for _, m := range group.markers {
			sym, ok := pal.SymbolFor(m.Color, group.role)
			if !ok {
				return nil, fmt.Errorf("encode %q: palette %s has no %s symbol for %s",
					l.Name, pal.Name(), group.role, m.Color)
			}
			if err := place(m.Coord, sym, group.role.String()); err != nil {
				return nil, err
			}
		}
	}

	rows := make([]string, l.Height)
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows, nil
}

// Definition returns the level as a definition encoded with pal.
func (l *Level) Definition(pal Palette) (Definition, error) {
	grid, err := Encode(*l, pal)
	if err != nil {
		return Definition{}, err
	}
	return Definition{
		Name:         l.Name,
		Hint:         l.Hint,
		OptimalMoves: l.OptimalMoves,
		Grid:         grid,
	}, nil
}
