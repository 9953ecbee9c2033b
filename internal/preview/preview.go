// Package preview draws parsed levels as (optionally colored) ASCII for
// authors checking their packs in a terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystals/internal/level"
)

// colorStyles maps well-known crystal color names to ANSI 256 colors.
// Colors not listed here are drawn unstyled.
var colorStyles = map[level.Color]lipgloss.Style{
	"red":    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"orange": lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	"yellow": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"green":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"blue":   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"indigo": lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	"violet": lipgloss.NewStyle().Foreground(lipgloss.Color("177")),
	"purple": lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
	"pink":   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	"teal":   lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	"white":  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

var (
	wallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	floorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	playerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	restoreStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	hintStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// Options control how a level is drawn.
type Options struct {
	Color bool // emit ANSI styling
}

type cell struct {
	r     rune
	style lipgloss.Style
}

// Render draws the level grid. With color disabled the output equals the
// level's encoded grid, one row per line.
func Render(l level.Level, pal level.Palette, opts Options) (string, error) {
	cells := make([][]cell, l.Height)
	for y := 0; y < l.Height; y++ {
		cells[y] = make([]cell, l.Width)
		for x := 0; x < l.Width; x++ {
			if l.At(x, y) == level.Wall {
				cells[y][x] = cell{level.SymbolWall, wallStyle}
			} else {
				cells[y][x] = cell{level.SymbolFloor, floorStyle}
			}
		}
	}

	if l.Player != nil && l.InBounds(*l.Player) {
		cells[l.Player.Y][l.Player.X] = cell{level.SymbolPlayer, playerStyle}
	}
	for _, m := range l.Crystals {
		if !l.InBounds(m.Coord) {
			return "", fmt.Errorf("preview: level %q: crystal at %s is outside the grid", l.Name, m.Coord)
		}
		sym, err := symbol(pal, m, level.RoleCrystal)
		if err != nil {
			return "", err
		}
		cells[m.Y][m.X] = cell{sym, colorStyles[m.Color]}
	}
	for _, m := range l.RestorePoints {
		if !l.InBounds(m.Coord) {
			return "", fmt.Errorf("preview: level %q: restore point at %s is outside the grid", l.Name, m.Coord)
		}
		sym, err := symbol(pal, m, level.RoleRestore)
		if err != nil {
			return "", err
		}
		cells[m.Y][m.X] = cell{sym, restoreStyle.Inherit(colorStyles[m.Color])}
	}

	var sb strings.Builder
	sb.Grow(l.Width*l.Height*2 + l.Height)
	for y, row := range cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, c := range row {
			if opts.Color {
				sb.WriteString(c.style.Render(string(c.r)))
			} else {
				sb.WriteRune(c.r)
			}
		}
	}
	return sb.String(), nil
}

func symbol(pal level.Palette, m level.Marker, role level.Role) (rune, error) {
	sym, ok := pal.SymbolFor(m.Color, role)
	if !ok {
		return 0, fmt.Errorf("preview: palette %s has no %s symbol for %s", pal.Name(), role, m.Color)
	}
	return sym, nil
}

// Header returns the title block shown above a preview.
func Header(n int, l level.Level, opts Options) string {
	title := fmt.Sprintf("%d. %s", n, l.Name)
	info := fmt.Sprintf("%dx%d, %d crystals, optimal %d moves", l.Width, l.Height, len(l.Crystals), l.OptimalMoves)
	hint := l.Hint

	if opts.Color {
		title = titleStyle.Render(title)
		if hint != "" {
			hint = hintStyle.Render(hint)
		}
	}

	lines := []string{title, info}
	if hint != "" {
		lines = append(lines, hint)
	}
	return strings.Join(lines, "\n")
}

// Legend lists the palette symbols that appear in the level.
func Legend(l level.Level, pal level.Palette, opts Options) string {
	var parts []string
	for _, c := range l.CrystalColors() {
		crystal, _ := pal.SymbolFor(c, level.RoleCrystal)
		entry := fmt.Sprintf("%c %s", crystal, c)
		if restore, ok := pal.SymbolFor(c, level.RoleRestore); ok {
			entry = fmt.Sprintf("%c/%c %s", crystal, restore, c)
		}
		if style, ok := colorStyles[c]; ok && opts.Color {
			entry = style.Render(entry)
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "  ")
}
