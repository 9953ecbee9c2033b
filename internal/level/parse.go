package level

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

type options struct {
	strict bool
	logger *log.Logger
}

// Option configures Parse and the batch loaders.
type Option func(*options)

// WithStrictSymbols rejects levels containing symbols that are neither
// reserved nor defined by the palette. By default such cells are floor and a
// warning is logged.
func WithStrictSymbols() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger used for warnings about permissive fallbacks.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse converts one level definition into a Level using pal to resolve
// crystal and restore point symbols.
//
// Cells are scanned in row-major order, so Crystals and RestorePoints come
// out sorted by row, then column. A level is rejected with a *ParseError if
// its rows differ in length, if it has no player start or more than one, or
// (with WithStrictSymbols) if it contains an unknown symbol.
func Parse(def Definition, pal Palette, opts ...Option) (Level, error) {
	o := buildOptions(opts)

	rows, err := splitRows(def)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		Name:         def.Name,
		Hint:         def.Hint,
		OptimalMoves: def.OptimalMoves,
		Width:        len(rows[0]),
		Height:       len(rows),
		Tiles:        make([][]TileKind, len(rows)),
	}

	for y, row := range rows {
		tiles := make([]TileKind, lvl.Width)
		for x, ch := range row {
			switch ch {
			case SymbolWall:
				tiles[x] = Wall
				continue
			case SymbolFloor:
			case SymbolPlayer:
				if lvl.Player != nil {
					return Level{}, &ParseError{
						Level:  def.Name,
						Kind:   ErrDuplicatePlayer,
						X:      x,
						Y:      y,
						Symbol: ch,
						Msg:    fmt.Sprintf("first start at %s", lvl.Player),
					}
				}
				p := C(x, y)
				lvl.Player = &p
			default:
				color, role, ok := pal.Lookup(ch)
				if !ok {
					if o.strict {
						return Level{}, &ParseError{
							Level:  def.Name,
							Kind:   ErrUnknownSymbol,
							X:      x,
							Y:      y,
							Symbol: ch,
							Msg:    fmt.Sprintf("%q is not in palette %s", ch, pal.Name()),
						}
					}
					o.logger.Warn("unknown symbol treated as floor",
						"level", def.Name, "symbol", string(ch), "x", x, "y", y)
					break
				}
				m := Marker{Coord: C(x, y), Color: color}
				if role == RoleRestore {
					lvl.RestorePoints = append(lvl.RestorePoints, m)
				} else {
					lvl.Crystals = append(lvl.Crystals, m)
				}
			}
			tiles[x] = Floor
		}
		lvl.Tiles[y] = tiles
	}

	if lvl.Player == nil {
		return Level{}, &ParseError{Level: def.Name, Kind: ErrMissingPlayer, X: -1, Y: -1,
			Msg: fmt.Sprintf("no %q in grid", SymbolPlayer)}
	}

	o.logger.Debug("parsed level", "level", def.Name,
		"size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
		"crystals", len(lvl.Crystals), "restore_points", len(lvl.RestorePoints))

	return lvl, nil
}

// splitRows decodes the grid into runes and checks that it is rectangular.
func splitRows(def Definition) ([][]rune, error) {
	if len(def.Grid) == 0 {
		return nil, &ParseError{Level: def.Name, Kind: ErrMalformedGrid, X: -1, Y: -1, Msg: "grid has no rows"}
	}

	rows := make([][]rune, len(def.Grid))
	for y, line := range def.Grid {
		rows[y] = []rune(line)
	}

	width := len(rows[0])
	if width == 0 {
		return nil, &ParseError{Level: def.Name, Kind: ErrMalformedGrid, X: -1, Y: 0, Msg: "first row is empty"}
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, &ParseError{
				Level: def.Name,
				Kind:  ErrMalformedGrid,
				X:     -1,
				Y:     y,
				Msg:   fmt.Sprintf("row has %d cells, want %d", len(row), width),
			}
		}
	}
	return rows, nil
}
