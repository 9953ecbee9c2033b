package level

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Color is a crystal color name, e.g. "red". Colors are data: the set of
// valid names is whatever the palette in use defines.
type Color string

// Role tells what a palette symbol places on the grid.
type Role uint8

const (
	RoleCrystal Role = iota // lowercase symbol
	RoleRestore             // uppercase symbol
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleRestore {
		return "restore point"
	}
	return "crystal"
}

// Palette maps grid symbols to crystal colors. Lowercase symbols place
// crystals, uppercase symbols place restore points. The zero value is an
// empty palette in which every letter is an unknown symbol.
type Palette struct {
	name    string
	symbols map[rune]Color
}

// NewPalette builds a palette from a symbol table such as {"r": "red", "R": "red"}.
// Keys must be single upper- or lowercase letters; 'P' is reserved for the
// player start.
func NewPalette(name string, table map[string]string) (Palette, error) {
	p := Palette{name: name, symbols: make(map[rune]Color, len(table))}
	for key, color := range table {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) {
			return Palette{}, fmt.Errorf("palette %s: symbol %q must be a single character", name, key)
		}
		if r == SymbolPlayer {
			return Palette{}, fmt.Errorf("palette %s: symbol %q is reserved for the player start", name, key)
		}
		if !unicode.IsLower(r) && !unicode.IsUpper(r) {
			return Palette{}, fmt.Errorf("palette %s: symbol %q must be a cased letter", name, key)
		}
		if color == "" {
			return Palette{}, fmt.Errorf("palette %s: symbol %q has no color", name, key)
		}
		p.symbols[r] = Color(color)
	}
	return p, nil
}

// MustPalette is like NewPalette but panics on error. Intended for
// package-level tables.
func MustPalette(name string, table map[string]string) Palette {
	p, err := NewPalette(name, table)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the palette name.
func (p Palette) Name() string {
	return p.name
}

// Len returns the number of symbols in the palette.
func (p Palette) Len() int {
	return len(p.symbols)
}

// Lookup resolves a grid symbol. ok is false for symbols the palette does
// not define.
func (p Palette) Lookup(r rune) (color Color, role Role, ok bool) {
	color, ok = p.symbols[r]
	if !ok {
		return "", RoleCrystal, false
	}
	if unicode.IsUpper(r) {
		return color, RoleRestore, true
	}
	return color, RoleCrystal, true
}

// SymbolFor returns the symbol that places color in the given role.
// When several symbols qualify the lowest one wins, so the result is stable.
func (p Palette) SymbolFor(color Color, role Role) (rune, bool) {
	var best rune
	found := false
	for r, c := range p.symbols {
		if c != color {
			continue
		}
		if unicode.IsUpper(r) != (role == RoleRestore) {
			continue
		}
		if !found || r < best {
			best = r
			found = true
		}
	}
	return best, found
}

// Colors returns every color the palette defines, sorted by name.
func (p Palette) Colors() []Color {
	seen := make(map[Color]bool)
	var colors []Color
	for _, c := range p.symbols {
		if !seen[c] {
			seen[c] = true
			colors = append(colors, c)
		}
	}
	sort.Slice(colors, func(i, j int) bool {
		return colors[i] < colors[j]
	})
	return colors
}

// Table returns the palette as a symbol table, the inverse of NewPalette.
func (p Palette) Table() map[string]string {
	table := make(map[string]string, len(p.symbols))
	for r, c := range p.symbols {
		table[string(r)] = string(c)
	}
	return table
}

// Rainbow returns the seven-color rainbow palette:
// r/R red, o/O orange, y/Y yellow, g/G green, b/B blue, i/I indigo, v/V violet.
func Rainbow() Palette {
	return MustPalette("rainbow", map[string]string{
		"r": "red", "R": "red",
		"o": "orange", "O": "orange",
		"y": "yellow", "Y": "yellow",
		"g": "green", "G": "green",
		"b": "blue", "B": "blue",
		"i": "indigo", "I": "indigo",
		"v": "violet", "V": "violet",
	})
}

// Jewel returns the seven-color jewel palette. It swaps indigo and violet
// for purple and pink. Purple restore points use 'U' because 'P' marks the
// player.
func Jewel() Palette {
	return MustPalette("jewel", map[string]string{
		"r": "red", "R": "red",
		"o": "orange", "O": "orange",
		"y": "yellow", "Y": "yellow",
		"g": "green", "G": "green",
		"b": "blue", "B": "blue",
		"p": "purple", "U": "purple",
		"k": "pink", "K": "pink",
	})
}

var builtins = map[string]func() Palette{
	"rainbow": Rainbow,
	"jewel":   Jewel,
}

// Builtin returns a built-in palette by name.
func Builtin(name string) (Palette, bool) {
	ctor, ok := builtins[name]
	if !ok {
		return Palette{}, false
	}
	return ctor(), true
}

// BuiltinNames returns the names accepted by Builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
