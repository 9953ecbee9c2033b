// Package formats provides pluggable level pack file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/crystals/internal/level"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID      string            `yaml:"id"`
	Title   string            `yaml:"title,omitempty"`
	Palette string            `yaml:"palette,omitempty"` // named palette
	Colors  map[string]string `yaml:"colors,omitempty"`  // inline palette, wins over Palette
	Levels  []YAMLLevel       `yaml:"levels"`
}

// YAMLLevel represents a single authored level in YAML format.
type YAMLLevel struct {
	Name         string   `yaml:"name"`
	OptimalMoves int      `yaml:"optimal_moves"`
	Hint         string   `yaml:"hint,omitempty"`
	Grid         []string `yaml:"grid"`
}

// Pack is a decoded pack file. Levels are still unparsed definitions:
// resolving the palette and parsing grids is up to the caller.
type Pack struct {
	ID          string
	Title       string
	PaletteName string
	Colors      map[string]string
	Definitions []level.Definition
}

// ParseYAML decodes a YAML pack file.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yp.ID == "" {
		return Pack{}, fmt.Errorf("pack has no id")
	}

	title := yp.Title
	if title == "" {
		title = yp.ID
	}

	pack := Pack{
		ID:          yp.ID,
		Title:       title,
		PaletteName: yp.Palette,
		Colors:      yp.Colors,
		Definitions: make([]level.Definition, len(yp.Levels)),
	}
	for i, yl := range yp.Levels {
		pack.Definitions[i] = level.Definition{
			Name:         yl.Name,
			Hint:         yl.Hint,
			OptimalMoves: yl.OptimalMoves,
			Grid:         yl.Grid,
		}
	}

	return pack, nil
}

// EncodeYAML writes a pack back to the YAML file format.
func EncodeYAML(p Pack) ([]byte, error) {
	yp := YAMLPack{
		ID:      p.ID,
		Title:   p.Title,
		Palette: p.PaletteName,
		Colors:  p.Colors,
		Levels:  make([]YAMLLevel, len(p.Definitions)),
	}
	for i, def := range p.Definitions {
		yp.Levels[i] = YAMLLevel{
			Name:         def.Name,
			OptimalMoves: def.OptimalMoves,
			Hint:         def.Hint,
			Grid:         def.Grid,
		}
	}

	data, err := yaml.Marshal(&yp)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
