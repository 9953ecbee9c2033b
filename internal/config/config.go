// Package config provides YAML-based configuration loading for the
// crystals tools: named palettes and loader defaults.
package config

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/crystals/internal/level"
)

// Config contains all configuration for loading level packs.
type Config struct {
	DefaultPalette string                       `yaml:"default_palette"`
	StrictSymbols  bool                         `yaml:"strict_symbols"`
	Workers        int                          `yaml:"workers"` // <= 1 parses sequentially
	CatalogPath    string                       `yaml:"catalog_path"`
	Palettes       map[string]map[string]string `yaml:"palettes"` // name -> symbol -> color
}

// Palette resolves a palette by name. Palettes defined in the config shadow
// the built-in ones.
func (c *Config) Palette(name string) (level.Palette, error) {
	if table, ok := c.Palettes[name]; ok {
		return level.NewPalette(name, table)
	}
	if pal, ok := level.Builtin(name); ok {
		return pal, nil
	}
	return level.Palette{}, fmt.Errorf("unknown palette %q", name)
}

// PaletteNames returns the names of all resolvable palettes, sorted.
func (c *Config) PaletteNames() []string {
	names := level.BuiltinNames()
	for name := range c.Palettes {
		if _, builtin := level.Builtin(name); !builtin {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks that every configured palette is well formed and that the
// default palette resolves.
func (c *Config) Validate() error {
	names := make([]string, 0, len(c.Palettes))
	for name := range c.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := level.NewPalette(name, c.Palettes[name]); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.DefaultPalette != "" {
		if _, err := c.Palette(c.DefaultPalette); err != nil {
			return fmt.Errorf("config: default_palette: %w", err)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// LevelOptions returns the parse options implied by the config.
func (c *Config) LevelOptions() []level.Option {
	if c.StrictSymbols {
		return []level.Option{level.WithStrictSymbols()}
	}
	return nil
}
