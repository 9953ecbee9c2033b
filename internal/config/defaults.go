package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPalette: "rainbow",
		StrictSymbols:  false,
		Workers:        1,
		CatalogPath:    "~/.crystals/catalog.db",
	}
}
