package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/crystals/internal/level"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
default_palette: sea
workers: 4
palettes:
  sea:
    t: teal
    T: teal
    n: navy
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultPalette != "sea" || cfg.Workers != 4 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.CatalogPath != DefaultConfig().CatalogPath {
		t.Errorf("missing field should keep default, got %q", cfg.CatalogPath)
	}

	pal, err := cfg.Palette("sea")
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if color, _, ok := pal.Lookup('n'); !ok || color != "navy" {
		t.Errorf("expected navy, got %q %v", color, ok)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "palettes: [oops"},
		{"reserved symbol", "palettes:\n  bad:\n    P: purple\n"},
		{"unknown default", "default_palette: nowhere\n"},
		{"negative workers", "workers: -2\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Errorf("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing custom config")
	}
}

func TestEmbeddedDefault(t *testing.T) {
	cfg, err := decode(defaultConfigYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if cfg.DefaultPalette != "rainbow" {
		t.Errorf("expected rainbow default, got %q", cfg.DefaultPalette)
	}
	if _, err := cfg.Palette("mono"); err != nil {
		t.Errorf("expected mono palette: %v", err)
	}
}

func TestPaletteResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palettes = map[string]map[string]string{
		"rainbow": {"r": "crimson"},
		"extra":   {"x": "silver"},
	}

	pal, err := cfg.Palette("rainbow")
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if color, _, _ := pal.Lookup('r'); color != "crimson" {
		t.Errorf("config palette should shadow builtin, got %q", color)
	}

	if _, err := cfg.Palette("jewel"); err != nil {
		t.Errorf("builtin palette should resolve: %v", err)
	}
	if _, err := cfg.Palette("missing"); err == nil {
		t.Errorf("expected error for unknown palette")
	}

	names := cfg.PaletteNames()
	want := []string{"extra", "jewel", "rainbow"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestPaletteNamesCoverBuiltins(t *testing.T) {
	cfg := &Config{}
	names := cfg.PaletteNames()
	builtins := level.BuiltinNames()
	if len(names) != len(builtins) {
		t.Fatalf("expected %v, got %v", builtins, names)
	}
	for i, name := range names {
		if name != builtins[i] {
			t.Errorf("expected %v, got %v", builtins, names)
		}
		if _, err := cfg.Palette(name); err != nil {
			t.Errorf("listed palette %q does not resolve: %v", name, err)
		}
	}
}

func TestLevelOptions(t *testing.T) {
	cfg := DefaultConfig()
	if opts := cfg.LevelOptions(); len(opts) != 0 {
		t.Errorf("expected no options by default")
	}
	cfg.StrictSymbols = true
	if opts := cfg.LevelOptions(); len(opts) != 1 {
		t.Errorf("expected strict option")
	}
}
