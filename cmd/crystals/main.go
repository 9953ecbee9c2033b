// crystals is a toolkit for authors of crystal puzzle level packs.
//
// Usage:
//
//	crystals list [dir]            - List level packs
//	crystals check [dir]           - Parse every level and report failures
//	crystals show <pack> [level]   - Preview levels in the terminal
//	crystals import [dir]          - Store parsed packs in the level catalog
//	crystals catalog               - List packs stored in the catalog
//
// Without a directory the packs built into the binary are used.
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.crystals/config.yaml)
//	--db <path>       - Catalog database path
//	--palette <name>  - Palette for packs that name none
//	--strict          - Reject unknown grid symbols
//	--workers <n>     - Parse levels concurrently
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystals/internal/config"
	"github.com/vovakirdan/crystals/internal/level"
	"github.com/vovakirdan/crystals/internal/levels"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagPalette string
	flagStrict  bool
	flagWorkers int
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crystals",
	Short: "Crystals - Level pack tools for the crystal puzzle",
	Long: `Crystals loads, checks and previews level packs for the crystal puzzle.

Levels are ASCII grids: '#' wall, '.' floor, 'P' player start, lowercase
letters are crystals and uppercase letters restore points, colored by the
pack's palette.

Examples:
  crystals list
  crystals check ./packs
  crystals show rainbow 7
  crystals import ./packs
  crystals catalog`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to catalog database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagPalette, "palette", "", "Palette for packs that name none (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Reject unknown grid symbols")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Parse workers (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(catalogCmd)
}

// newLogger builds the command-line logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "crystals",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.CatalogPath = flagDBPath
	}
	if flagPalette != "" {
		cfg.DefaultPalette = flagPalette
	}
	if flagStrict {
		cfg.StrictSymbols = true
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}

	return cfg, cfg.Validate()
}

// newLoader returns a pack loader for dir, or for the built-in packs when
// dir is empty.
func newLoader(cfg *config.Config, logger *log.Logger, dir string) *levels.Loader {
	var loader *levels.Loader
	if dir == "" {
		loader = levels.NewBuiltinLoader()
	} else {
		loader = levels.NewLoader(dir)
	}

	loader.Palettes = cfg
	loader.DefaultPalette = cfg.DefaultPalette
	loader.Workers = cfg.Workers
	loader.Options = append(cfg.LevelOptions(), level.WithLogger(logger))
	return loader
}

// dirArg returns the optional directory argument.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
