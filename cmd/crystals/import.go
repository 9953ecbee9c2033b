package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystals/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Store parsed packs in the level catalog",
	Long: `Parses the packs in dir (or the built-in packs) and stores them in the
level catalog, replacing earlier imports of the same pack. Levels that fail
to parse are left out and reported.

Examples:
  crystals import
  crystals import --db ./catalog.db ./packs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	packs, loadErr := newLoader(&cfg, logger, dirArg(args)).LoadAll(cmd.Context())
	if loadErr != nil {
		logger.Warn("some levels were not imported", "error", loadErr)
	}

	store, err := storage.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	imported := 0
	for _, p := range packs {
		if err := store.SavePack(p.ID, p.Title, p.Palette, p.Levels); err != nil {
			logger.Error("import failed", "pack", p.ID, "error", err)
			continue
		}
		logger.Debug("imported pack", "pack", p.ID, "levels", len(p.Levels))
		imported++
	}

	fmt.Printf("Imported %d of %d packs into %s\n", imported, len(packs), cfg.CatalogPath)
	if imported < len(packs) {
		return fmt.Errorf("%d packs failed to import", len(packs)-imported)
	}
	return nil
}
