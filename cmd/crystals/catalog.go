package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystals/internal/platform/tui"
	"github.com/vovakirdan/crystals/internal/storage"
)

var flagCatalogDelete string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List packs stored in the level catalog",
	Long: `Shows the packs stored in the level catalog.

Examples:
  crystals catalog
  crystals catalog --delete rainbow`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatalogDelete, "delete", "", "Remove a pack from the catalog")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagCatalogDelete != "" {
		err := store.DeletePack(flagCatalogDelete)
		if errors.Is(err, storage.ErrPackNotFound) {
			return fmt.Errorf("pack %s is not in catalog %s", flagCatalogDelete, cfg.CatalogPath)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n\n", flagCatalogDelete)
	}

	packs, err := store.Packs()
	if err != nil {
		return err
	}

	fmt.Printf("Level catalog - %s\n", cfg.CatalogPath)
	fmt.Println()

	if len(packs) == 0 {
		fmt.Println("No packs imported yet.")
		fmt.Println()
		fmt.Println("Run 'crystals import' to add the built-in packs.")
		return nil
	}

	fmt.Println(tui.CatalogTable(packs))
	return nil
}
