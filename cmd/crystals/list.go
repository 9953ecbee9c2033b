package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List level packs",
	Long:  `Shows the level packs found in dir, or the built-in packs.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	packs, err := newLoader(&cfg, logger, dirArg(args)).LoadAll(cmd.Context())
	if err != nil {
		logger.Warn("some packs did not load cleanly", "error", err)
	}

	if len(packs) == 0 {
		fmt.Println("No level packs found.")
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-7s  %s\n", maxIDLen, "ID", "Palette", "Levels", "Title")
	fmt.Printf("  %-*s  %-8s  %-7s  %s\n", maxIDLen, "--", "-------", "------", "-----")

	for _, p := range packs {
		fmt.Printf("  %-*s  %-8s  %-7d  %s\n", maxIDLen, p.ID, p.Palette.Name(), len(p.Levels), p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'crystals show <id>' to preview a pack.")
	return nil
}
