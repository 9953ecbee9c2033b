package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystals/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Parse every level and report failures",
	Long: `Parses every pack in dir (or the built-in packs) and reports each level
that fails to load, with the reason. Exits non-zero if anything failed.

Examples:
  crystals check ./packs
  crystals check --strict ./packs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	packs, loadErr := newLoader(&cfg, logger, dirArg(args)).LoadAll(cmd.Context())

	total := 0
	for _, p := range packs {
		total += len(p.Levels)
		fmt.Printf("ok    %s: %d levels (%s)\n", p.ID, len(p.Levels), p.FilePath)
	}

	if loadErr == nil {
		fmt.Printf("\n%d packs, %d levels, no problems.\n", len(packs), total)
		return nil
	}

	failed := reportFailures(loadErr)
	fmt.Printf("\n%d packs, %d levels loaded, %d problems.\n", len(packs), total, failed)
	return fmt.Errorf("check failed")
}

// reportFailures prints one line per failed level or file and returns the count.
func reportFailures(err error) int {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		fmt.Printf("FAIL  %v\n", err)
		return 1
	}

	n := 0
	for _, e := range joined.Unwrap() {
		var be *level.BatchError
		if !errors.As(e, &be) {
			fmt.Printf("FAIL  %v\n", e)
			n++
			continue
		}
		for _, f := range be.Failures {
			fmt.Printf("FAIL  level %d %q: %v\n", f.Index+1, f.Name, f.Err)
			n++
		}
	}
	return n
}
