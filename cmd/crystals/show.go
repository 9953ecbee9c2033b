package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crystals/internal/levels"
	"github.com/vovakirdan/crystals/internal/platform/tui"
	"github.com/vovakirdan/crystals/internal/preview"
)

var (
	flagShowDir         string
	flagShowPlain       bool
	flagShowInteractive bool
)

var showCmd = &cobra.Command{
	Use:   "show <pack> [level]",
	Short: "Preview levels in the terminal",
	Long: `Draws the levels of a pack, or a single level by its 1-based position
in the pack file. Levels that failed to parse keep their number and are
listed as skipped. Colors are used when stdout is a terminal.

With --interactive the levels are browsed in a full screen picker and the
chosen level is printed on exit.

Examples:
  crystals show rainbow
  crystals show rainbow 7
  crystals show -i jewel
  crystals show --dir ./packs mypack 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowDir, "dir", "", "Directory of pack files (default: built-in packs)")
	showCmd.Flags().BoolVar(&flagShowPlain, "plain", false, "Disable colors")
	showCmd.Flags().BoolVarP(&flagShowInteractive, "interactive", "i", false, "Browse levels in a full screen picker")
}

func runShow(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pack, err := newLoader(&cfg, logger, flagShowDir).LoadByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	opts := preview.Options{
		Color: !flagShowPlain && tty,
	}

	if flagShowInteractive {
		if !tty {
			return fmt.Errorf("--interactive needs a terminal")
		}
		if len(args) == 2 {
			return fmt.Errorf("--interactive does not take a level number")
		}
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return fmt.Errorf("reading terminal size: %w", err)
		}
		n, chosen, err := tui.RunPicker(pack, opts, width, height)
		if err != nil || !chosen {
			return err
		}
		return showLevel(pack, n, opts)
	}

	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("level must be a number, got %q", args[1])
		}
		return showLevel(pack, n, opts)
	}

	fmt.Printf("%s (%s palette)\n\n", pack.Title, pack.Palette.Name())
	for n := 1; n <= pack.Len(); n++ {
		if f, skipped := pack.SkippedAt(n); skipped {
			fmt.Printf("%d. %s\nskipped: %v\n\n", n, f.Name, f.Err)
			continue
		}
		if err := showLevel(pack, n, opts); err != nil {
			return err
		}
	}
	return nil
}

func showLevel(pack levels.Pack, n int, opts preview.Options) error {
	lvl, err := pack.Level(n)
	if err != nil {
		return err
	}

	grid, err := preview.Render(lvl, pack.Palette, opts)
	if err != nil {
		return err
	}

	fmt.Println(preview.Header(n, lvl, opts))
	fmt.Println(grid)
	if legend := preview.Legend(lvl, pack.Palette, opts); legend != "" {
		fmt.Println(legend)
	}
	fmt.Println()
	return nil
}
