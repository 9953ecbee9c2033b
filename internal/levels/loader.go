// Package levels loads level packs from disk or from the packs built into
// the binary. This package depends on level but level does not depend on levels.
package levels

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/crystals/internal/level"
	"github.com/vovakirdan/crystals/internal/levels/formats"
)

//go:embed packs/*.yaml
var builtinPacks embed.FS

// DefaultPalette is used for packs that name no palette.
const DefaultPalette = "rainbow"

// Pack is a loaded level pack.
type Pack struct {
	ID       string
	Title    string
	Palette  level.Palette
	Levels   []level.Level
	FilePath string

	// Positions holds the 1-based file position of each entry in Levels.
	Positions []int
	// Skipped lists the levels of the file that failed to parse.
	// Failure.Index is 0-based.
	Skipped []level.Failure
}

// Len returns the number of levels in the pack file, loaded or not.
func (p *Pack) Len() int {
	return len(p.Levels) + len(p.Skipped)
}

// Level returns the level at 1-based file position n, the numbering the
// check command reports failures with. A level that failed to parse
// yields an error naming the reason.
func (p *Pack) Level(n int) (level.Level, error) {
	if n < 1 || n > p.Len() {
		return level.Level{}, fmt.Errorf("pack %s has %d levels, no level %d", p.ID, p.Len(), n)
	}
	for i, pos := range p.Positions {
		if pos == n {
			return p.Levels[i], nil
		}
	}
	if f, ok := p.SkippedAt(n); ok {
		return level.Level{}, fmt.Errorf("pack %s: level %d %q was skipped: %w", p.ID, n, f.Name, f.Err)
	}
	return level.Level{}, fmt.Errorf("pack %s: no level %d", p.ID, n)
}

// SkippedAt reports whether the level at 1-based file position n failed
// to parse, and why.
func (p *Pack) SkippedAt(n int) (level.Failure, bool) {
	for _, f := range p.Skipped {
		if f.Index+1 == n {
			return f, true
		}
	}
	return level.Failure{}, false
}

// filePositions numbers the levels that survived a batch load of total
// definitions by their place in the file.
func filePositions(total int, skipped []level.Failure) []int {
	bad := make(map[int]bool, len(skipped))
	for _, f := range skipped {
		bad[f.Index] = true
	}
	positions := make([]int, 0, total-len(skipped))
	for i := 0; i < total; i++ {
		if !bad[i] {
			positions = append(positions, i+1)
		}
	}
	return positions
}

// PaletteSource resolves palette names used by pack files.
type PaletteSource interface {
	Palette(name string) (level.Palette, error)
}

// Loader handles loading level packs from a file system.
type Loader struct {
	FS   fs.FS
	Root string // shown in error messages

	// Palettes resolves named palettes. When nil only the built-in
	// palettes are known.
	Palettes PaletteSource
	// DefaultPalette is used for packs that name no palette and carry no
	// inline colors. Empty means DefaultPalette.
	DefaultPalette string
	// Workers > 1 parses the levels of each pack concurrently.
	Workers int
	// Options are passed to level.Parse.
	Options []level.Option
}

// NewLoader creates a loader for the pack files under root.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// NewBuiltinLoader creates a loader for the packs compiled into the binary.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinPacks, "packs")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all pack files.
// Returns packs sorted by ID for deterministic ordering.
//
// A pack whose file cannot be read or decoded is skipped. A pack with some
// broken levels is kept with the levels that parsed. Either way the problem
// is reported in the joined error, which is nil only if everything loaded.
func (l *Loader) LoadAll(ctx context.Context) ([]Pack, error) {
	var (
		packs []Pack
		errs  []error
		seen  = make(map[string]string)
	)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		pack, err := l.LoadFile(ctx, p)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			errs = append(errs, err)
			var be *level.BatchError
			if !errors.As(err, &be) {
				return nil
			}
		}

		if other, dup := seen[pack.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: pack id %q already used by %s", p, pack.ID, other))
			return nil
		}
		seen[pack.ID] = p
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})

	return packs, errors.Join(errs...)
}

// LoadFile loads a single pack file, path relative to the loader root.
// If only some levels fail, the pack is returned with the rest and the error
// wraps a *level.BatchError.
func (l *Loader) LoadFile(ctx context.Context, p string) (Pack, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	raw, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	pal, err := l.resolvePalette(raw)
	if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", raw.ID, err)
	}

	var (
		lvls    []level.Level
		skipped []level.Failure
	)
	if l.Workers > 1 {
		lvls, err = level.LoadConcurrent(ctx, raw.Definitions, pal, l.Workers, l.Options...)
	} else {
		lvls, err = level.LoadAll(raw.Definitions, pal, l.Options...)
	}

	var be *level.BatchError
	if errors.As(err, &be) {
		skipped = be.Failures
	} else if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", raw.ID, err)
	}

	pack := Pack{
		ID:        raw.ID,
		Title:     raw.Title,
		Palette:   pal,
		Levels:    lvls,
		FilePath:  path.Join(l.Root, p),
		Positions: filePositions(len(raw.Definitions), skipped),
		Skipped:   skipped,
	}
	if err != nil {
		return pack, fmt.Errorf("pack %s: %w", raw.ID, err)
	}
	return pack, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(ctx context.Context, id string) (Pack, error) {
	packs, err := l.LoadAll(ctx)
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	if err != nil {
		return Pack{}, fmt.Errorf("pack not found: %s: %w", id, err)
	}
	return Pack{}, fmt.Errorf("pack not found: %s", id)
}

// ListIDs returns all pack IDs in sorted order.
func (l *Loader) ListIDs(ctx context.Context) ([]string, error) {
	packs, err := l.LoadAll(ctx)
	ids := make([]string, len(packs))
	for i, p := range packs {
		ids[i] = p.ID
	}
	return ids, err
}

// resolvePalette picks the palette a pack is parsed with. Each pack gets
// its own palette; nothing carries over between packs.
func (l *Loader) resolvePalette(raw formats.Pack) (level.Palette, error) {
	if len(raw.Colors) > 0 {
		return level.NewPalette(raw.ID, raw.Colors)
	}

	name := raw.PaletteName
	if name == "" {
		name = l.DefaultPalette
	}
	if name == "" {
		name = DefaultPalette
	}

	if l.Palettes != nil {
		return l.Palettes.Palette(name)
	}
	pal, ok := level.Builtin(name)
	if !ok {
		return level.Palette{}, fmt.Errorf("unknown palette %q", name)
	}
	return pal, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Pack, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
