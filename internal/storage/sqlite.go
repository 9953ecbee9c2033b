// Package storage provides a SQLite-backed catalog of parsed levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/crystals/internal/level"
)

// ErrPackNotFound is returned for a pack id that is not in the catalog.
var ErrPackNotFound = errors.New("not in catalog")

// Store manages the SQLite database connection for the level catalog.
type Store struct {
	db *sql.DB
}

// PackSummary describes one pack stored in the catalog.
type PackSummary struct {
	ID          string
	Title       string
	PaletteName string
	LevelCount  int
	ImportedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS packs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			palette_name TEXT NOT NULL,
			palette TEXT NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS levels (
			pack_id TEXT NOT NULL REFERENCES packs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			hint TEXT NOT NULL DEFAULT '',
			optimal_moves INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			grid TEXT NOT NULL,
			PRIMARY KEY (pack_id, position)
		);
		CREATE INDEX IF NOT EXISTS idx_levels_name ON levels(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePack stores a pack and its levels, replacing any earlier import of
// the same pack ID. Levels are stored as grids encoded with pal.
func (s *Store) SavePack(id, title string, pal level.Palette, levels []level.Level) error {
	paletteYAML, err := yaml.Marshal(pal.Table())
	if err != nil {
		return fmt.Errorf("storage: cannot encode palette: %w", err)
	}

	grids := make([]string, len(levels))
	for i := range levels {
		rows, err := level.Encode(levels[i], pal)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		grids[i] = strings.Join(rows, "\n")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM levels WHERE pack_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM packs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear pack: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO packs (id, title, palette_name, palette) VALUES (?, ?, ?, ?)",
		id, title, pal.Name(), string(paletteYAML),
	); err != nil {
		return fmt.Errorf("storage: cannot save pack: %w", err)
	}

	for i, lvl := range levels {
		if _, err := tx.Exec(
			`INSERT INTO levels (pack_id, position, name, hint, optimal_moves, width, height, grid)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, lvl.Name, lvl.Hint, lvl.OptimalMoves, lvl.Width, lvl.Height, grids[i],
		); err != nil {
			return fmt.Errorf("storage: cannot save level %q: %w", lvl.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit pack: %w", err)
	}
	return nil
}

// Palette returns the palette a pack was stored with.
func (s *Store) Palette(packID string) (level.Palette, error) {
	var name, table string
	err := s.db.QueryRow(
		"SELECT palette_name, palette FROM packs WHERE id = ?",
		packID,
	).Scan(&name, &table)
	if errors.Is(err, sql.ErrNoRows) {
		return level.Palette{}, fmt.Errorf("storage: pack %q: %w", packID, ErrPackNotFound)
	}
	if err != nil {
		return level.Palette{}, fmt.Errorf("storage: cannot query pack: %w", err)
	}

	var symbols map[string]string
	if err := yaml.Unmarshal([]byte(table), &symbols); err != nil {
		return level.Palette{}, fmt.Errorf("storage: cannot decode palette: %w", err)
	}
	pal, err := level.NewPalette(name, symbols)
	if err != nil {
		return level.Palette{}, fmt.Errorf("storage: %w", err)
	}
	return pal, nil
}

// Levels returns the stored levels of a pack in their original order.
// Grids are parsed again on the way out, so a corrupted row surfaces as a
// parse error instead of a broken level.
func (s *Store) Levels(packID string) ([]level.Level, error) {
	pal, err := s.Palette(packID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT name, hint, optimal_moves, grid
		 FROM levels
		 WHERE pack_id = ?
		 ORDER BY position`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var defs []level.Definition
	for rows.Next() {
		var def level.Definition
		var grid string
		if err := rows.Scan(&def.Name, &def.Hint, &def.OptimalMoves, &grid); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		def.Grid = strings.Split(grid, "\n")
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	levels, err := level.LoadAll(defs, pal, level.WithStrictSymbols())
	if err != nil {
		return nil, fmt.Errorf("storage: pack %q: %w", packID, err)
	}
	return levels, nil
}

// Pack returns the summary of one stored pack, or nil if it is not stored.
func (s *Store) Pack(packID string) (*PackSummary, error) {
	var p PackSummary
	var importedAt any
	err := s.db.QueryRow(
		`SELECT p.id, p.title, p.palette_name, p.imported_at,
		        (SELECT COUNT(*) FROM levels l WHERE l.pack_id = p.id)
		 FROM packs p
		 WHERE p.id = ?`,
		packID,
	).Scan(&p.ID, &p.Title, &p.PaletteName, &importedAt, &p.LevelCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pack: %w", err)
	}
	p.ImportedAt = parseTime(importedAt)
	return &p, nil
}

// Packs lists every stored pack sorted by ID.
func (s *Store) Packs() ([]PackSummary, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.title, p.palette_name, p.imported_at,
		        (SELECT COUNT(*) FROM levels l WHERE l.pack_id = p.id)
		 FROM packs p
		 ORDER BY p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query packs: %w", err)
	}
	defer rows.Close()

	var packs []PackSummary
	for rows.Next() {
		var p PackSummary
		var importedAt any
		if err := rows.Scan(&p.ID, &p.Title, &p.PaletteName, &importedAt, &p.LevelCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.ImportedAt = parseTime(importedAt)
		packs = append(packs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return packs, nil
}

// DeletePack removes a pack and its levels. It returns ErrPackNotFound if
// the pack was never stored.
func (s *Store) DeletePack(packID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM levels WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot delete levels: %w", err)
	}
	res, err := tx.Exec("DELETE FROM packs WHERE id = ?", packID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete pack: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("storage: cannot delete pack: %w", err)
	} else if n == 0 {
		return fmt.Errorf("storage: pack %q: %w", packID, ErrPackNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
