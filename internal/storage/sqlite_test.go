package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/crystals/internal/level"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func parseAll(t *testing.T, pal level.Palette, defs ...level.Definition) []level.Level {
	t.Helper()
	levels, err := level.LoadAll(defs, pal)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	return levels
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadLevels(t *testing.T) {
	store := openTestStore(t)

	levels := parseAll(t, level.Rainbow(),
		level.Definition{
			Name: "One More Time", OptimalMoves: 3, Hint: "Push the red crystal down!",
			Grid: []string{"#####", "#...#", "#.P.#", "#...#", "#.r.#", "#...#", "#.R.#", "#####"},
		},
		level.Definition{
			Name: "Two To Tango", OptimalMoves: 8, Hint: "Two crystals, two colors!",
			Grid: []string{"######", "#....#", "#Pr.R#", "#....#", "#.y.Y#", "#....#", "######"},
		},
	)

	if err := store.SavePack("rainbow", "Rainbow Road", level.Rainbow(), levels); err != nil {
		t.Fatalf("SavePack() failed: %v", err)
	}

	got, err := store.Levels("rainbow")
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if !reflect.DeepEqual(got, levels) {
		t.Errorf("stored levels differ:\nwant %+v\ngot  %+v", levels, got)
	}

	pal, err := store.Palette("rainbow")
	if err != nil {
		t.Fatalf("Palette() failed: %v", err)
	}
	if pal.Name() != "rainbow" || !reflect.DeepEqual(pal.Table(), level.Rainbow().Table()) {
		t.Errorf("palette not preserved: %s %v", pal.Name(), pal.Table())
	}
}

func TestStoreSavePackReplaces(t *testing.T) {
	store := openTestStore(t)

	first := parseAll(t, level.Rainbow(),
		level.Definition{Name: "A", Grid: []string{"###", "#P#", "###"}},
		level.Definition{Name: "B", Grid: []string{"####", "#Pr#", "####"}},
	)
	second := parseAll(t, level.Rainbow(),
		level.Definition{Name: "C", Grid: []string{"####", "#PR#", "####"}},
	)

	if err := store.SavePack("p", "First", level.Rainbow(), first); err != nil {
		t.Fatalf("SavePack() failed: %v", err)
	}
	if err := store.SavePack("p", "Second", level.Rainbow(), second); err != nil {
		t.Fatalf("SavePack() failed: %v", err)
	}

	summary, err := store.Pack("p")
	if err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}
	if summary == nil || summary.Title != "Second" || summary.LevelCount != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}

	got, err := store.Levels("p")
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "C" {
		t.Errorf("expected only level C, got %v", got)
	}
}

func TestStoreSavePackRejectsUnencodable(t *testing.T) {
	store := openTestStore(t)

	levels := parseAll(t, level.Rainbow(),
		level.Definition{Name: "Indigo", Grid: []string{"####", "#Pi#", "####"}},
	)
	if err := store.SavePack("x", "X", level.Jewel(), levels); err == nil {
		t.Fatal("expected error saving indigo with the jewel palette")
	}

	summary, err := store.Pack("x")
	if err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}
	if summary != nil {
		t.Errorf("failed save must not leave a pack behind: %+v", summary)
	}
}

func TestStorePacksAndDelete(t *testing.T) {
	store := openTestStore(t)

	lvl := parseAll(t, level.Jewel(), level.Definition{Name: "Pink", Grid: []string{"####", "#Pk#", "####"}})
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := store.SavePack(id, id, level.Jewel(), lvl); err != nil {
			t.Fatalf("SavePack(%s) failed: %v", id, err)
		}
	}

	packs, err := store.Packs()
	if err != nil {
		t.Fatalf("Packs() failed: %v", err)
	}
	var ids []string
	for _, p := range packs {
		ids = append(ids, p.ID)
		if p.PaletteName != "jewel" || p.LevelCount != 1 {
			t.Errorf("unexpected summary %+v", p)
		}
	}
	if want := []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}

	if err := store.DeletePack("mid"); err != nil {
		t.Fatalf("DeletePack() failed: %v", err)
	}
	if err := store.DeletePack("never-stored"); !errors.Is(err, ErrPackNotFound) {
		t.Errorf("expected ErrPackNotFound for a missing pack, got %v", err)
	}
	if err := store.DeletePack("mid"); !errors.Is(err, ErrPackNotFound) {
		t.Errorf("deleting twice should report the pack missing, got %v", err)
	}

	packs, err = store.Packs()
	if err != nil {
		t.Fatalf("Packs() failed: %v", err)
	}
	if len(packs) != 2 {
		t.Errorf("expected 2 packs after delete, got %d", len(packs))
	}
	if _, err := store.Levels("mid"); !errors.Is(err, ErrPackNotFound) {
		t.Errorf("expected ErrPackNotFound loading deleted pack, got %v", err)
	}
}

func TestStoreEmptyCatalog(t *testing.T) {
	store := openTestStore(t)

	packs, err := store.Packs()
	if err != nil {
		t.Fatalf("Packs() failed: %v", err)
	}
	if len(packs) != 0 {
		t.Errorf("expected empty catalog, got %v", packs)
	}

	summary, err := store.Pack("none")
	if err != nil || summary != nil {
		t.Errorf("expected nil summary, got %+v, %v", summary, err)
	}
}
