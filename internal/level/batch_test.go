package level

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/crystals/internal/worker"
)

// sampleDefinitions returns the rainbow starter levels.
func sampleDefinitions() []Definition {
	return []Definition{
		{
			Name: "One More Time", OptimalMoves: 3, Hint: "Push the red crystal down!",
			Grid: []string{"#####", "#...#", "#.P.#", "#...#", "#.r.#", "#...#", "#.R.#", "#####"},
		},
		{
			Name: "Two To Tango", OptimalMoves: 8, Hint: "Two crystals, two colors!",
			Grid: []string{"######", "#....#", "#Pr.R#", "#....#", "#.y.Y#", "#....#", "######"},
		},
		{
			Name: "Triple Threat", OptimalMoves: 15, Hint: "Three crystals to organize!",
			Grid: []string{"######", "#P...#", "#.r.R#", "#..g.#", "#.b.B#", "#....#", "#...G#", "#....#", "######"},
		},
		{
			Name: "Lucky Seven", OptimalMoves: 95, Hint: "All seven colors of the rainbow!",
			Grid: []string{
				"#######", "#.....#", "#..P..#", "#.r.V.#", "#.o.I.#", "#.y.B.#",
				"#.g.G.#", "#.b.Y.#", "#.i.O.#", "#.v.R.#", "#.....#", "#######",
			},
		},
	}
}

func TestLoadAllPreservesOrder(t *testing.T) {
	defs := sampleDefinitions()

	levels, err := LoadAll(defs, Rainbow())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != len(defs) {
		t.Fatalf("expected %d levels, got %d", len(defs), len(levels))
	}
	for i := range defs {
		if levels[i].Name != defs[i].Name {
			t.Errorf("level %d: expected %q, got %q", i, defs[i].Name, levels[i].Name)
		}
	}

	last := levels[len(levels)-1]
	if len(last.Crystals) != 7 || len(last.RestorePoints) != 7 {
		t.Errorf("Lucky Seven: expected 7+7 markers, got %d+%d", len(last.Crystals), len(last.RestorePoints))
	}
}

func TestLoadAllExcludesFailedLevels(t *testing.T) {
	defs := []Definition{
		{Name: "Good", Grid: []string{"###", "#P#", "###"}},
		{Name: "Ragged", Grid: []string{"###", "#P", "###"}},
		{Name: "Nobody", Grid: []string{"###", "#.#", "###"}},
		{Name: "Also Good", Grid: []string{"####", "#Pr#", "####"}},
	}

	levels, err := LoadAll(defs, Rainbow())
	if len(levels) != 2 || levels[0].Name != "Good" || levels[1].Name != "Also Good" {
		t.Fatalf("unexpected levels %v", levels)
	}

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %T (%v)", err, err)
	}
	if len(be.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(be.Failures))
	}
	if be.Failures[0].Name != "Ragged" || be.Failures[0].Index != 1 {
		t.Errorf("unexpected first failure %+v", be.Failures[0])
	}
	if be.Failures[1].Name != "Nobody" || be.Failures[1].Index != 2 {
		t.Errorf("unexpected second failure %+v", be.Failures[1])
	}
	if !errors.Is(err, ErrMalformedGrid) || !errors.Is(err, ErrMissingPlayer) {
		t.Errorf("batch error should match both kinds: %v", err)
	}
}

func TestPalettesDoNotMix(t *testing.T) {
	rainbowDef := Definition{Name: "Indigo", Grid: []string{"#####", "#PiI#", "#####"}}
	jewelDef := Definition{Name: "Pink", Grid: []string{"#####", "#PkK#", "#####"}}

	rainbow, err := LoadAll([]Definition{rainbowDef, jewelDef}, Rainbow())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	jewel, err := LoadAll([]Definition{rainbowDef, jewelDef}, Jewel())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if got := rainbow[0].Crystals; len(got) != 1 || got[0].Color != "indigo" {
		t.Errorf("rainbow indigo level: unexpected crystals %v", got)
	}
	if got := rainbow[1].Crystals; len(got) != 0 {
		t.Errorf("rainbow palette must not know pink, got %v", got)
	}
	if got := jewel[0].Crystals; len(got) != 0 {
		t.Errorf("jewel palette must not know indigo, got %v", got)
	}
	if got := jewel[1].RestorePoints; len(got) != 1 || got[0].Color != "pink" {
		t.Errorf("jewel pink level: unexpected restore points %v", got)
	}
}

func TestLoadConcurrentMatchesLoadAll(t *testing.T) {
	defs := append(sampleDefinitions(),
		Definition{Name: "Broken", Grid: []string{"##", "#"}},
	)
	for i := 0; i < 20; i++ {
		defs = append(defs, sampleDefinitions()...)
	}

	want, wantErr := LoadAll(defs, Rainbow())
	got, gotErr := LoadConcurrent(context.Background(), defs, Rainbow(), 4)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("concurrent load differs from sequential load")
	}

	var wantBE, gotBE *BatchError
	if !errors.As(wantErr, &wantBE) || !errors.As(gotErr, &gotBE) {
		t.Fatalf("expected batch errors, got %v / %v", wantErr, gotErr)
	}
	if len(gotBE.Failures) != 1 || gotBE.Failures[0].Index != wantBE.Failures[0].Index {
		t.Errorf("unexpected failures %+v", gotBE.Failures)
	}
}

func TestLoadConcurrentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	levels, err := LoadConcurrent(ctx, sampleDefinitions(), Rainbow(), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if levels != nil {
		t.Errorf("expected no levels, got %d", len(levels))
	}
}

func TestCollectTasksIgnoresLateCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(2, func(_ context.Context, def Definition) (Level, error) {
		return Parse(def, Rainbow())
	})
	tasks := pool.Execute(ctx, sampleDefinitions())
	cancel()

	levels, err := collectTasks(ctx, tasks)
	if err != nil {
		t.Fatalf("every task finished, expected no error, got %v", err)
	}
	if len(levels) != len(sampleDefinitions()) {
		t.Errorf("expected %d levels, got %d", len(sampleDefinitions()), len(levels))
	}
}

func TestCollectTasksUnfinished(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []worker.Task[Definition, Level]{
		{Input: sampleDefinitions()[0], Done: true, Result: Level{Name: "One More Time"}},
		{Input: sampleDefinitions()[1]},
	}
	levels, err := collectTasks(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if levels != nil {
		t.Errorf("expected no levels, got %d", len(levels))
	}
}
