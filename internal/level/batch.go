package level

import (
	"context"

	"github.com/vovakirdan/crystals/internal/worker"
)

// LoadAll parses a batch of definitions with a single palette.
//
// Levels that fail to parse are left out of the result; the others keep
// their input order. When anything failed the error is a *BatchError naming
// each rejected level and why.
func LoadAll(defs []Definition, pal Palette, opts ...Option) ([]Level, error) {
	levels := make([]Level, 0, len(defs))
	var failures []Failure

	for i, def := range defs {
		lvl, err := Parse(def, pal, opts...)
		if err != nil {
			failures = append(failures, Failure{Index: i, Name: def.Name, Err: err})
			continue
		}
		levels = append(levels, lvl)
	}

	return levels, batchErr(failures)
}

// LoadConcurrent is LoadAll with parsing spread over a pool of workers.
// The result is identical to LoadAll for the same input. If ctx is cancelled
// before every level was parsed it returns ctx.Err() and no levels.
func LoadConcurrent(ctx context.Context, defs []Definition, pal Palette, workers int, opts ...Option) ([]Level, error) {
	pool := worker.NewPool(workers, func(_ context.Context, def Definition) (Level, error) {
		return Parse(def, pal, opts...)
	})

	return collectTasks(ctx, pool.Execute(ctx, defs))
}

// collectTasks splits finished pool tasks into levels and failures. A task
// that never ran means ctx stopped the batch early.
func collectTasks(ctx context.Context, tasks []worker.Task[Definition, Level]) ([]Level, error) {
	levels := make([]Level, 0, len(tasks))
	var failures []Failure
	for i, task := range tasks {
		if !task.Done {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, context.Canceled
		}
		if task.Err != nil {
			failures = append(failures, Failure{Index: i, Name: task.Input.Name, Err: task.Err})
			continue
		}
		levels = append(levels, task.Result)
	}

	return levels, batchErr(failures)
}

func batchErr(failures []Failure) error {
	if len(failures) == 0 {
		return nil
	}
	return &BatchError{Failures: failures}
}
