// Package worker provides a small generic worker pool for fanning
// independent tasks out across goroutines.
package worker

import (
	"context"
	"sync"
)

// Task holds one input and the outcome of processing it.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
	Done   bool // false if the task never ran because ctx was cancelled
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool. workers < 1 means one worker.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Workers returns the configured concurrency.
func (p *Pool[T, R]) Workers() int {
	return p.workers
}

// Execute runs all inputs through the pool. Results are returned in input
// order regardless of completion order. Once ctx is cancelled no new task
// starts; tasks already running finish.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i := range inputs {
		results[i].Input = inputs[i]
	}
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers && w < len(inputs); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range inputCh {
				result, err := p.process(ctx, inputs[idx])
				results[idx].Result = result
				results[idx].Err = err
				results[idx].Done = true
			}
		}()
	}

send:
	for i := range inputs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
		}
	}
	close(inputCh)

	wg.Wait()
	return results
}
