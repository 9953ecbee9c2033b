package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolPreservesOrder(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})

	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}

	results := pool.Execute(context.Background(), inputs)
	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if !r.Done {
			t.Errorf("task %d did not run", i)
		}
		if r.Input != i || r.Result != i*i {
			t.Errorf("task %d: got input=%d result=%d", i, r.Input, r.Result)
		}
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	errOdd := errors.New("odd")
	pool := NewPool(3, func(_ context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, errOdd
		}
		return n, nil
	})

	results := pool.Execute(context.Background(), []int{0, 1, 2, 3})
	for i, r := range results {
		wantErr := i%2 == 1
		if (r.Err != nil) != wantErr {
			t.Errorf("task %d: err=%v, wantErr=%v", i, r.Err, wantErr)
		}
	}
}

func TestPoolCancelledContext(t *testing.T) {
	var calls atomic.Int32
	pool := NewPool(2, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pool.Execute(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8})
	done := 0
	for _, r := range results {
		if r.Done {
			done++
		}
	}
	if done != 0 || calls.Load() != 0 {
		t.Errorf("expected no tasks to run, got done=%d calls=%d", done, calls.Load())
	}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	pool := NewPool(0, func(_ context.Context, n int) (int, error) { return n, nil })
	if pool.Workers() != 1 {
		t.Errorf("expected 1 worker, got %d", pool.Workers())
	}
}
