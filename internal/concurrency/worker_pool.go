package concurrency

import (
	"context"
	"sync"
)

// Small reusable worker pool pattern for fanning indexed tasks out across a
// bounded number of goroutines.

// TaskFn processes the task at the given index.
type TaskFn func(ctx context.Context, index int)

// FanOut runs fn for every index in [0, tasks) across at most workers
// goroutines and waits for all of them. Callers that need ordered results
// write into a preallocated slot per index; the pool imposes no ordering of
// its own. Cancelling ctx stops handing out new indexes; tasks already
// running finish.
func FanOut(ctx context.Context, workers, tasks int, fn TaskFn) {
	if tasks <= 0 {
		return
	}
	if workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				fn(ctx, idx)
			}
		}()
	}

feed:
	for i := 0; i < tasks; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()
}
