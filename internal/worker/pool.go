package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Outcome pairs an input with what processing it produced.
type Outcome[T any, R any] struct {
	Input  T
	Result R
	Err    error
	Done   bool // False when the context was cancelled before the input ran
}

type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs independent jobs with bounded concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, process: fn}
}

// Execute returns one outcome per input, in input order.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Outcome[T, R] {
	outcomes := make([]Outcome[T, R], len(inputs))
	for i, in := range inputs {
		outcomes[i].Input = in
	}
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range indexes {
				result, err := p.process(ctx, inputs[idx])
				outcomes[idx].Result = result
				outcomes[idx].Err = err
				outcomes[idx].Done = true
				if nil != err {
					log.Debug().Err(err).Int("worker", workerID).Int("index", idx).Msg("Job failed")
				}
			}
		}(w)
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)

	wg.Wait()
	return outcomes
}
