// Package worker runs batches of independent jobs over a fixed pool of
// goroutines. County assessments are order-independent, so the refresher
// can fan them out here without coordination beyond the queue itself.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is one unit of work. Errors are logged, not fatal to the pool;
// submitters needing completion or error visibility close over their own
// bookkeeping.
type Job func(ctx context.Context) error

type Pool struct {
	numWorkers int
	jobs       chan Job
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, bufferSize),
	}
}

// Start launches the workers. The context is handed to every job so
// cancellation short-circuits work; it does not abandon the queue. Every
// submitted job runs exactly once, which lets a submitter wait on its own
// batch without risking a hang when the context is cancelled mid-batch.
func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		if err := job(ctx); err != nil {
			slog.Error("job failed", "worker", id, "error", err)
		}
	}
}

// Submit enqueues a job, blocking when the buffer is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Stop closes the queue and waits for workers to drain it.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
