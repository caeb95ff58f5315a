// Package scheduler runs recurring jobs on a worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/hirelink/points/internal/worker"
)

// Scheduler enqueues registered jobs at fixed intervals.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a scheduler backed by the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The first run happens
// one interval after registration. Enqueueing blocks if the pool's queue is
// full, which backpressures the ticker instead of piling up jobs.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs and waits for the tickers to exit.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
