// Package workerpool runs queued jobs on a fixed set of workers.
package workerpool

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Job func(ctx context.Context)

type Pool struct {
	queue chan Job
	wg    sync.WaitGroup
	log   zerolog.Logger
}

// New starts workerCount workers draining a queue of queueSize.
func New(ctx context.Context, workerCount, queueSize int, log zerolog.Logger) *Pool {
	p := &Pool{
		queue: make(chan Job, queueSize),
		log:   log,
	}
	for i := 0; i < workerCount; i++ {
		go p.worker(ctx)
	}
	return p
}

func (p *Pool) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			job(ctx)
			p.wg.Done()
		}
	}
}

// Submit enqueues a job; a full queue drops it with a warning.
func (p *Pool) Submit(job Job) {
	p.wg.Add(1)
	select {
	case p.queue <- job:
	default:
		p.wg.Done()
		p.log.Warn().Msg("worker pool queue full, job dropped")
	}
}

// Shutdown closes the queue and waits for in-flight jobs, bounded by ctx.
func (p *Pool) Shutdown(ctx context.Context) {
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		p.log.Warn().Msg("worker pool shutdown timed out")
	case <-done:
		p.log.Debug().Msg("worker pool shutdown complete")
	}
}
