package workerpool

import (
	"context"
	"log"
	"sync"
	"time"
)

type Job func(ctx context.Context)

// WorkerPool runs statistics recomputes and other per-answer side jobs off
// the request path. The queue is bounded; a full queue drops the job, which
// is acceptable because every recompute reads full current state and the
// next one produces the same result.
type WorkerPool struct {
	queue chan Job
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewWorkerPool(ctx context.Context, workerCount int, queueSize int) *WorkerPool {
	pool := &WorkerPool{
		queue: make(chan Job, queueSize),
	}

	for i := 0; i < workerCount; i++ {
		go pool.worker(ctx)
	}

	return pool
}

func (p *WorkerPool) worker(ctx context.Context) {
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

// Submit enqueues a job. The wait-group entry is taken here, before the
// send, so a job can never be dequeued and finished ahead of its Add and
// slip past Shutdown's Wait.
func (p *WorkerPool) Submit(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		log.Println("workerpool: submit after shutdown, job dropped")
		return
	}

	p.wg.Add(1)
	select {
	case p.queue <- job:
	default:
		p.wg.Done()
		log.Println("workerpool: queue full, job dropped")
	}
}

func (p *WorkerPool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		log.Println("workerpool: shutdown timed out")
	case <-done:
		log.Println("workerpool: shutdown complete")
	}
}

// WithRetry wraps a fallible job with a fixed retry budget. Used for the
// best-effort emotion prediction call.
func WithRetry(retries int, delay time.Duration, job func() error) Job {
	return func(ctx context.Context) {
		for i := 0; i < retries; i++ {
			if ctx.Err() != nil {
				return
			}
			err := job()
			if err == nil {
				return
			}
			log.Printf("workerpool: job failed (attempt %d/%d): %v", i+1, retries, err)
			time.Sleep(delay)
		}
	}
}
